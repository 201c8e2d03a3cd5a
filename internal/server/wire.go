package server

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"taskboard/internal/config"
	"taskboard/internal/events"
	"taskboard/internal/handler"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/suggest"
	"taskboard/pkg/storage"
)

// Repositories groups all data access layers
type Repositories struct {
	User    repository.IUserRepository
	Org     repository.IOrgRepository
	Project repository.IProjectRepository
	Ticket  repository.ITicketRepository
}

// Services groups all business logic layers
type Services struct {
	Auth    *service.AuthService
	Org     *service.OrgService
	Project *service.ProjectService
	Ticket  *service.TicketService
	Hub     *events.Hub
}

// Handlers groups all HTTP handlers
type Handlers struct {
	Auth    *handler.AuthHandler
	Org     *handler.OrgHandler
	Project *handler.ProjectHandler
	Ticket  *handler.TicketHandler
	Events  *handler.EventsHandler
}

// InitRepositories creates all repositories
func InitRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		User:    repository.NewUserRepository(db),
		Org:     repository.NewOrgRepository(db),
		Project: repository.NewProjectRepository(db),
		Ticket:  repository.NewTicketRepository(db),
	}
}

// InitServices creates all services
func InitServices(cfg *config.Config, repos *Repositories) (*Services, error) {
	blobs, err := storage.NewDiskStore(cfg.Upload.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload store: %w", err)
	}

	hub := events.NewHub()

	return &Services{
		Auth:    service.NewAuthService(cfg, repos.User),
		Org:     service.NewOrgService(repos.Org, repos.User),
		Project: service.NewProjectService(repos.Project, hub),
		Ticket:  service.NewTicketService(repos.Ticket, repos.Project, repos.User, blobs, suggest.NewClient(cfg), hub),
		Hub:     hub,
	}, nil
}

// InitHandlers creates all HTTP handlers
func InitHandlers(cfg *config.Config, services *Services) *Handlers {
	return &Handlers{
		Auth:    handler.NewAuthHandler(services.Auth),
		Org:     handler.NewOrgHandler(services.Org),
		Project: handler.NewProjectHandler(services.Project),
		Ticket:  handler.NewTicketHandler(cfg, services.Ticket),
		Events:  handler.NewEventsHandler(services.Hub),
	}
}
