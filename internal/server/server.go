package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskboard/internal/config"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/version"
)

// Server represents the HTTP server
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	mongo    *mongo.Client
	services *Services
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	if cfg.Auth.Secret == "" {
		return nil, errors.New("AUTH_SECRET must be set")
	}

	mongoClient, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.Mongo.Database)

	repos := InitRepositories(db)
	services, err := InitServices(cfg, repos)
	if err != nil {
		return nil, err
	}
	handlers := InitHandlers(cfg, services)

	router := setupRouter(handlers, services)

	return &Server{
		cfg:      cfg,
		router:   router,
		mongo:    mongoClient,
		services: services,
	}, nil
}

func Connect(cfg *config.Config) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// Close disconnects MongoDB client
func (s *Server) Close() error {
	if s.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.mongo.Disconnect(ctx)
	}
	return nil
}

// Run starts the server
func (s *Server) Run() error {
	fmt.Printf("Taskboard API running on %s\n", s.cfg.Server.Address())
	return s.router.Run(s.cfg.Server.Address())
}

func setupRouter(h *Handlers, s *Services) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, model.NewSuccessResponse("ok", version.Get()))
	})

	api := r.Group("/api")

	// Auth routes (no token required)
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	// Protected routes require a Bearer token
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(s.Auth))

	protected.GET("/auth/me", h.Auth.Me)

	// Org routes
	orgs := protected.Group("/orgs")
	{
		orgs.POST("", h.Org.Create)
		orgs.POST("/join", h.Org.Join)
		orgs.GET("/me", h.Org.GetMine)
		orgs.PUT("/members/:userId/role", h.Org.ChangeRole)
	}

	// Project routes
	projects := protected.Group("/projects")
	{
		projects.GET("", h.Project.List)
		projects.POST("", h.Project.Create)
		projects.GET("/:id", h.Project.Get)
		projects.PUT("/:id", h.Project.Update)
	}

	// Ticket routes, including embedded todo and attachment sub-resources
	tickets := protected.Group("/tickets")
	{
		tickets.GET("", h.Ticket.List)
		tickets.POST("", h.Ticket.Create)
		tickets.GET("/:id", h.Ticket.Get)
		tickets.PUT("/:id", h.Ticket.Update)
		tickets.DELETE("/:id", h.Ticket.Delete)

		tickets.POST("/:id/todos", h.Ticket.AddTodo)
		tickets.POST("/:id/todos/bulk", h.Ticket.BulkAddTodos)
		tickets.PATCH("/:id/todos/:todoId/toggle", h.Ticket.ToggleTodo)
		tickets.DELETE("/:id/todos/:todoId", h.Ticket.DeleteTodo)
		tickets.POST("/:id/suggest-todos", h.Ticket.SuggestTodos)

		tickets.POST("/:id/attachments", h.Ticket.AddAttachment)
		tickets.GET("/:id/attachments/:attachmentId", h.Ticket.DownloadAttachment)
		tickets.DELETE("/:id/attachments/:attachmentId", h.Ticket.DeleteAttachment)
	}

	// Event stream
	protected.GET("/events", h.Events.Stream)

	return r
}
