package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskboard/internal/model"
)

// In-memory repository fakes. They mirror the per-document update semantics
// of the Mongo implementations closely enough for service-level tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) (*model.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return user, nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByOrg(_ context.Context, orgID primitive.ObjectID) ([]*model.User, error) {
	var out []*model.User
	for _, u := range r.users {
		if u.OrgID == orgID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (r *fakeUserRepo) SetMembership(_ context.Context, id, orgID primitive.ObjectID, role model.Role) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.OrgID = orgID
	u.Role = role
	return nil
}

func (r *fakeUserRepo) SetRole(_ context.Context, id primitive.ObjectID, role model.Role) error {
	u, ok := r.users[id]
	if !ok {
		return errors.New("no such user")
	}
	u.Role = role
	return nil
}

type fakeOrgRepo struct {
	orgs map[primitive.ObjectID]*model.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[primitive.ObjectID]*model.Organization)}
}

func (r *fakeOrgRepo) Create(_ context.Context, org *model.Organization) (*model.Organization, error) {
	org.ID = primitive.NewObjectID()
	now := time.Now()
	org.CreatedAt = now
	org.UpdatedAt = now
	r.orgs[org.ID] = org
	return org, nil
}

func (r *fakeOrgRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Organization, error) {
	return r.orgs[id], nil
}

func (r *fakeOrgRepo) FindByInviteCode(_ context.Context, code string) (*model.Organization, error) {
	for _, org := range r.orgs {
		if org.InviteCode == code {
			return org, nil
		}
	}
	return nil, nil
}

type fakeProjectRepo struct {
	projects map[primitive.ObjectID]*model.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[primitive.ObjectID]*model.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *model.Project) error {
	project.ID = primitive.NewObjectID()
	r.projects[project.ID] = project
	return nil
}

func (r *fakeProjectRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Project, error) {
	return r.projects[id], nil
}

func (r *fakeProjectRepo) FindByOrg(_ context.Context, orgID primitive.ObjectID) ([]*model.Project, error) {
	var out []*model.Project
	for _, p := range r.projects {
		if p.OrgID == orgID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeProjectRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	p, ok := r.projects[id]
	if !ok {
		return errors.New("no such project")
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "description":
			p.Description = v.(string)
		case "status":
			p.Status = v.(model.ProjectStatus)
		}
	}
	p.UpdatedAt = time.Now()
	return nil
}

type fakeTicketRepo struct {
	tickets map[primitive.ObjectID]*model.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[primitive.ObjectID]*model.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *model.Ticket) error {
	ticket.ID = primitive.NewObjectID()
	r.tickets[ticket.ID] = ticket
	return nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Ticket, error) {
	return r.tickets[id], nil
}

func (r *fakeTicketRepo) FindByProject(_ context.Context, projectID primitive.ObjectID) ([]*model.Ticket, error) {
	var out []*model.Ticket
	for _, t := range r.tickets {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (r *fakeTicketRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(r.tickets, id)
	return nil
}

func (r *fakeTicketRepo) UpdateFields(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	t, ok := r.tickets[id]
	if !ok {
		return errors.New("no such ticket")
	}
	for k, v := range fields {
		switch k {
		case "title":
			t.Title = v.(string)
		case "description":
			t.Description = v.(string)
		case "status":
			t.Status = v.(model.TicketStatus)
		case "assigneeId":
			if v == nil {
				t.AssigneeID = primitive.NilObjectID
			} else {
				t.AssigneeID = v.(primitive.ObjectID)
			}
		}
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) PushTodos(_ context.Context, id primitive.ObjectID, todos []model.Todo) error {
	t, ok := r.tickets[id]
	if !ok {
		return errors.New("no such ticket")
	}
	t.Todos = append(t.Todos, todos...)
	t.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) SetTodoCompleted(_ context.Context, id primitive.ObjectID, todoID string, completed bool) error {
	t, ok := r.tickets[id]
	if !ok {
		return errors.New("no such ticket")
	}
	if todo := t.TodoByID(todoID); todo != nil {
		todo.IsCompleted = completed
	}
	t.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) SetTodos(_ context.Context, id primitive.ObjectID, todos []model.Todo) error {
	t, ok := r.tickets[id]
	if !ok {
		return errors.New("no such ticket")
	}
	t.Todos = todos
	t.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) PushAttachment(_ context.Context, id primitive.ObjectID, att model.Attachment) error {
	t, ok := r.tickets[id]
	if !ok {
		return errors.New("no such ticket")
	}
	t.Attachments = append(t.Attachments, att)
	t.UpdatedAt = time.Now()
	return nil
}

func (r *fakeTicketRepo) PullAttachment(_ context.Context, id primitive.ObjectID, attachmentID string) error {
	t, ok := r.tickets[id]
	if !ok {
		return errors.New("no such ticket")
	}
	kept := t.Attachments[:0]
	for _, att := range t.Attachments {
		if att.ID != attachmentID {
			kept = append(kept, att)
		}
	}
	t.Attachments = kept
	t.UpdatedAt = time.Now()
	return nil
}

// fakeBlobStore keeps attachment bytes in a map.
type fakeBlobStore struct {
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Save(key string, r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	s.blobs[key] = data
	return int64(len(data)), nil
}

func (s *fakeBlobStore) Open(key string) (io.ReadCloser, error) {
	data, ok := s.blobs[key]
	if !ok {
		return nil, errors.New("no such blob")
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeBlobStore) Remove(key string) error {
	delete(s.blobs, key)
	return nil
}

// fakeSuggester returns canned items or a canned error.
type fakeSuggester struct {
	items []string
	err   error
	calls int
}

func (s *fakeSuggester) SuggestTodos(_ context.Context, _, _, _ string) ([]string, error) {
	s.calls++
	return s.items, s.err
}
