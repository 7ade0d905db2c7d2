package http

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/growthroad/internal/logging"
	"github.com/dmitrijs2005/growthroad/internal/server/auth"
	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

const (
	testSecret = "test-secret"
	testUserID = "user-11111111-1111-1111-1111-111111111111"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type nopLogger struct{}

func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (nopLogger) With(...any) logging.Logger            { return nopLogger{} }

// Fake services with overridable func fields. Unset funcs panic, which is
// fine: a test only sets what its route exercises.

type fakeUserService struct {
	signup  func(ctx context.Context, email, password string) (*models.User, error)
	login   func(ctx context.Context, email, password string) (string, error)
	getByID func(ctx context.Context, id string) (*models.User, error)
}

func (f *fakeUserService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	return f.signup(ctx, email, password)
}

func (f *fakeUserService) Login(ctx context.Context, email, password string) (string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.getByID(ctx, id)
}

type fakeLabelService struct {
	list   func(ctx context.Context, userID string) ([]models.Label, error)
	create func(ctx context.Context, userID string, payload models.LabelCreate) (*models.Label, error)
	update func(ctx context.Context, userID, id string, payload models.LabelUpdate) (*models.Label, error)
	delete func(ctx context.Context, userID, id string) error
}

func (f *fakeLabelService) List(ctx context.Context, userID string) ([]models.Label, error) {
	return f.list(ctx, userID)
}

func (f *fakeLabelService) Create(ctx context.Context, userID string, payload models.LabelCreate) (*models.Label, error) {
	return f.create(ctx, userID, payload)
}

func (f *fakeLabelService) Update(ctx context.Context, userID, id string, payload models.LabelUpdate) (*models.Label, error) {
	return f.update(ctx, userID, id, payload)
}

func (f *fakeLabelService) Delete(ctx context.Context, userID, id string) error {
	return f.delete(ctx, userID, id)
}

type fakeProjectService struct {
	list           func(ctx context.Context, userID string) ([]models.Project, error)
	listWithTasks  func(ctx context.Context, userID string) ([]models.ProjectWithTasks, error)
	create         func(ctx context.Context, userID string, payload models.ProjectCreate) (*models.Project, error)
	update         func(ctx context.Context, userID, id string, payload models.ProjectUpdate) (*models.Project, error)
	delete         func(ctx context.Context, userID, id string) error
	reconcileTasks func(ctx context.Context, userID, projectID string, items []models.TaskUpsert) ([]models.Task, error)
}

func (f *fakeProjectService) List(ctx context.Context, userID string) ([]models.Project, error) {
	return f.list(ctx, userID)
}

func (f *fakeProjectService) ListWithTasks(ctx context.Context, userID string) ([]models.ProjectWithTasks, error) {
	return f.listWithTasks(ctx, userID)
}

func (f *fakeProjectService) Create(ctx context.Context, userID string, payload models.ProjectCreate) (*models.Project, error) {
	return f.create(ctx, userID, payload)
}

func (f *fakeProjectService) Update(ctx context.Context, userID, id string, payload models.ProjectUpdate) (*models.Project, error) {
	return f.update(ctx, userID, id, payload)
}

func (f *fakeProjectService) Delete(ctx context.Context, userID, id string) error {
	return f.delete(ctx, userID, id)
}

func (f *fakeProjectService) ReconcileTasks(ctx context.Context, userID, projectID string, items []models.TaskUpsert) ([]models.Task, error) {
	return f.reconcileTasks(ctx, userID, projectID, items)
}

type fakeTaskService struct {
	list   func(ctx context.Context, userID string) ([]models.Task, error)
	create func(ctx context.Context, userID string, payload models.TaskCreate) (*models.Task, error)
	update func(ctx context.Context, userID, id string, payload models.TaskUpdate) (*models.Task, error)
	delete func(ctx context.Context, userID, id string) error
}

func (f *fakeTaskService) List(ctx context.Context, userID string) ([]models.Task, error) {
	return f.list(ctx, userID)
}

func (f *fakeTaskService) Create(ctx context.Context, userID string, payload models.TaskCreate) (*models.Task, error) {
	return f.create(ctx, userID, payload)
}

func (f *fakeTaskService) Update(ctx context.Context, userID, id string, payload models.TaskUpdate) (*models.Task, error) {
	return f.update(ctx, userID, id, payload)
}

func (f *fakeTaskService) Delete(ctx context.Context, userID, id string) error {
	return f.delete(ctx, userID, id)
}

type fixture struct {
	users    *fakeUserService
	labels   *fakeLabelService
	projects *fakeProjectService
	tasks    *fakeTaskService
	server   *Server
}

// newFixture builds a server whose users.GetByID accepts testUserID, so
// authorized requests pass the middleware by default.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:    &fakeUserService{},
		labels:   &fakeLabelService{},
		projects: &fakeProjectService{},
		tasks:    &fakeTaskService{},
	}
	f.users.getByID = func(_ context.Context, id string) (*models.User, error) {
		return &models.User{ID: id, Email: "user@example.com"}, nil
	}
	f.server = NewServer(":0", nopLogger{}, f.users, f.labels, f.projects, f.tasks, testSecret)
	return f
}

// bearerToken mints a valid token for testUserID.
func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testUserID, []byte(testSecret), time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}
	return "Bearer " + token
}
