// Package http exposes the application services over a REST surface. It is
// the only layer that knows about status codes: services return sentinel
// errors and handlers translate them.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/growthroad/internal/logging"
	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

// Service interfaces consumed by the handlers. Declared here so handler
// tests can substitute fakes.

type UserService interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}

type LabelService interface {
	List(ctx context.Context, userID string) ([]models.Label, error)
	Create(ctx context.Context, userID string, payload models.LabelCreate) (*models.Label, error)
	Update(ctx context.Context, userID, id string, payload models.LabelUpdate) (*models.Label, error)
	Delete(ctx context.Context, userID, id string) error
}

type ProjectService interface {
	List(ctx context.Context, userID string) ([]models.Project, error)
	ListWithTasks(ctx context.Context, userID string) ([]models.ProjectWithTasks, error)
	Create(ctx context.Context, userID string, payload models.ProjectCreate) (*models.Project, error)
	Update(ctx context.Context, userID, id string, payload models.ProjectUpdate) (*models.Project, error)
	Delete(ctx context.Context, userID, id string) error
	ReconcileTasks(ctx context.Context, userID, projectID string, items []models.TaskUpsert) ([]models.Task, error)
}

type TaskService interface {
	List(ctx context.Context, userID string) ([]models.Task, error)
	Create(ctx context.Context, userID string, payload models.TaskCreate) (*models.Task, error)
	Update(ctx context.Context, userID, id string, payload models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	labels    LabelService
	projects  ProjectService
	tasks     TaskService
	jwtSecret []byte
	router    *gin.Engine
}

func NewServer(address string, l logging.Logger, us UserService, ls LabelService,
	ps ProjectService, ts TaskService, secretKey string) *Server {

	s := &Server{
		address:   address,
		logger:    l.With("module", "http_server"),
		users:     us,
		labels:    ls,
		projects:  ps,
		tasks:     ts,
		jwtSecret: []byte(secretKey),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/health", s.handleHealth)
	router.POST("/auth/signup", s.handleSignup)
	router.POST("/auth/login", s.handleLogin)

	authorized := router.Group("/", s.requireUser())
	{
		authorized.GET("/auth/me", s.handleMe)

		authorized.GET("/labels", s.handleListLabels)
		authorized.POST("/labels", s.handleCreateLabel)
		authorized.PATCH("/labels/:id", s.handleUpdateLabel)
		authorized.DELETE("/labels/:id", s.handleDeleteLabel)

		authorized.GET("/projects", s.handleListProjects)
		authorized.POST("/projects", s.handleCreateProject)
		authorized.PATCH("/projects/:id", s.handleUpdateProject)
		authorized.DELETE("/projects/:id", s.handleDeleteProject)
		authorized.PUT("/projects/:id/tasks", s.handleReconcileTasks)
		authorized.GET("/projects-with-tasks", s.handleListProjectsWithTasks)

		authorized.GET("/tasks", s.handleListTasks)
		authorized.POST("/tasks", s.handleCreateTask)
		authorized.PATCH("/tasks/:id", s.handleUpdateTask)
		authorized.DELETE("/tasks/:id", s.handleDeleteTask)
	}

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
