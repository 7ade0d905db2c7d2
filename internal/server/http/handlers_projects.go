package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/growthroad/internal/common"
	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.projects.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (s *Server) handleListProjectsWithTasks(c *gin.Context) {
	projects, err := s.projects.ListWithTasks(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (s *Server) handleCreateProject(c *gin.Context) {
	var payload models.ProjectCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	project, err := s.projects.Create(c.Request.Context(), currentUserID(c), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, project)
}

func (s *Server) handleUpdateProject(c *gin.Context) {
	var payload models.ProjectUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	project, err := s.projects.Update(c.Request.Context(), currentUserID(c), c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	if err := s.projects.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// handleReconcileTasks replaces the project's entire task set with the
// submitted list. An unexpected store failure during the batch rolls back
// and reports 400, never a half-applied state.
func (s *Server) handleReconcileTasks(c *gin.Context) {
	var items []models.TaskUpsert
	if err := c.ShouldBindJSON(&items); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	tasks, err := s.projects.ReconcileTasks(c.Request.Context(), currentUserID(c), c.Param("id"), items)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) ||
			errors.Is(err, common.ErrInvalidParent) ||
			errors.Is(err, common.ErrIDConflict) {
			respondError(c, err)
			return
		}
		respondBadRequest(c, "Could not apply task changes")
		return
	}

	c.JSON(http.StatusOK, tasks)
}
