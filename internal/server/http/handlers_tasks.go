package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

func (s *Server) handleListTasks(c *gin.Context) {
	tasks, err := s.tasks.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var payload models.TaskCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUserID(c), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (s *Server) handleUpdateTask(c *gin.Context) {
	var payload models.TaskUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), currentUserID(c), c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	if err := s.tasks.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
