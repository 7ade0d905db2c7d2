package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/growthroad/internal/server/models"
)

func (s *Server) handleListLabels(c *gin.Context) {
	labels, err := s.labels.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, labels)
}

func (s *Server) handleCreateLabel(c *gin.Context) {
	var payload models.LabelCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	label, err := s.labels.Create(c.Request.Context(), currentUserID(c), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, label)
}

func (s *Server) handleUpdateLabel(c *gin.Context) {
	var payload models.LabelUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, "Invalid request body")
		return
	}

	label, err := s.labels.Update(c.Request.Context(), currentUserID(c), c.Param("id"), payload)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, label)
}

func (s *Server) handleDeleteLabel(c *gin.Context) {
	if err := s.labels.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
