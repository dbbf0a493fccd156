package devserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cristianoliveira/portal-notify/internal/domain"
)

func errorBody(msg string) gin.H {
	return gin.H{"message": msg}
}

type listResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	Page          int                   `json:"page,omitempty"`
	Limit         int                   `json:"limit,omitempty"`
}

type createRequest struct {
	Type       domain.Type       `json:"type" binding:"required"`
	Department domain.Department `json:"department"`
	Title      string            `json:"title" binding:"required"`
	Message    string            `json:"message"`
	Priority   domain.Priority   `json:"priority"`
}

func (s *Server) list(c *gin.Context) {
	query := domain.ListQuery{
		Type:       domain.Type(c.Query("type")),
		UnreadOnly: c.Query("unreadOnly") == "true",
	}
	var err error
	if query.Page, err = optionalInt(c, "page"); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	if query.Limit, err = optionalInt(c, "limit"); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}

	list, err := s.repo.List(c.Request.Context(), query)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse{Notifications: list, Page: query.Page, Limit: query.Limit})
}

func (s *Server) unreadCount(c *gin.Context) {
	n, err := s.repo.UnreadCount(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (s *Server) markRead(c *gin.Context) {
	id := c.Param("id")
	if err := s.repo.MarkRead(c.Request.Context(), id); err != nil {
		s.mutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (s *Server) markAllRead(c *gin.Context) {
	n, err := s.repo.MarkAllRead(c.Request.Context())
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": n})
}

func (s *Server) delete(c *gin.Context) {
	id := c.Param("id")
	if err := s.repo.Delete(c.Request.Context(), id); err != nil {
		s.mutationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

func (s *Server) listByDepartment(c *gin.Context) {
	d, err := domain.ParseDepartment(c.Param("department"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	list, err := s.repo.ListByDepartment(c.Request.Context(), d)
	if err != nil {
		s.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body: "+err.Error()))
		return
	}
	created, err := s.repo.Create(c.Request.Context(), domain.Notification{
		Type:       req.Type,
		Department: req.Department,
		Title:      req.Title,
		Message:    req.Message,
		Priority:   req.Priority,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	s.log.Info("notification created", "id", created.ID, "type", created.Type.String())
	c.JSON(http.StatusCreated, created)
}

func (s *Server) mutationError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrNotificationNotFound) {
		c.JSON(http.StatusNotFound, errorBody("Notification not found"))
		return
	}
	s.internalError(c, err)
}

func (s *Server) internalError(c *gin.Context, err error) {
	s.log.Error("request failed", "path", c.Request.URL.Path, "error", err.Error())
	c.JSON(http.StatusInternalServerError, errorBody("internal server error"))
}

func optionalInt(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New(name + " must be a non-negative integer")
	}
	return n, nil
}
