package projects

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/internal/auth"
	"carbon-shop/marketplace-backend/internal/store"
	"carbon-shop/marketplace-backend/internal/users"
	"carbon-shop/marketplace-backend/pkg/pagination"
)

type Handler struct {
	service *Service
	logger  *zap.Logger
}

func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers project routes on an authenticated group.
// Deleting is limited to mediators and admins.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects", h.ListProjects)
	rg.GET("/projects/:projectId", h.GetProject)
	rg.GET("/companies/:companyId/projects", h.ListCompanyProjects)
	rg.DELETE("/projects/:projectId", auth.RequireRole(string(users.RoleMediator), string(users.RoleAdmin)), h.DeleteProject)
}

// ListProjects handles GET /api/projects?filter=<id>
func (h *Handler) ListProjects(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), c.Query("filter"), pagination.FromQuery(c, Sorting))
	if err != nil {
		h.logger.Error("Failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListCompanyProjects handles GET /api/companies/:companyId/projects
func (h *Handler) ListCompanyProjects(c *gin.Context) {
	companyID, err := strconv.ParseInt(c.Param("companyId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid company ID"})
		return
	}

	page, err := h.service.ListByOwner(c.Request.Context(), companyID, pagination.FromQuery(c, Sorting))
	if err != nil {
		h.logger.Error("Failed to list company projects", zap.Error(err), zap.Int64("company_id", companyID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetProject handles GET /api/projects/:projectId
func (h *Handler) GetProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	project, err := h.service.Get(c.Request.Context(), id)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, project)
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Failed to get project", zap.Error(err), zap.Int64("project_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// DeleteProject handles DELETE /api/projects/:projectId
func (h *Handler) DeleteProject(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("projectId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project ID"})
		return
	}

	err = h.service.Delete(c.Request.Context(), id)
	var referenced *ReferencedError
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.As(err, &referenced):
		c.JSON(http.StatusConflict, gin.H{
			"error":   err.Error(),
			"warning": referenced.Warning,
		})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Failed to delete project", zap.Error(err), zap.Int64("project_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
