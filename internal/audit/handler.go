package audit

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"carbon-shop/marketplace-backend/internal/auth"
	"carbon-shop/marketplace-backend/internal/notifications/websocket"
	"carbon-shop/marketplace-backend/internal/projects"
	"carbon-shop/marketplace-backend/internal/questions"
	"carbon-shop/marketplace-backend/internal/users"
	"carbon-shop/marketplace-backend/pkg/pagination"
)

// Handler handles HTTP requests for mediator audit operations
type Handler struct {
	service *Service
	events  *websocket.Manager
	logger  *zap.Logger
}

// NewHandler creates a new audit handler. events may be nil, in which case
// the live event feed route is not registered.
func NewHandler(service *Service, events *websocket.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		events:  events,
		logger:  logger,
	}
}

// RegisterRoutes registers the mediator audit routes on a group that has
// already authenticated the caller; the mediator role is enforced here.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	audit := router.Group("/mediator/audit", auth.RequireRole(string(users.RoleMediator)))
	{
		// Orders
		audit.PATCH("/order/:orderId/process", h.startProcessOrder)
		audit.PATCH("/order/:orderId/cancel", h.cancelOrder)
		audit.PATCH("/order/:orderId/done", h.doneOrder)

		// Users
		audit.GET("/users/init", h.listPendingUsers)
		audit.GET("/users/init/export", h.exportPendingUsers)
		audit.PATCH("/user/:userId/approve", h.approveUser)
		audit.PATCH("/user/:userId/reject", h.rejectUser)

		// Projects
		audit.GET("/projects/init", h.listPendingProjects)
		audit.GET("/projects/init/export", h.exportPendingProjects)
		audit.PATCH("/project/:projectId/approve", h.approveProject)
		audit.PATCH("/project/:projectId/reject", h.rejectProject)

		// Questions
		audit.GET("/questions/init", h.listUnansweredQuestions)
		audit.GET("/questions/init/export", h.exportUnansweredQuestions)
		audit.PATCH("/question/:questionId", h.answerQuestion)
		audit.DELETE("/question/:questionId/answer", h.deleteQuestionAnswer)

		audit.GET("/summary", h.getSummary)
		if h.events != nil {
			audit.GET("/events", h.streamEvents)
		}
	}
}

// =====================================================
// Order Endpoints
// =====================================================

// startProcessOrder handles PATCH /api/mediator/audit/order/:orderId/process
func (h *Handler) startProcessOrder(c *gin.Context) {
	id, ok := h.pathID(c, "orderId")
	if !ok {
		return
	}
	order, err := h.service.StartProcessOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to start processing order", id)
		return
	}
	c.JSON(http.StatusOK, order)
}

// cancelOrder handles PATCH /api/mediator/audit/order/:orderId/cancel
func (h *Handler) cancelOrder(c *gin.Context) {
	id, ok := h.pathID(c, "orderId")
	if !ok {
		return
	}
	order, err := h.service.CancelOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to cancel order", id)
		return
	}
	c.JSON(http.StatusOK, order)
}

// doneOrder handles PATCH /api/mediator/audit/order/:orderId/done
func (h *Handler) doneOrder(c *gin.Context) {
	id, ok := h.pathID(c, "orderId")
	if !ok {
		return
	}
	order, err := h.service.DoneOrder(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to complete order", id)
		return
	}
	c.JSON(http.StatusOK, order)
}

// =====================================================
// User Endpoints
// =====================================================

// listPendingUsers handles GET /api/mediator/audit/users/init
func (h *Handler) listPendingUsers(c *gin.Context) {
	page, err := h.service.ListPendingUsers(c.Request.Context(), pagination.FromQuery(c, users.Sorting))
	if err != nil {
		h.respondError(c, err, "Failed to list pending users", 0)
		return
	}
	c.JSON(http.StatusOK, page)
}

// approveUser handles PATCH /api/mediator/audit/user/:userId/approve
func (h *Handler) approveUser(c *gin.Context) {
	id, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	user, err := h.service.ApproveUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to approve user", id)
		return
	}
	c.JSON(http.StatusOK, user)
}

// rejectUser handles PATCH /api/mediator/audit/user/:userId/reject
func (h *Handler) rejectUser(c *gin.Context) {
	id, ok := h.pathID(c, "userId")
	if !ok {
		return
	}
	user, err := h.service.RejectUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Failed to reject user", id)
		return
	}
	c.JSON(http.StatusOK, user)
}

// =====================================================
// Project Endpoints
// =====================================================

// listPendingProjects handles GET /api/mediator/audit/projects/init
func (h *Handler) listPendingProjects(c *gin.Context) {
	page, err := h.service.ListPendingProjects(c.Request.Context(), pagination.FromQuery(c, projects.Sorting))
	if err != nil {
		h.respondError(c, err, "Failed to list pending projects", 0)
		return
	}
	c.JSON(http.StatusOK, page)
}

// approveProject handles PATCH /api/mediator/audit/project/:projectId/approve
func (h *Handler) approveProject(c *gin.Context) {
	id, ok := h.pathID(c, "projectId")
	if !ok {
		return
	}
	actorID, err := auth.ActorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err := h.service.ApproveProject(c.Request.Context(), id, actorID); err != nil {
		h.respondError(c, err, "Failed to approve project", id)
		return
	}
	c.Status(http.StatusOK)
}

// rejectProject handles PATCH /api/mediator/audit/project/:projectId/reject
func (h *Handler) rejectProject(c *gin.Context) {
	id, ok := h.pathID(c, "projectId")
	if !ok {
		return
	}
	if err := h.service.RejectProject(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to reject project", id)
		return
	}
	c.Status(http.StatusOK)
}

// =====================================================
// Question Endpoints
// =====================================================

// listUnansweredQuestions handles GET /api/mediator/audit/questions/init
func (h *Handler) listUnansweredQuestions(c *gin.Context) {
	page, err := h.service.ListUnansweredQuestions(c.Request.Context(), pagination.FromQuery(c, questions.Sorting))
	if err != nil {
		h.respondError(c, err, "Failed to list unanswered questions", 0)
		return
	}
	c.JSON(http.StatusOK, page)
}

// answerQuestion handles PATCH /api/mediator/audit/question/:questionId
func (h *Handler) answerQuestion(c *gin.Context) {
	id, ok := h.pathID(c, "questionId")
	if !ok {
		return
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	if err := h.service.AnswerQuestion(c.Request.Context(), id, req.Answer); err != nil {
		h.respondError(c, err, "Failed to answer question", id)
		return
	}
	c.Status(http.StatusOK)
}

// deleteQuestionAnswer handles DELETE /api/mediator/audit/question/:questionId/answer
func (h *Handler) deleteQuestionAnswer(c *gin.Context) {
	id, ok := h.pathID(c, "questionId")
	if !ok {
		return
	}
	if err := h.service.DeleteQuestionAnswer(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Failed to delete question answer", id)
		return
	}
	c.Status(http.StatusOK)
}

// =====================================================
// Summary and Event Feed
// =====================================================

// getSummary handles GET /api/mediator/audit/summary
func (h *Handler) getSummary(c *gin.Context) {
	summary, err := h.service.PendingSummary(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to summarize pending queues", 0)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// streamEvents handles GET /api/mediator/audit/events (WebSocket upgrade)
func (h *Handler) streamEvents(c *gin.Context) {
	actorID, err := auth.ActorID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.events.HandleConnection(c.Writer, c.Request, actorID); err != nil {
		// the upgrader has already written an HTTP error response
		h.logger.Warn("Failed to open event stream", zap.Error(err), zap.Int64("user_id", actorID))
	}
}

// =====================================================
// Helpers
// =====================================================

// pathID parses a numeric path parameter, answering 400 when it is invalid.
func (h *Handler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// bindingMessage renders the first failed validation rule in plain words.
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// respondError maps service errors onto status codes.
func (h *Handler) respondError(c *gin.Context, err error, msg string, id int64) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error(msg, zap.Error(err), zap.Int64("entity_id", id))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
