package audit

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"carbon-shop/marketplace-backend/internal/projects"
	"carbon-shop/marketplace-backend/internal/questions"
	"carbon-shop/marketplace-backend/internal/reports/export"
	"carbon-shop/marketplace-backend/internal/users"
	"carbon-shop/marketplace-backend/pkg/pagination"
)

func usersTable(items []users.AppUser) export.Table {
	t := export.Table{
		Sheet:   "Pending users",
		Headers: []string{"id", "name", "email", "role", "company_id", "created_at"},
	}
	for _, u := range items {
		t.Rows = append(t.Rows, []any{u.ID, u.Name, u.Email, string(u.Role), u.CompanyID, u.CreatedAt})
	}
	return t
}

func projectsTable(items []projects.Project) export.Table {
	t := export.Table{
		Sheet:   "Pending projects",
		Headers: []string{"id", "name", "owner_company_id", "credit_amount", "price", "address", "created_at"},
	}
	for _, p := range items {
		t.Rows = append(t.Rows, []any{p.ID, p.Name, p.OwnerCompanyID, p.CreditAmount, p.Price, p.Address, p.CreatedAt})
	}
	return t
}

func questionsTable(items []questions.Question) export.Table {
	t := export.Table{
		Sheet:   "Unanswered questions",
		Headers: []string{"id", "question", "asked_by", "created_at"},
	}
	for _, q := range items {
		t.Rows = append(t.Rows, []any{q.ID, q.Question, q.AskedBy, q.CreatedAt})
	}
	return t
}

// exportPendingUsers handles GET /api/mediator/audit/users/init/export
func (h *Handler) exportPendingUsers(c *gin.Context) {
	page, err := h.service.ListPendingUsers(c.Request.Context(), pagination.FromQuery(c, users.Sorting))
	if err != nil {
		h.respondError(c, err, "Failed to export pending users", 0)
		return
	}
	h.writeExport(c, "pending-users", usersTable(page.Content))
}

// exportPendingProjects handles GET /api/mediator/audit/projects/init/export
func (h *Handler) exportPendingProjects(c *gin.Context) {
	page, err := h.service.ListPendingProjects(c.Request.Context(), pagination.FromQuery(c, projects.Sorting))
	if err != nil {
		h.respondError(c, err, "Failed to export pending projects", 0)
		return
	}
	h.writeExport(c, "pending-projects", projectsTable(page.Content))
}

// exportUnansweredQuestions handles GET /api/mediator/audit/questions/init/export
func (h *Handler) exportUnansweredQuestions(c *gin.Context) {
	page, err := h.service.ListUnansweredQuestions(c.Request.Context(), pagination.FromQuery(c, questions.Sorting))
	if err != nil {
		h.respondError(c, err, "Failed to export unanswered questions", 0)
		return
	}
	h.writeExport(c, "unanswered-questions", questionsTable(page.Content))
}

func (h *Handler) writeExport(c *gin.Context, name string, table export.Table) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, table); err != nil {
		h.respondError(c, err, "Failed to render export", 0)
		return
	}

	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
