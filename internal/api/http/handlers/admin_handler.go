package handlers

import (
	"bytes"

	"github.com/gofiber/fiber/v2"

	"github.com/broncodesk/ticket-tracker/internal/api/dto"
	"github.com/broncodesk/ticket-tracker/internal/auth"
	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/export"
	"github.com/broncodesk/ticket-tracker/internal/lifecycle"
	"github.com/broncodesk/ticket-tracker/internal/query"
	"github.com/broncodesk/ticket-tracker/internal/store"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// AdminHandler serves the administrative ticket endpoints.
type AdminHandler struct {
	engine   *lifecycle.Engine
	lister   TicketLister
	groups   store.GroupDirectory
	sessions *pageSessions
}

// NewAdminHandler constructs handler.
func NewAdminHandler(engine *lifecycle.Engine, lister TicketLister, groups store.GroupDirectory, pager query.Pager) *AdminHandler {
	return &AdminHandler{engine: engine, lister: lister, groups: groups, sessions: newPageSessions(pager)}
}

// ListTickets GET /admin/tickets.
func (h *AdminHandler) ListTickets(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	params, err := parseAdminQuery(c)
	if err != nil {
		return err
	}
	snapshot, err := h.lister.ListVisible(c.UserContext(), caller)
	if err != nil {
		return err
	}
	page := h.sessions.page(caller.ID, params, c.Query("page"))
	return c.JSON(fiber.Map{"data": ticketPage(snapshot, params, h.sessions.pager, page)})
}

// PatchTicket PATCH /admin/tickets/:id.
func (h *AdminHandler) PatchTicket(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.PatchTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid payload", nil)
	}

	var patch domain.TicketPatch
	if req.Status != nil {
		status := domain.Status(*req.Status)
		patch.Status = &status
	}
	if req.Group.Set {
		patch.Group = &domain.GroupChange{Group: req.Group.Value}
	}
	if req.Handler.Set {
		patch.Handler = &domain.HandlerChange{Handler: req.Handler.Value}
	}

	ticket, err := h.engine.Apply(c.UserContext(), caller, c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// ExportTickets GET /admin/tickets/export. The export covers the whole
// filtered set, never a pagination window.
func (h *AdminHandler) ExportTickets(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	params, err := parseAdminQuery(c)
	if err != nil {
		return err
	}
	snapshot, err := h.lister.ListVisible(c.UserContext(), caller)
	if err != nil {
		return err
	}
	filtered := query.Apply(snapshot, params)

	var buf bytes.Buffer
	rows := export.NewRows(filtered, export.Options{IncludeRequester: true})
	if err := export.WriteCSV(&buf, rows); err != nil {
		return apperrors.NewStoreUnavailable(err)
	}

	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tickets.csv"`)
	return c.Send(buf.Bytes())
}

// ListGroups GET /admin/groups.
func (h *AdminHandler) ListGroups(c *fiber.Ctx) error {
	groups, err := h.groups.List(c.UserContext())
	if err != nil {
		return apperrors.NewStoreUnavailable(err)
	}
	items := make([]dto.GroupResponse, 0, len(groups))
	for i := range groups {
		items = append(items, dto.GroupResponse{
			ID:             groups[i].ID,
			Name:           groups[i].Name,
			Members:        groups[i].Members,
			DefaultHandler: groups[i].DefaultHandler,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseAdminQuery(c *fiber.Ctx) (query.Params, error) {
	params := query.Params{
		Search: parseSearch(c),
		View:   query.View(c.Query("view", string(query.ViewAll))),
	}
	switch params.View {
	case query.ViewActive, query.ViewOpen, query.ViewAll:
	default:
		return query.Params{}, apperrors.NewValidation("unknown view", map[string]any{"view": params.View})
	}

	if raw := c.Query("status"); raw != "" {
		status := domain.Status(raw)
		if !status.Valid() {
			return query.Params{}, apperrors.NewValidation("unknown status", map[string]any{"status": raw})
		}
		params.Filters.Status = &status
	}
	if raw := c.Query("group"); raw != "" {
		group := raw
		params.Filters.Group = &group
	}
	if raw := c.Query("handler"); raw != "" {
		handler := raw
		params.Filters.Handler = &handler
	}
	return params, nil
}
