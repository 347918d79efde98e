package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/broncodesk/ticket-tracker/internal/api/dto"
	"github.com/broncodesk/ticket-tracker/internal/auth"
	"github.com/broncodesk/ticket-tracker/internal/domain"
	"github.com/broncodesk/ticket-tracker/internal/lifecycle"
	"github.com/broncodesk/ticket-tracker/internal/query"
	"github.com/broncodesk/ticket-tracker/pkg/apperrors"
)

// TicketLister serves caller-scoped ticket snapshots. Both the store and
// the snapshot cache satisfy it.
type TicketLister interface {
	ListVisible(ctx context.Context, caller domain.Caller) ([]domain.Ticket, error)
}

// TicketsHandler serves the end-user ticket endpoints.
type TicketsHandler struct {
	engine   *lifecycle.Engine
	lister   TicketLister
	sessions *pageSessions
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(engine *lifecycle.Engine, lister TicketLister, pager query.Pager) *TicketsHandler {
	return &TicketsHandler{engine: engine, lister: lister, sessions: newPageSessions(pager)}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid payload", nil)
	}

	ticket, err := h.engine.CreateTicket(c.UserContext(), caller, domain.Draft{
		Title:       req.Title,
		Description: req.Description,
		Contact:     req.Contact,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	snapshot, err := h.lister.ListVisible(c.UserContext(), caller)
	if err != nil {
		return err
	}
	params := query.Params{Search: parseSearch(c)}
	page := h.sessions.page(caller.ID, params, c.Query("page"))
	return c.JSON(fiber.Map{"data": ticketPage(snapshot, params, h.sessions.pager, page)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	ticket, err := h.engine.GetTicket(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("invalid payload", nil)
	}
	ticket, err := h.engine.AddComment(c.UserContext(), caller, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket)})
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:              ticket.ID,
		Title:           ticket.Title,
		Description:     ticket.Description,
		Contact:         ticket.Contact,
		CreatedBy:       ticket.CreatorName,
		Status:          string(ticket.Status),
		AssignedGroup:   ticket.AssignedGroup,
		AssignedHandler: ticket.AssignedHandler,
		CreatedAt:       ticket.CreatedAt,
		CommentCount:    len(ticket.Comments),
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetail {
	comments := make([]dto.CommentResponse, 0, len(ticket.Comments))
	for _, comment := range ticket.Comments {
		comments = append(comments, dto.CommentResponse{
			ID:        comment.ID,
			Author:    comment.Author,
			Timestamp: comment.Timestamp,
			Body:      comment.Body,
		})
	}
	return dto.TicketDetail{TicketSummary: ticketSummary(ticket), Comments: comments}
}

func ticketPage(snapshot []domain.Ticket, params query.Params, pager query.Pager, page int) dto.TicketPage {
	filtered := query.Apply(snapshot, params)
	window := pager.Window(filtered, page)
	items := make([]dto.TicketSummary, 0, len(window))
	for i := range window {
		items = append(items, ticketSummary(&window[i]))
	}
	return dto.TicketPage{
		Items:      items,
		Page:       page,
		TotalPages: pager.TotalPages(len(filtered)),
		TotalCount: len(filtered),
	}
}

func parseSearch(c *fiber.Ctx) query.SearchParams {
	return query.SearchParams{
		Criteria: query.Criteria(c.Query("search_by", string(query.CriteriaTitle))),
		Text:     c.Query("q"),
	}
}
