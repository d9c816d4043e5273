package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"him-backend/internal/domain"
	"him-backend/internal/service"
	resp "him-backend/internal/transport/http/response"
)

type EventHandler struct {
	svc *service.EventService
}

func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

type eventIn struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	EventDate       time.Time `json:"eventDate"`
	Location        string    `json:"location"`
	EventType       string    `json:"eventType"`
	Status          string    `json:"status"`
	OrganizerID     *uint     `json:"organizerId"`
	MaxParticipants *int      `json:"maxParticipants"`
	RegistrationURL string    `json:"registrationUrl"`
}

func (in eventIn) entity() *domain.Event {
	return &domain.Event{
		Title:           in.Title,
		Description:     in.Description,
		EventDate:       in.EventDate,
		Location:        in.Location,
		EventType:       in.EventType,
		Status:          in.Status,
		OrganizerID:     in.OrganizerID,
		MaxParticipants: in.MaxParticipants,
		RegistrationURL: in.RegistrationURL,
	}
}

// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var in eventIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	e, err := h.svc.Create(c.Request.Context(), in.entity())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, e)
}

// GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	e, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if e == nil {
		resp.Error(c, resp.CodeNotFound, "event not found")
		return
	}
	resp.OK(c, e)
}

// GET /api/events/status/:status
func (h *EventHandler) ListByStatus(c *gin.Context) {
	items, err := h.svc.ListByStatus(c.Request.Context(), c.Param("status"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/events/type/:type
func (h *EventHandler) ListByType(c *gin.Context) {
	items, err := h.svc.ListByType(c.Request.Context(), c.Param("type"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/events/date-range?start=&end=（RFC3339）
func (h *EventHandler) ListByDateRange(c *gin.Context) {
	start, err1 := time.Parse(time.RFC3339, c.Query("start"))
	end, err2 := time.Parse(time.RFC3339, c.Query("end"))
	if err1 != nil || err2 != nil {
		resp.Error(c, resp.CodeBadRequest, "start/end must be RFC3339 timestamps")
		return
	}
	items, err := h.svc.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/events/organizer/:organizerId
func (h *EventHandler) ListByOrganizer(c *gin.Context) {
	id, ok := idParam(c, "organizerId")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	items, err := h.svc.ListByOrganizer(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/events/participant/:memberId
func (h *EventHandler) ListByParticipant(c *gin.Context) {
	id, ok := idParam(c, "memberId")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	items, err := h.svc.ListByParticipant(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// GET /api/events/upcoming
func (h *EventHandler) ListUpcoming(c *gin.Context) {
	items, err := h.svc.ListUpcoming(c.Request.Context())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, items)
}

// PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	var in eventIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.Error(c, resp.CodeBadRequest, err.Error())
		return
	}
	e, err := h.svc.Update(c.Request.Context(), id, in.entity())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, e)
}

// PUT /api/events/:id/organizer/:organizerId
func (h *EventHandler) SetOrganizer(c *gin.Context) {
	id, ok1 := idParam(c, "id")
	orgID, ok2 := idParam(c, "organizerId")
	if !ok1 || !ok2 {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	e, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if e == nil {
		resp.Error(c, resp.CodeNotFound, "event not found")
		return
	}
	in := eventIn{
		Title: e.Title, Description: e.Description, EventDate: e.EventDate,
		Location: e.Location, EventType: e.EventType, Status: e.Status,
		MaxParticipants: e.MaxParticipants, RegistrationURL: e.RegistrationURL,
		OrganizerID: &orgID,
	}
	updated, err := h.svc.Update(c.Request.Context(), id, in.entity())
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, updated)
}

// POST /api/events/:id/participants/:memberId
func (h *EventHandler) AddParticipant(c *gin.Context) {
	id, ok1 := idParam(c, "id")
	memberID, ok2 := idParam(c, "memberId")
	if !ok1 || !ok2 {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	e, err := h.svc.AddParticipant(c.Request.Context(), id, memberID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, e)
}

// DELETE /api/events/:id/participants/:memberId
func (h *EventHandler) RemoveParticipant(c *gin.Context) {
	id, ok1 := idParam(c, "id")
	memberID, ok2 := idParam(c, "memberId")
	if !ok1 || !ok2 {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	e, err := h.svc.RemoveParticipant(c.Request.Context(), id, memberID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, e)
}

// DELETE /api/events/:id
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		resp.Error(c, resp.CodeBadRequest, "invalid id")
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "Event deleted successfully"})
}
