// Package handler exposes the triage pipeline over HTTP. Error responses
// follow one shape everywhere: {"detail": "<message>"} with 422 for bad
// input and 404 for missing records.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/arc-self/soc-triage/internal/pipeline"
	"github.com/arc-self/soc-triage/internal/service"
)

// defaultRecentEventsLimit is the page size when the limit query parameter is
// absent.
const defaultRecentEventsLimit = 50

type Handler struct {
	ingest    service.IngestService
	query     service.QueryService
	approvals service.ApprovalService
	log       *zap.Logger
}

func New(ingest service.IngestService, query service.QueryService, approvals service.ApprovalService, logger *zap.Logger) *Handler {
	return &Handler{
		ingest:    ingest,
		query:     query,
		approvals: approvals,
		log:       logger,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.POST("/ingest/logs", h.IngestLogs)

	e.GET("/incidents", h.ListIncidents)
	e.GET("/incidents/:id", h.GetIncident)
	e.GET("/incidents/:id/evidence", h.IncidentEvidence)
	e.GET("/incidents/by-event/:event_id", h.IncidentByEvent)
	e.GET("/incidents/by-cluster/:ck", h.IncidentByCluster)
	e.POST("/incidents/:id/suggest_actions", h.SuggestActions)
	e.POST("/incidents/:id/approve_action", h.ApproveAction)

	e.GET("/events/recent", h.RecentEvents)
	e.GET("/events/:event_id/evidence", h.EventEvidence)

	// Aliases kept for existing dashboard clients.
	e.GET("/evidence/incident/:id", h.IncidentEvidence)
	e.GET("/evidence/:event_id", h.EventEvidence)

	e.GET("/metrics", h.Metrics)
	e.GET("/health", h.Health)
}

// logEventRequest mirrors the producer wire format. Message is a pointer so
// a missing field can be told apart from an empty string; unknown fields are
// ignored.
type logEventRequest struct {
	Source    string  `json:"source"`
	EventType string  `json:"event_type"`
	Message   *string `json:"message"`
	User      string  `json:"user"`
	IP        string  `json:"ip"`
	Email     string  `json:"email"`
	Region    string  `json:"region"`
	Country   string  `json:"country"`
	Action    string  `json:"action"`
	Status    string  `json:"status"`
	TS        string  `json:"ts"`
}

type ingestRequest struct {
	Events []logEventRequest `json:"events"`
}

type approveRequest struct {
	ActionName string `json:"action_name"`
	ApprovedBy string `json:"approved_by"`
	Notes      string `json:"notes"`
}

func (h *Handler) IngestLogs(c echo.Context) error {
	var req ingestRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "malformed request body")
	}

	events := make([]pipeline.Event, 0, len(req.Events))
	for i, e := range req.Events {
		if e.Message == nil {
			return detail(c, http.StatusUnprocessableEntity, "events["+strconv.Itoa(i)+"].message is required")
		}
		source := e.Source
		if source == "" {
			source = "app"
		}
		eventType := e.EventType
		if eventType == "" {
			eventType = "auth_failure"
		}
		events = append(events, pipeline.Event{
			Source:    source,
			EventType: eventType,
			Message:   *e.Message,
			User:      e.User,
			IP:        e.IP,
			Email:     e.Email,
			Region:    e.Region,
			Country:   e.Country,
			Action:    e.Action,
			Status:    e.Status,
			TS:        e.TS,
		})
	}

	summary, err := h.ingest.IngestBatch(c.Request().Context(), events)
	if err != nil {
		h.log.Error("ingest batch failed", zap.Error(err))
		return detail(c, http.StatusInternalServerError, "ingest failed")
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) ListIncidents(c echo.Context) error {
	incidents, err := h.query.ListIncidents(c.Request().Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, incidents)
}

func (h *Handler) GetIncident(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid incident id")
	}
	incident, err := h.query.GetIncident(c.Request().Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, incident)
}

func (h *Handler) IncidentEvidence(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid incident id")
	}
	evidence, err := h.query.IncidentEvidence(c.Request().Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, evidence)
}

func (h *Handler) IncidentByEvent(c echo.Context) error {
	id, err := pathID(c, "event_id")
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid event id")
	}
	ref, err := h.query.IncidentByEvent(c.Request().Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) IncidentByCluster(c echo.Context) error {
	ref, err := h.query.IncidentByCluster(c.Request().Context(), c.Param("ck"))
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, ref)
}

func (h *Handler) SuggestActions(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid incident id")
	}
	suggestion, err := h.approvals.SuggestActions(c.Request().Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, suggestion)
}

func (h *Handler) ApproveAction(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid incident id")
	}
	var req approveRequest
	if err := c.Bind(&req); err != nil {
		return detail(c, http.StatusUnprocessableEntity, "malformed request body")
	}
	receipt, err := h.approvals.ApproveAction(c.Request().Context(), service.ApproveActionInput{
		IncidentID: id,
		ActionName: req.ActionName,
		ApprovedBy: req.ApprovedBy,
		Notes:      req.Notes,
	})
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, receipt)
}

func (h *Handler) RecentEvents(c echo.Context) error {
	// Only an absent limit gets the default page size; an explicit value,
	// zero included, is passed through for the service to clamp.
	limit := int64(defaultRecentEventsLimit)
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return detail(c, http.StatusUnprocessableEntity, "limit must be an integer")
		}
		limit = n
	}
	events, err := h.query.RecentEvents(c.Request().Context(), limit)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *Handler) EventEvidence(c echo.Context) error {
	id, err := pathID(c, "event_id")
	if err != nil {
		return detail(c, http.StatusUnprocessableEntity, "invalid event id")
	}
	evidence, err := h.query.EventEvidence(c.Request().Context(), id)
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, evidence)
}

func (h *Handler) Metrics(c echo.Context) error {
	m, err := h.query.Metrics(c.Request().Context())
	if err != nil {
		return h.serviceError(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) serviceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return detail(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		return detail(c, http.StatusUnprocessableEntity, err.Error())
	default:
		h.log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return detail(c, http.StatusInternalServerError, "internal error")
	}
}

func detail(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"detail": msg})
}

func pathID(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
