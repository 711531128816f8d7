package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/park-waits-service/internal/domain/parks"
	"github.com/preston-bernstein/park-waits-service/internal/logging"
	"github.com/preston-bernstein/park-waits-service/internal/poller"
	"github.com/preston-bernstein/park-waits-service/internal/timeutil"
	"github.com/preston-bernstein/park-waits-service/internal/waitlog"
)

// ParamEntityID is the chi URL parameter naming a park.
const ParamEntityID = "entityID"

type nowFunc func() time.Time

// WindowResolver reports a park's operating window for a date.
type WindowResolver interface {
	Resolve(ctx context.Context, entityID, date string) (parks.Window, bool)
}

// LogReader loads a park's recorded rows for a day.
type LogReader interface {
	Load(parkName string, day time.Time) ([]waitlog.Row, error)
}

// Handler serves read-only views over the configured parks and their logs.
type Handler struct {
	parks    []parks.Park
	byID     map[string]parks.Park
	resolver WindowResolver
	logs     LogReader
	logger   *slog.Logger
	now      nowFunc
	statusFn func() poller.Status
}

// NewHandler constructs a Handler with defaults.
func NewHandler(parkList []parks.Park, resolver WindowResolver, logs LogReader, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	byID := make(map[string]parks.Park, len(parkList))
	for _, p := range parkList {
		byID[p.EntityID] = p
	}
	return &Handler{
		parks:    parkList,
		byID:     byID,
		resolver: resolver,
		logs:     logs,
		logger:   logger,
		now:      time.Now,
		statusFn: statusFn,
	}
}

// ParkView is a configured park with today's state.
type ParkView struct {
	Name     string             `json:"name"`
	EntityID string             `json:"entityId"`
	Timezone string             `json:"timezone"`
	Date     string             `json:"date"`
	Event    string             `json:"event"`
	LastPoll *poller.ParkStatus `json:"lastPoll,omitempty"`
}

// ScheduleResponse is a park's operating window for a date.
type ScheduleResponse struct {
	EntityID string    `json:"entityId"`
	Date     string    `json:"date"`
	Open     time.Time `json:"open"`
	Close    time.Time `json:"close"`
	OpenNow  bool      `json:"openNow"`
}

// WaitsResponse carries the rows recorded for a park on a date.
type WaitsResponse struct {
	Park  string        `json:"park"`
	Date  string        `json:"date"`
	Count int           `json:"count"`
	Rows  []waitlog.Row `json:"rows"`
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Parks lists configured parks in declared order with today's event and last poll.
func (h *Handler) Parks(w nethttp.ResponseWriter, r *nethttp.Request) {
	var status poller.Status
	if h.statusFn != nil {
		status = h.statusFn()
	}
	views := make([]ParkView, 0, len(h.parks))
	for _, p := range h.parks {
		today := h.now().In(p.Loc())
		view := ParkView{
			Name:     p.Name,
			EntityID: p.EntityID,
			Timezone: p.Timezone,
			Date:     timeutil.FormatDate(today),
			Event:    parks.ActiveEvent(p.Events, today),
		}
		if ps, ok := status.Parks[p.EntityID]; ok {
			view.LastPoll = &ps
		}
		views = append(views, view)
	}
	writeJSON(w, nethttp.StatusOK, views, h.logger)
}

// Schedule returns a park's operating window for ?date= (default: today, park-local).
func (h *Handler) Schedule(w nethttp.ResponseWriter, r *nethttp.Request) {
	park, ok := h.park(w, r)
	if !ok {
		return
	}
	day, ok := h.day(w, r, park)
	if !ok {
		return
	}
	if h.resolver == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "schedule lookup not configured", h.logger)
		return
	}
	date := timeutil.FormatDate(day)
	window, found := h.resolver.Resolve(r.Context(), park.EntityID, date)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "no operating schedule", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, ScheduleResponse{
		EntityID: park.EntityID,
		Date:     date,
		Open:     window.Open,
		Close:    window.Close,
		OpenNow:  window.Contains(h.now()),
	}, h.logger)
}

// Waits returns the rows recorded for a park on ?date= (default: today, park-local).
func (h *Handler) Waits(w nethttp.ResponseWriter, r *nethttp.Request) {
	park, ok := h.park(w, r)
	if !ok {
		return
	}
	day, ok := h.day(w, r, park)
	if !ok {
		return
	}
	if h.logs == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "wait logs not configured", h.logger)
		return
	}
	logger := loggerFromContext(r, h.logger)
	date := timeutil.FormatDate(day)

	rows, err := h.logs.Load(park.Name, day)
	switch {
	case errors.Is(err, waitlog.ErrNoLog):
		writeError(w, r, nethttp.StatusNotFound, "no log for date", h.logger)
		return
	case err != nil:
		logging.Error(logger, "wait log unreadable", err, logging.FieldPark, park.Name, logging.FieldDate, date)
		writeError(w, r, nethttp.StatusInternalServerError, "wait log unreadable", h.logger)
		return
	}
	if rows == nil {
		rows = []waitlog.Row{}
	}
	logging.Info(logger, "served wait log", logging.FieldPark, park.Name, logging.FieldDate, date, logging.FieldCount, len(rows))
	writeJSON(w, nethttp.StatusOK, WaitsResponse{Park: park.Name, Date: date, Count: len(rows), Rows: rows}, h.logger)
}

// NotFound answers unknown routes in the JSON error shape.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed answers known routes hit with the wrong method.
func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}

func (h *Handler) park(w nethttp.ResponseWriter, r *nethttp.Request) (parks.Park, bool) {
	id := chi.URLParam(r, ParamEntityID)
	park, ok := h.byID[id]
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "park not found", h.logger)
		return parks.Park{}, false
	}
	return park, true
}

// day resolves ?date=, defaulting to today in the park's zone.
func (h *Handler) day(w nethttp.ResponseWriter, r *nethttp.Request, park parks.Park) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return timeutil.DateOf(h.now().In(park.Loc())), true
	}
	d, err := timeutil.ParseDate(raw)
	if err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return time.Time{}, false
	}
	return d, true
}
