package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/identity"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/session"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AuthStateWatcher interface {
	AuthState(ctx context.Context, sess *identity.Session) <-chan *identity.Principal
}

// SessionVerifier re-applies the idle policy to an open stream without
// counting the stream as activity.
type SessionVerifier interface {
	Verify(ctx context.Context, sessionID string) error
}

type AppointmentHandler struct {
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
	get          *ucAppointment.GetAppointment
	update       *ucAppointment.UpdateAppointment
	cancel       *ucAppointment.CancelAppointment
	complete     *ucAppointment.CompleteAppointment
	list         *ucAppointment.ListAppointments
	listByMonth  *ucAppointment.ListAppointmentsByMonth
	watch        *ucAppointment.WatchAppointments
	authState    AuthStateWatcher
	sessions     SessionVerifier
	liveCheck    time.Duration
	clock        timezone.Clock
}

type AppointmentUseCases struct {
	Availability *ucAppointment.GetAvailability
	Create       *ucAppointment.CreateAppointment
	Get          *ucAppointment.GetAppointment
	Update       *ucAppointment.UpdateAppointment
	Cancel       *ucAppointment.CancelAppointment
	Complete     *ucAppointment.CompleteAppointment
	List         *ucAppointment.ListAppointments
	ListByMonth  *ucAppointment.ListAppointmentsByMonth
	Watch        *ucAppointment.WatchAppointments
}

// NewAppointmentHandler builds the handler; liveCheck is how often an open
// live stream re-checks that its session is still fresh.
func NewAppointmentHandler(
	uc AppointmentUseCases,
	authState AuthStateWatcher,
	sessions SessionVerifier,
	liveCheck time.Duration,
	clock timezone.Clock,
) *AppointmentHandler {
	return &AppointmentHandler{
		availability: uc.Availability,
		create:       uc.Create,
		get:          uc.Get,
		update:       uc.Update,
		cancel:       uc.Cancel,
		complete:     uc.Complete,
		list:         uc.List,
		listByMonth:  uc.ListByMonth,
		watch:        uc.Watch,
		authState:    authState,
		sessions:     sessions,
		liveCheck:    liveCheck,
		clock:        clock,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	BarberID    string `json:"barberId" binding:"required"`
	Service     string `json:"service" binding:"required"`
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	ClientID    string `json:"clientId"`
	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`
}

type UpdateAppointmentRequest struct {
	BarberID    string `json:"barberId"`
	Service     string `json:"service"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
}

// ======================================================
// AVAILABILITY (public)
// ======================================================

func (h *AppointmentHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	service := c.Query("service")
	if dateStr == "" || service == "" {
		httperr.BadRequest(c, "missing_date_or_service", "")
		return
	}

	date, err := timezone.ParseDate(dateStr, h.clock.Location())
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "")
		return
	}

	out, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		BarberID: c.Param("id"),
		Service:  service,
		Date:     date,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

// ======================================================
// CREATE / READ / EDIT
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		Actor:       middleware.PrincipalFrom(c),
		BarberID:    req.BarberID,
		Service:     req.Service,
		Date:        req.Date,
		Time:        req.Time,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		Actor:       middleware.PrincipalFrom(c),
		ID:          c.Param("id"),
		BarberID:    req.BarberID,
		Service:     req.Service,
		Date:        req.Date,
		Time:        req.Time,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// CANCEL / COMPLETE
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	if err := h.cancel.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.complete.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	filters, err := filtersFromQuery(c, h.clock.Location())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.list.Execute(c.Request.Context(), middleware.PrincipalFrom(c), filters)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, out)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "")
		return
	}

	filters, err := filtersFromQuery(c, h.clock.Location())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), middleware.PrincipalFrom(c), filters, year, month)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": out,
	})
}

// ======================================================
// LIVE (server-sent events)
// ======================================================

// Live streams the visible list every time the appointments or the
// filters change. The first event carries the stream id used to change
// filters. The stream ends when the session signs out or goes idle;
// pushed events do not keep the session alive.
func (h *AppointmentHandler) Live(c *gin.Context) {
	filters, err := filtersFromQuery(c, h.clock.Location())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sess := middleware.SessionFrom(c)
	view := h.watch.Execute(ctx, middleware.PrincipalFrom(c), filters)
	auth := h.authState.AuthState(ctx, sess)

	ticker := time.NewTicker(h.liveCheck)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	announced := false
	c.Stream(func(w io.Writer) bool {
		if !announced {
			announced = true
			c.SSEvent("stream", gin.H{"id": view.ID()})
			return true
		}

		select {
		case aps, ok := <-view.Updates():
			if !ok {
				return false
			}
			c.SSEvent("appointments", dto.AppointmentList(aps))
			return true
		case p, ok := <-auth:
			if !ok || p == nil {
				c.SSEvent("signed_out", gin.H{"redirect": "/login"})
				return false
			}
			return true
		case <-ticker.C:
			if err := h.sessions.Verify(ctx, sess.ID); err != nil {
				if session.IsExpired(err) {
					c.SSEvent("signed_out", gin.H{"redirect": "/login"})
				} else {
					c.SSEvent("error", gin.H{"error_code": "session_check_failed"})
				}
				return false
			}
			return true
		case <-ctx.Done():
			return false
		}
	})
}

func (h *AppointmentHandler) SetLiveFilters(c *gin.Context) {
	filters, err := filtersFromQuery(c, h.clock.Location())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if !h.watch.SetFilters(middleware.PrincipalFrom(c), c.Param("stream"), filters) {
		httperr.NotFound(c, "stream_not_found", "")
		return
	}
	c.Status(http.StatusNoContent)
}
