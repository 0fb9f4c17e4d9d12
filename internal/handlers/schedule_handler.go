package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type ScheduleHandler struct {
	list    *ucSchedule.ListOverrides
	save    *ucSchedule.SaveOverride
	delete  *ucSchedule.DeleteOverride
	resolve *ucSchedule.ResolveWindow
	clock   timezone.Clock
}

func NewScheduleHandler(
	list *ucSchedule.ListOverrides,
	save *ucSchedule.SaveOverride,
	delete *ucSchedule.DeleteOverride,
	resolve *ucSchedule.ResolveWindow,
	clock timezone.Clock,
) *ScheduleHandler {
	return &ScheduleHandler{
		list:    list,
		save:    save,
		delete:  delete,
		resolve: resolve,
		clock:   clock,
	}
}

// SaveScheduleRequest is one day override. Day is "YYYY-MM-DD" or a
// weekday index, "0" being Sunday.
type SaveScheduleRequest struct {
	BarberID   string `json:"barberId"`
	Day        string `json:"day" binding:"required"`
	StartTime  string `json:"startTime" binding:"required"`
	EndTime    string `json:"endTime" binding:"required"`
	BreakStart string `json:"breakStart"`
	BreakEnd   string `json:"breakEnd"`
}

// ListMine lists the caller's overrides; a super admin may pass ?barberId=.
func (h *ScheduleHandler) ListMine(c *gin.Context) {
	actor := middleware.PrincipalFrom(c)

	barberID := actor.ID
	if q := c.Query("barberId"); q != "" && actor.Role == domain.RoleSuperAdmin {
		barberID = q
	}

	h.listFor(c, barberID)
}

func (h *ScheduleHandler) ListForBarber(c *gin.Context) {
	h.listFor(c, c.Param("id"))
}

func (h *ScheduleHandler) listFor(c *gin.Context, barberID string) {
	overrides, err := h.list.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, overrides)
}

func (h *ScheduleHandler) Save(c *gin.Context) {
	var req SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	s, err := h.save.Execute(c.Request.Context(), ucSchedule.SaveOverrideInput{
		Actor:      middleware.PrincipalFrom(c),
		BarberID:   req.BarberID,
		Day:        req.Day,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, s)
}

func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.delete.Execute(c.Request.Context(), middleware.PrincipalFrom(c), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Window reports the effective working window of a barber on ?date=,
// today by default.
func (h *ScheduleHandler) Window(c *gin.Context) {
	day := h.clock.Today()
	if raw := c.Query("date"); raw != "" {
		d, err := timezone.ParseDate(raw, h.clock.Location())
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "")
			return
		}
		day = d
	}

	win, err := h.resolve.Execute(c.Request.Context(), c.Param("id"), day)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	resp := gin.H{
		"date":     day.Format(time.DateOnly),
		"start":    domain.MinutesToTime(win.Window.StartMin),
		"end":      domain.MinutesToTime(win.Window.EndMin),
		"source":   win.Source,
		"bookable": win.Bookable(),
	}
	if win.Break != nil {
		resp["breakStart"] = domain.MinutesToTime(win.Break.StartMin)
		resp["breakEnd"] = domain.MinutesToTime(win.Break.EndMin)
	}
	c.JSON(http.StatusOK, resp)
}
