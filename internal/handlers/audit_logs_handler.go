package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/httpresp"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db    *gorm.DB
	clock timezone.Clock
}

func NewAuditLogsHandler(db *gorm.DB, clock timezone.Clock) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, clock: clock}
}

// List pages the audit trail, newest first. ?from= and ?to= are shop days,
// both inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	paging := httpresp.PagingFromQuery(c, 50, 200)

	q := h.db.
		WithContext(c.Request.Context()).
		Model(&models.AuditLog{})

	for _, f := range [...]struct{ param, column string }{
		{"action", "action"},
		{"entity", "entity"},
		{"entityId", "entity_id"},
		{"actorId", "actor_id"},
	} {
		if v := c.Query(f.param); v != "" {
			q = q.Where(f.column+" = ?", v)
		}
	}

	loc := h.clock.Location()
	if raw := c.Query("from"); raw != "" {
		from, err := timezone.ParseDate(raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from")
			return
		}
		q = q.Where("created_at >= ?", from)
	}
	if raw := c.Query("to"); raw != "" {
		to, err := timezone.ParseDate(raw, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to")
			return
		}
		q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC, id DESC").
		Limit(paging.Limit).
		Offset(paging.Offset()).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "")
		return
	}

	httpresp.Page(c, paging, total, logs)
}
