package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/httpresp"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit := pageParams(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Filters
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}
	userID, ok := optionalUUIDQuery(c, "userId")
	if !ok {
		return
	}
	if userID != nil {
		q = q.Where("user_id = ?", *userID)
	}

	if from := c.Query("from"); from != "" {
		d, err := timezone.ParseDate(from)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at >= ?", timezone.At(d, 0, h.loc))
	}
	if to := c.Query("to"); to != "" {
		d, err := timezone.ParseDate(to)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at < ?", timezone.At(d, 24*time.Hour, h.loc))
	}

	// --------------------------------------------------
	// Total + page
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, logs, total, page, limit)
}
