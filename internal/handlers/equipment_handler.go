package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	"github.com/BruksfildServices01/studio-booking/internal/cache"
	"github.com/BruksfildServices01/studio-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/studio-booking/internal/dto"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/httpresp"
	"github.com/BruksfildServices01/studio-booking/internal/middleware"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/storage"
)

const equipmentImageSide = 1200

// ======================================================
// HANDLER
// ======================================================

type EquipmentHandler struct {
	db     *gorm.DB
	cache  cache.Cache
	ttl    time.Duration
	images storage.ImageStore
	audit  *audit.Dispatcher
}

func NewEquipmentHandler(
	db *gorm.DB,
	c cache.Cache,
	ttl time.Duration,
	images storage.ImageStore,
	audit *audit.Dispatcher,
) *EquipmentHandler {
	return &EquipmentHandler{
		db:     db,
		cache:  c,
		ttl:    ttl,
		images: images,
		audit:  audit,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateEquipmentRequest struct {
	Name                   string                  `json:"name" binding:"required,max=120"`
	Category               string                  `json:"category" binding:"required,equipment_category"`
	Description            string                  `json:"description"`
	Quantity               int                     `json:"quantity" binding:"min=0"`
	IsIncluded             bool                    `json:"isIncluded"`
	ExtraCost              decimal.Decimal         `json:"extraCost"`
	IsActive               *bool                   `json:"isActive"`
	Order                  int                     `json:"order"`
	Specifications         map[string]string       `json:"specifications"`
	AllowQuantitySelection bool                    `json:"allowQuantitySelection"`
	Options                models.EquipmentOptions `json:"options"`
}

type UpdateEquipmentRequest struct {
	Name                   *string                  `json:"name" binding:"omitempty,min=1,max=120"`
	Category               *string                  `json:"category" binding:"omitempty,equipment_category"`
	Description            *string                  `json:"description"`
	Quantity               *int                     `json:"quantity" binding:"omitempty,min=0"`
	IsIncluded             *bool                    `json:"isIncluded"`
	ExtraCost              *decimal.Decimal         `json:"extraCost"`
	IsActive               *bool                    `json:"isActive"`
	Order                  *int                     `json:"order"`
	Specifications         *map[string]string       `json:"specifications"`
	AllowQuantitySelection *bool                    `json:"allowQuantitySelection"`
	Options                *models.EquipmentOptions `json:"options"`
}

type ReorderEquipmentRequest struct {
	Items []struct {
		ID    uuid.UUID `json:"id" binding:"required"`
		Order int       `json:"order"`
	} `json:"items" binding:"required,dive"`
}

// ======================================================
// QUERIES
// ======================================================

// List filters by category and, for admins, by isActive. Anonymous callers
// only ever see active items.
func (h *EquipmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	category := c.Query("category")

	var (
		items []dto.EquipmentDTO
		err   error
	)
	if middleware.IsAdmin(c) {
		q := h.db.WithContext(ctx).Model(&models.Equipment{})
		if category != "" {
			q = q.Where("category = ?", category)
		}
		switch c.Query("isActive") {
		case "true":
			q = q.Where("is_active = ?", true)
		case "false":
			q = q.Where("is_active = ?", false)
		}
		var rows []models.Equipment
		err = q.Order("sort_order ASC").Order("created_at DESC").Find(&rows).Error
		items = dto.NewEquipmentDTOs(rows)
	} else {
		items, err = h.active(ctx)
		if category != "" {
			items = byCategory(items, category)
		}
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *EquipmentHandler) ByCategory(c *gin.Context) {
	category := c.Param("category")
	if !catalog.IsCategory(category) {
		httperr.BadRequest(c, "invalid_category", "unknown category")
		return
	}

	items, err := h.active(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, byCategory(items, category))
}

func (h *EquipmentHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()
	stats, err := cache.Remember(ctx, h.cache, cacheKeyEquipmentStats, h.ttl, func() ([]dto.CategoryStatDTO, error) {
		var rows []dto.CategoryStatDTO
		err := h.db.WithContext(ctx).
			Model(&models.Equipment{}).
			Select("category, COUNT(*) AS count").
			Where("is_active = ?", true).
			Group("category").
			Order("category").
			Scan(&rows).Error
		return rows, err
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, stats)
}

func (h *EquipmentHandler) Get(c *gin.Context) {
	e, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.NewEquipmentDTO(e))
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *EquipmentHandler) Create(c *gin.Context) {
	var req CreateEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Specifications == nil {
		req.Specifications = map[string]string{}
	}
	if req.Options == nil {
		req.Options = models.EquipmentOptions{}
	}

	e := models.Equipment{
		Name:                   req.Name,
		Category:               req.Category,
		Description:            req.Description,
		Quantity:               req.Quantity,
		IsIncluded:             req.IsIncluded,
		ExtraCost:              req.ExtraCost,
		IsActive:               req.IsActive == nil || *req.IsActive,
		Order:                  req.Order,
		Specifications:         datatypes.NewJSONType(req.Specifications),
		AllowQuantitySelection: req.AllowQuantitySelection,
		Options:                datatypes.NewJSONType(req.Options),
	}
	if err := catalog.ValidateEquipment(&e); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&e).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.changed(c, "equipment_created", e.ID)
	httpresp.Created(c, dto.NewEquipmentDTO(&e))
}

func (h *EquipmentHandler) Update(c *gin.Context) {
	e, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		e.Name = *req.Name
	}
	if req.Category != nil {
		e.Category = *req.Category
	}
	if req.Description != nil {
		e.Description = *req.Description
	}
	if req.Quantity != nil {
		e.Quantity = *req.Quantity
	}
	if req.IsIncluded != nil {
		e.IsIncluded = *req.IsIncluded
	}
	if req.ExtraCost != nil {
		e.ExtraCost = *req.ExtraCost
	}
	if req.IsActive != nil {
		e.IsActive = *req.IsActive
	}
	if req.Order != nil {
		e.Order = *req.Order
	}
	if req.Specifications != nil {
		e.Specifications = datatypes.NewJSONType(*req.Specifications)
	}
	if req.AllowQuantitySelection != nil {
		e.AllowQuantitySelection = *req.AllowQuantitySelection
	}
	if req.Options != nil {
		e.Options = datatypes.NewJSONType(*req.Options)
	}
	if err := catalog.ValidateEquipment(e); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(e).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.changed(c, "equipment_updated", e.ID)
	httpresp.OK(c, dto.NewEquipmentDTO(e))
}

// Delete removes the item, or only deactivates it while bookings reference it.
func (h *EquipmentHandler) Delete(c *gin.Context) {
	e, ok := h.find(c)
	if !ok {
		return
	}
	db := h.db.WithContext(c.Request.Context())

	var refs int64
	if err := db.Model(&models.BookingEquipment{}).
		Where("equipment_id = ?", e.ID).
		Count(&refs).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if refs > 0 {
		if err := db.Model(e).Update("is_active", false).Error; err != nil {
			httperr.Respond(c, err)
			return
		}
		h.changed(c, "equipment_deactivated", e.ID)
		httpresp.OK(c, gin.H{"deleted": false, "deactivated": true})
		return
	}

	if err := db.Delete(e).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	removeStoredImage(c, h.images, e.Image)

	h.changed(c, "equipment_deleted", e.ID)
	httpresp.OK(c, gin.H{"deleted": true, "deactivated": false})
}

func (h *EquipmentHandler) UploadImage(c *gin.Context) {
	e, ok := h.find(c)
	if !ok {
		return
	}

	url, ok := uploadImage(c, h.images, "equipment", e.ID.String(), equipmentImageSide, "image", "equipment")
	if !ok {
		return
	}

	previous := e.Image
	if err := h.db.WithContext(c.Request.Context()).Model(e).Update("image", url).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	e.Image = url
	removeStoredImage(c, h.images, previous)

	h.changed(c, "equipment_image_uploaded", e.ID)
	httpresp.OK(c, dto.NewEquipmentDTO(e))
}

func (h *EquipmentHandler) Reorder(c *gin.Context) {
	var req ReorderEquipmentRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		for _, item := range req.Items {
			if err := tx.Model(&models.Equipment{}).
				Where("id = ?", item.ID).
				Update("sort_order", item.Order).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.changed(c, "equipment_reordered", uuid.Nil)
	httpresp.OK(c, gin.H{"updated": len(req.Items)})
}

// ======================================================
// HELPERS
// ======================================================

func (h *EquipmentHandler) active(ctx context.Context) ([]dto.EquipmentDTO, error) {
	return cache.Remember(ctx, h.cache, cacheKeyActiveEquipment, h.ttl, func() ([]dto.EquipmentDTO, error) {
		var rows []models.Equipment
		if err := h.db.WithContext(ctx).
			Where("is_active = ?", true).
			Order("sort_order ASC").
			Order("name ASC").
			Find(&rows).Error; err != nil {
			return nil, err
		}
		return dto.NewEquipmentDTOs(rows), nil
	})
}

func byCategory(items []dto.EquipmentDTO, category string) []dto.EquipmentDTO {
	out := make([]dto.EquipmentDTO, 0, len(items))
	for _, e := range items {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

func (h *EquipmentHandler) find(c *gin.Context) (*models.Equipment, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}

	var e models.Equipment
	if err := h.db.WithContext(c.Request.Context()).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "equipment_not_found", "equipment not found")
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &e, true
}

func (h *EquipmentHandler) changed(c *gin.Context, action string, id uuid.UUID) {
	invalidate(c, h.cache, cacheKeyActiveEquipment, cacheKeyEquipmentStats)

	ev := audit.Event{
		UserID: middleware.UserID(c),
		Action: action,
		Entity: "equipment",
	}
	if id != uuid.Nil {
		ev.EntityID = &id
	}
	h.audit.Dispatch(ev)
}
