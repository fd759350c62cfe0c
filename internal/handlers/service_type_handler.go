package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	"github.com/BruksfildServices01/studio-booking/internal/cache"
	"github.com/BruksfildServices01/studio-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/studio-booking/internal/dto"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/httpresp"
	"github.com/BruksfildServices01/studio-booking/internal/middleware"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type ServiceTypeHandler struct {
	db    *gorm.DB
	cache cache.Cache
	ttl   time.Duration
	audit *audit.Dispatcher
}

func NewServiceTypeHandler(db *gorm.DB, c cache.Cache, ttl time.Duration, audit *audit.Dispatcher) *ServiceTypeHandler {
	return &ServiceTypeHandler{db: db, cache: c, ttl: ttl, audit: audit}
}

// --------- Requests ---------

type CreateServiceTypeRequest struct {
	Name        string          `json:"name" binding:"required,max=120"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Duration    int             `json:"duration" binding:"required,min=1,max=24"`
	IsActive    *bool           `json:"isActive"`
	Order       int             `json:"order"`
}

type UpdateServiceTypeRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=120"`
	Description *string          `json:"description"`
	BasePrice   *decimal.Decimal `json:"basePrice"`
	Duration    *int             `json:"duration" binding:"omitempty,min=1,max=24"`
	IsActive    *bool            `json:"isActive"`
	Order       *int             `json:"order"`
}

type ReorderRequest struct {
	Order int `json:"order"`
}

// --------- Handlers ---------

// List returns active services to the public and every service to admins.
func (h *ServiceTypeHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if middleware.IsAdmin(c) {
		services, err := h.load(ctx, false)
		if err != nil {
			httperr.Respond(c, err)
			return
		}
		httpresp.List(c, services)
		return
	}

	services, err := cache.Remember(ctx, h.cache, cacheKeyActiveServices, h.ttl, func() ([]dto.ServiceTypeDTO, error) {
		return h.load(ctx, true)
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceTypeHandler) load(ctx context.Context, activeOnly bool) ([]dto.ServiceTypeDTO, error) {
	q := h.db.WithContext(ctx).Model(&models.ServiceType{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var services []models.ServiceType
	if err := q.Order("sort_order ASC").Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return dto.NewServiceTypeDTOs(services), nil
}

func (h *ServiceTypeHandler) Get(c *gin.Context) {
	svc, ok := h.find(c)
	if !ok {
		return
	}
	httpresp.OK(c, dto.NewServiceTypeDTO(svc))
}

func (h *ServiceTypeHandler) Create(c *gin.Context) {
	var req CreateServiceTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	svc := models.ServiceType{
		Name:        req.Name,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Duration:    req.Duration,
		IsActive:    req.IsActive == nil || *req.IsActive,
		Order:       req.Order,
	}
	if err := catalog.ValidateServiceType(&svc); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&svc).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.changed(c, "service_created", &svc)
	httpresp.Created(c, dto.NewServiceTypeDTO(&svc))
}

func (h *ServiceTypeHandler) Update(c *gin.Context) {
	svc, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateServiceTypeRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.BasePrice != nil {
		svc.BasePrice = *req.BasePrice
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}
	if req.Order != nil {
		svc.Order = *req.Order
	}
	if err := catalog.ValidateServiceType(svc); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Save(svc).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	h.changed(c, "service_updated", svc)
	httpresp.OK(c, dto.NewServiceTypeDTO(svc))
}

func (h *ServiceTypeHandler) Reorder(c *gin.Context) {
	svc, ok := h.find(c)
	if !ok {
		return
	}

	var req ReorderRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(svc).
		Update("sort_order", req.Order).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	svc.Order = req.Order

	h.changed(c, "service_reordered", svc)
	httpresp.OK(c, dto.NewServiceTypeDTO(svc))
}

// Delete deactivates the service; bookings keep pointing at it.
func (h *ServiceTypeHandler) Delete(c *gin.Context) {
	svc, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(svc).
		Update("is_active", false).Error; err != nil {
		httperr.Respond(c, err)
		return
	}
	svc.IsActive = false

	h.changed(c, "service_deactivated", svc)
	httpresp.OK(c, dto.NewServiceTypeDTO(svc))
}

// --------- Helpers ---------

func (h *ServiceTypeHandler) find(c *gin.Context) (*models.ServiceType, bool) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return nil, false
	}

	var svc models.ServiceType
	if err := h.db.WithContext(c.Request.Context()).First(&svc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "service not found")
			return nil, false
		}
		httperr.Respond(c, err)
		return nil, false
	}
	return &svc, true
}

func (h *ServiceTypeHandler) changed(c *gin.Context, action string, svc *models.ServiceType) {
	invalidate(c, h.cache, cacheKeyActiveServices)
	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserID(c),
		Action:   action,
		Entity:   "service_type",
		EntityID: &svc.ID,
		Metadata: map[string]any{"name": svc.Name},
	})
}
