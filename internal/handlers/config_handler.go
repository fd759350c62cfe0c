package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	"github.com/BruksfildServices01/studio-booking/internal/cache"
	"github.com/BruksfildServices01/studio-booking/internal/domain/settings"
	"github.com/BruksfildServices01/studio-booking/internal/dto"
	"github.com/BruksfildServices01/studio-booking/internal/httperr"
	"github.com/BruksfildServices01/studio-booking/internal/httpresp"
	"github.com/BruksfildServices01/studio-booking/internal/infra/repository"
	"github.com/BruksfildServices01/studio-booking/internal/middleware"
	"github.com/BruksfildServices01/studio-booking/internal/models"
	"github.com/BruksfildServices01/studio-booking/internal/storage"
)

const logoImageSide = 600

type ConfigHandler struct {
	repo   *repository.ConfigGormRepository
	cache  cache.Cache
	ttl    time.Duration
	images storage.ImageStore
	audit  *audit.Dispatcher
}

func NewConfigHandler(
	repo *repository.ConfigGormRepository,
	c cache.Cache,
	ttl time.Duration,
	images storage.ImageStore,
	audit *audit.Dispatcher,
) *ConfigHandler {
	return &ConfigHandler{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		images: images,
		audit:  audit,
	}
}

// --------- Requests ---------

type UpdateConfigRequest struct {
	BusinessName       *string `json:"businessName" binding:"omitempty,min=1,max=120"`
	PrimaryColor       *string `json:"primaryColor" binding:"omitempty,hexcolor_or_empty"`
	SecondaryColor     *string `json:"secondaryColor" binding:"omitempty,hexcolor_or_empty"`
	Email              *string `json:"email" binding:"omitempty,email"`
	Phone              *string `json:"phone" binding:"omitempty,max=30"`
	Address            *string `json:"address" binding:"omitempty,max=255"`
	Instagram          *string `json:"instagram" binding:"omitempty,max=120"`
	Facebook           *string `json:"facebook" binding:"omitempty,max=120"`
	Website            *string `json:"website" binding:"omitempty,max=255"`
	TermsAndConditions *string `json:"termsAndConditions"`
	CancellationPolicy *string `json:"cancellationPolicy"`

	SendConfirmationEmail *bool `json:"sendConfirmationEmail"`
	SendReminderEmail     *bool `json:"sendReminderEmail"`
	ReminderHoursBefore   *int  `json:"reminderHoursBefore" binding:"omitempty,min=1,max=168"`
}

type UpdateHoursRequest struct {
	OperatingHours     models.OperatingHours `json:"operatingHours" binding:"required"`
	MinSessionDuration *int                  `json:"minSessionDuration"`
	MaxSessionDuration *int                  `json:"maxSessionDuration"`
	BufferTime         *int                  `json:"bufferTime" binding:"omitempty,min=0"`
	UseTimeBlocks      *bool                 `json:"useTimeBlocks"`
	TimeBlocks         []models.TimeBlock    `json:"timeBlocks"`
}

type UpdatePricingRequest struct {
	HourlyRate     *decimal.Decimal      `json:"hourlyRate"`
	Currency       *string               `json:"currency" binding:"omitempty,currency"`
	Packages       []models.PricePackage `json:"packages"`
	RequireDeposit *bool                 `json:"requireDeposit"`
	DepositType    *string               `json:"depositType" binding:"omitempty,oneof=percentage fixed"`
	DepositAmount  *decimal.Decimal      `json:"depositAmount"`
}

type UpdateAzulRequest struct {
	AzulEnabled    *bool   `json:"azulEnabled"`
	AzulMerchantID *string `json:"azulMerchantId" binding:"omitempty,max=120"`
	AzulAuthKey    *string `json:"azulAuthKey" binding:"omitempty,max=255"`
	AzulMode       *string `json:"azulMode" binding:"omitempty,oneof=sandbox production"`
}

// --------- Handlers ---------

func (h *ConfigHandler) Public(c *gin.Context) {
	ctx := c.Request.Context()
	out, err := cache.Remember(ctx, h.cache, cacheKeyPublicConfig, h.ttl, func() (dto.PublicConfigDTO, error) {
		cfg, err := h.repo.Get(ctx)
		if err != nil {
			return dto.PublicConfigDTO{}, err
		}
		return dto.NewPublicConfigDTO(cfg), nil
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, out)
}

func (h *ConfigHandler) Get(c *gin.Context) {
	cfg, err := h.repo.Get(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, dto.NewConfigDTO(cfg))
}

func (h *ConfigHandler) Update(c *gin.Context) {
	var req UpdateConfigRequest
	if !bindJSON(c, &req) {
		return
	}

	h.apply(c, "config_updated", func(cfg *models.BusinessConfig) error {
		setString(&cfg.BusinessName, req.BusinessName)
		setString(&cfg.PrimaryColor, req.PrimaryColor)
		setString(&cfg.SecondaryColor, req.SecondaryColor)
		setString(&cfg.Email, req.Email)
		setString(&cfg.Phone, req.Phone)
		setString(&cfg.Address, req.Address)
		setString(&cfg.Instagram, req.Instagram)
		setString(&cfg.Facebook, req.Facebook)
		setString(&cfg.Website, req.Website)
		setString(&cfg.TermsAndConditions, req.TermsAndConditions)
		setString(&cfg.CancellationPolicy, req.CancellationPolicy)
		if req.SendConfirmationEmail != nil {
			cfg.SendConfirmationEmail = *req.SendConfirmationEmail
		}
		if req.SendReminderEmail != nil {
			cfg.SendReminderEmail = *req.SendReminderEmail
		}
		if req.ReminderHoursBefore != nil {
			cfg.ReminderHoursBefore = *req.ReminderHoursBefore
		}
		return nil
	})
}

// UpdateHours replaces the weekly schedule. Weekdays missing from the body
// keep their previous value.
func (h *ConfigHandler) UpdateHours(c *gin.Context) {
	var req UpdateHoursRequest
	if !bindJSON(c, &req) {
		return
	}

	h.apply(c, "config_hours_updated", func(cfg *models.BusinessConfig) error {
		if err := settings.ValidateOperatingHours(req.OperatingHours); err != nil {
			return err
		}
		hours := models.OperatingHours{}
		for day, v := range cfg.OperatingHours.Data() {
			hours[day] = v
		}
		for day, v := range req.OperatingHours {
			hours[day] = v
		}
		cfg.OperatingHours = datatypes.NewJSONType(hours)

		if req.MinSessionDuration != nil {
			cfg.MinSessionDuration = *req.MinSessionDuration
		}
		if req.MaxSessionDuration != nil {
			cfg.MaxSessionDuration = *req.MaxSessionDuration
		}
		if req.BufferTime != nil {
			cfg.BufferTime = *req.BufferTime
		}
		if req.UseTimeBlocks != nil {
			cfg.UseTimeBlocks = *req.UseTimeBlocks
		}
		if req.TimeBlocks != nil {
			cfg.TimeBlocks = datatypes.NewJSONType(req.TimeBlocks)
		}
		return nil
	})
}

func (h *ConfigHandler) UpdatePricing(c *gin.Context) {
	var req UpdatePricingRequest
	if !bindJSON(c, &req) {
		return
	}

	h.apply(c, "config_pricing_updated", func(cfg *models.BusinessConfig) error {
		if req.HourlyRate != nil {
			cfg.HourlyRate = *req.HourlyRate
		}
		setString(&cfg.Currency, req.Currency)
		if req.Packages != nil {
			for _, p := range req.Packages {
				if p.Name == "" || p.Hours < 1 || p.Price.IsNegative() {
					return httperr.Validation("invalid_package", "packages need a name, at least one hour and a non-negative price")
				}
			}
			cfg.Packages = datatypes.NewJSONType(req.Packages)
		}
		if req.RequireDeposit != nil {
			cfg.RequireDeposit = *req.RequireDeposit
		}
		setString(&cfg.DepositType, req.DepositType)
		if req.DepositAmount != nil {
			cfg.DepositAmount = *req.DepositAmount
		}
		return nil
	})
}

// UpdateAzul stores the gateway credentials. An empty auth key keeps the
// stored one.
func (h *ConfigHandler) UpdateAzul(c *gin.Context) {
	var req UpdateAzulRequest
	if !bindJSON(c, &req) {
		return
	}

	h.apply(c, "config_azul_updated", func(cfg *models.BusinessConfig) error {
		if req.AzulEnabled != nil {
			cfg.AzulEnabled = *req.AzulEnabled
		}
		setString(&cfg.AzulMerchantID, req.AzulMerchantID)
		if req.AzulAuthKey != nil && *req.AzulAuthKey != "" {
			cfg.AzulAuthKey = *req.AzulAuthKey
		}
		setString(&cfg.AzulMode, req.AzulMode)
		if cfg.AzulEnabled && (cfg.AzulMerchantID == "" || cfg.AzulAuthKey == "") {
			return httperr.Validation("invalid_azul_credentials", "merchant id and auth key are required to enable azul")
		}
		return nil
	})
}

func (h *ConfigHandler) CompleteSetup(c *gin.Context) {
	h.apply(c, "setup_completed", func(cfg *models.BusinessConfig) error {
		cfg.SetupCompleted = true
		return nil
	})
}

func (h *ConfigHandler) UploadLogo(c *gin.Context) {
	ctx := c.Request.Context()
	cfg, err := h.repo.Get(ctx)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	url, ok := uploadImage(c, h.images, "branding", "logo", logoImageSide, "logo", "image")
	if !ok {
		return
	}

	previous := cfg.Logo
	cfg.Logo = url
	if err := h.repo.Save(ctx, cfg); err != nil {
		httperr.Respond(c, err)
		return
	}
	removeStoredImage(c, h.images, previous)

	h.changed(c, "config_logo_uploaded", cfg)
	httpresp.OK(c, dto.NewConfigDTO(cfg))
}

// --------- Helpers ---------

// apply loads the configuration, mutates it, validates the whole row and saves it.
func (h *ConfigHandler) apply(c *gin.Context, action string, mutate func(*models.BusinessConfig) error) {
	ctx := c.Request.Context()

	cfg, err := h.repo.Get(ctx)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := mutate(cfg); err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := settings.Validate(cfg); err != nil {
		httperr.Respond(c, err)
		return
	}
	if err := h.repo.Save(ctx, cfg); err != nil {
		httperr.Respond(c, err)
		return
	}

	h.changed(c, action, cfg)
	httpresp.OK(c, dto.NewConfigDTO(cfg))
}

func (h *ConfigHandler) changed(c *gin.Context, action string, cfg *models.BusinessConfig) {
	invalidate(c, h.cache, cacheKeyPublicConfig)
	h.audit.Dispatch(audit.Event{
		UserID:   middleware.UserID(c),
		Action:   action,
		Entity:   "business_config",
		EntityID: &cfg.ID,
	})
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
