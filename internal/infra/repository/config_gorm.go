package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/studio-booking/internal/models"
)

type ConfigGormRepository struct {
	db *gorm.DB
}

func NewConfigGormRepository(db *gorm.DB) *ConfigGormRepository {
	return &ConfigGormRepository{db: db}
}

// Get returns the singleton configuration, creating it with defaults on first read.
func (r *ConfigGormRepository) Get(ctx context.Context) (*models.BusinessConfig, error) {
	return loadBusinessConfig(ctx, r.db, false)
}

func (r *ConfigGormRepository) Save(ctx context.Context, cfg *models.BusinessConfig) error {
	cfg.ID = models.BusinessConfigID
	return r.db.WithContext(ctx).Save(cfg).Error
}

func loadBusinessConfig(ctx context.Context, db *gorm.DB, lock bool) (*models.BusinessConfig, error) {
	find := func() (*models.BusinessConfig, error) {
		q := db.WithContext(ctx)
		if lock {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var cfg models.BusinessConfig
		if err := q.First(&cfg, "id = ?", models.BusinessConfigID).Error; err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	cfg, err := find()
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	def := models.DefaultBusinessConfig()
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&def).Error; err != nil {
		return nil, err
	}
	return find()
}
