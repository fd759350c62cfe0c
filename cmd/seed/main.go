package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/studio-booking/internal/db"
	"github.com/BruksfildServices01/studio-booking/internal/infra/repository"
	"github.com/BruksfildServices01/studio-booking/internal/middleware"
	"github.com/BruksfildServices01/studio-booking/internal/models"
)

// seed creates the configuration row, a first admin and a small catalog.
// Existing data is left untouched, so it can run on every deploy.
func main() {
	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	ctx := context.Background()

	if _, err := repository.NewConfigGormRepository(db).Get(ctx); err != nil {
		log.Fatalf("seed config: %v", err)
	}

	if err := seedAdmin(ctx, db); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if err := seedCatalog(ctx, db); err != nil {
		log.Fatalf("seed catalog: %v", err)
	}

	log.Println("seed completed")
}

func seedAdmin(ctx context.Context, db *gorm.DB) error {
	email := strings.ToLower(getEnv("SEED_ADMIN_EMAIL", "admin@studio.local"))
	password := getEnv("SEED_ADMIN_PASSWORD", "changeme123")

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("users already exist, skipping admin")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    "Admin",
		Role:         middleware.RoleAdmin,
		IsActive:     true,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("admin created: %s", email)
	return nil
}

func seedCatalog(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.ServiceType{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("catalog already exists, skipping")
		return nil
	}

	services := []models.ServiceType{
		{Name: "Podcast", Description: "Two cameras, two microphones and lighting", BasePrice: decimal.NewFromInt(120), Duration: 2, IsActive: true, Order: 1},
		{Name: "Photo session", Description: "Backdrops and continuous light", BasePrice: decimal.NewFromInt(90), Duration: 1, IsActive: true, Order: 2},
		{Name: "Video production", Description: "Half day with the full studio", BasePrice: decimal.NewFromInt(350), Duration: 4, IsActive: true, Order: 3},
	}

	equipment := []models.Equipment{
		{
			Name:           "Sony A7 IV",
			Category:       "cameras",
			Quantity:       2,
			IsIncluded:     true,
			ExtraCost:      decimal.Zero,
			IsActive:       true,
			Order:          1,
			Specifications: datatypes.NewJSONType(map[string]string{"sensor": "full frame", "video": "4K60"}),
			Options:        datatypes.NewJSONType(models.EquipmentOptions{}),
		},
		{
			Name:                   "Shure SM7B",
			Category:               "microphones",
			Quantity:               4,
			IsIncluded:             false,
			ExtraCost:              decimal.NewFromInt(10),
			IsActive:               true,
			Order:                  2,
			AllowQuantitySelection: true,
			Specifications:         datatypes.NewJSONType(map[string]string{"type": "dynamic"}),
			Options:                datatypes.NewJSONType(models.EquipmentOptions{}),
		},
		{
			Name:                   "LED tube",
			Category:               "lights",
			Quantity:               6,
			IsIncluded:             false,
			ExtraCost:              decimal.NewFromInt(15),
			IsActive:               true,
			Order:                  3,
			AllowQuantitySelection: true,
			Specifications:         datatypes.NewJSONType(map[string]string{}),
			Options: datatypes.NewJSONType(models.EquipmentOptions{
				"colors": {
					Label: "Color",
					Types: []models.EquipmentVariant{
						{ID: "white", Name: "White", ExtraCost: decimal.Zero},
						{ID: "rgb", Name: "RGB", ExtraCost: decimal.NewFromInt(10)},
					},
				},
			}),
		},
		{
			Name:           "Paper backdrop",
			Category:       "backgrounds",
			Quantity:       3,
			IsIncluded:     true,
			ExtraCost:      decimal.Zero,
			IsActive:       true,
			Order:          4,
			Specifications: datatypes.NewJSONType(map[string]string{"width": "2.7m"}),
			Options:        datatypes.NewJSONType(models.EquipmentOptions{}),
		},
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&services).Error; err != nil {
			return err
		}
		if err := tx.Create(&equipment).Error; err != nil {
			return err
		}
		log.Printf("catalog created: %d services, %d equipment", len(services), len(equipment))
		return nil
	})
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
