package database

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mhakimi/tribeland/internal/catalog"
	"github.com/mhakimi/tribeland/internal/config"
	"github.com/mhakimi/tribeland/internal/models"
	"github.com/mhakimi/tribeland/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.GetDSN()

	var logLevel gormlogger.LogLevel
	if cfg.AppEnv == "development" {
		logLevel = gormlogger.Info
	} else {
		logLevel = gormlogger.Error
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// Tick phases manage their own transaction scope
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		// surface unique-constraint violations as gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// The tick daemon holds few long-lived connections; action services and
	// the admin API share the same pool.
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	logger.Info("Database connected successfully")
	return db, nil
}

func AutoMigrate(db *gorm.DB) error {
	logger.Info("Running database migrations...")

	err := db.AutoMigrate(
		&models.Player{},
		&models.Village{},
		&models.BuildingType{},
		&models.Building{},
		&models.Resource{},
		&models.ResourceProductionLog{},
		&models.BuildingQueue{},
		&models.TrainingQueue{},
		&models.Movement{},
		&models.GameEvent{},
		&models.Troop{},
		&models.CacheEntry{},
	)

	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// SeedBuildingTypes upserts the catalog's building types into the reference
// table. Safe to run on every startup.
func SeedBuildingTypes(db *gorm.DB, cat catalog.Catalog) error {
	logger.Info("Seeding building types...", "count", len(cat.Buildings))

	for _, def := range cat.Buildings {
		production, err := json.Marshal(def.Production)
		if err != nil {
			return fmt.Errorf("failed to encode production map for %q: %w", def.Key, err)
		}
		baseCost, err := json.Marshal(def.BaseCost)
		if err != nil {
			return fmt.Errorf("failed to encode cost map for %q: %w", def.Key, err)
		}

		var existing models.BuildingType
		err = db.Where("key = ?", def.Key).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			bt := models.BuildingType{
				Key:          def.Key,
				Name:         def.Name,
				MaxLevel:     def.MaxLevel,
				Production:   string(production),
				BaseCost:     string(baseCost),
				BuildSeconds: def.BuildSeconds,
			}
			if err := db.Create(&bt).Error; err != nil {
				return fmt.Errorf("failed to create building type %q: %w", def.Key, err)
			}
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to look up building type %q: %w", def.Key, err)
		}

		updates := map[string]interface{}{
			"name":          def.Name,
			"max_level":     def.MaxLevel,
			"production":    string(production),
			"base_cost":     string(baseCost),
			"build_seconds": def.BuildSeconds,
		}
		if err := db.Model(&existing).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update building type %q: %w", def.Key, err)
		}
	}

	return nil
}
