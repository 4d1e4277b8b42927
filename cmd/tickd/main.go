package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mhakimi/tribeland/internal/catalog"
	"github.com/mhakimi/tribeland/internal/config"
	"github.com/mhakimi/tribeland/internal/database"
	"github.com/mhakimi/tribeland/internal/notify"
	"github.com/mhakimi/tribeland/internal/server"
	"github.com/mhakimi/tribeland/internal/services"
	"github.com/mhakimi/tribeland/pkg/logger"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	logger.Init()
	defer logger.Sync()

	rootCmd := &cobra.Command{
		Use:   "tickd",
		Short: "Tribeland world tick daemon",
	}
	rootCmd.AddCommand(runCmd(), statusCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup() (*config.Config, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.AppEnv == "production" {
		if err := cfg.ValidateProductionSecurity(); err != nil {
			return nil, nil, fmt.Errorf("production security validation failed: %w", err)
		}
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return cfg, db, nil
}

func loadCatalog(cfg *config.Config) (catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogPath)
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the tick scheduler loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			if err := database.SeedBuildingTypes(db, cat); err != nil {
				return err
			}

			var notifier notify.Notifier = notify.NopNotifier{}
			if cfg.TelegramAlertToken != "" {
				tn, err := notify.NewTelegramNotifier(cfg.TelegramAlertToken, cfg.TelegramAlertChatID)
				if err != nil {
					logger.Warn("Alert transport unavailable, continuing without it", "error", err)
				} else {
					notifier = tn
				}
			}

			ticks := services.NewGameTickService(db, cfg.GetTickGuardTTL())

			var admin *server.AdminServer
			if cfg.AdminAddr != "" {
				rankings := services.NewRankingService(db)
				admin = server.NewAdminServer(ticks, rankings, cfg.AdminJWTSecret, cfg.AdminRateLimitPerIP)
				go func() {
					if err := admin.Start(cfg.AdminAddr); err != nil {
						logger.Error("Admin API stopped", "error", err)
					}
				}()
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			scheduler := services.NewTickScheduler(ticks, notifier, cfg.GetTickInterval())
			logger.Info("Tick scheduler starting",
				"interval", cfg.GetTickInterval(),
				"guard_ttl", cfg.GetTickGuardTTL(),
				"run_id", uuid.NewString(),
			)
			scheduler.Run(ctx)

			if admin != nil {
				admin.Stop()
			}
			logger.Info("Tick scheduler stopped")
			return nil
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the tick engine status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}

			ticks := services.NewGameTickService(db, cfg.GetTickGuardTTL())
			status, err := ticks.GetGameTickStatus()
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(status, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run migrations and seed the building catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := setup()
			if err != nil {
				return err
			}

			cat, err := loadCatalog(cfg)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			return database.SeedBuildingTypes(db, cat)
		},
	}
}
