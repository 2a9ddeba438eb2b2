package main

import (
	"path/filepath"
	"time"

	"restaurant-scheduler/internal/config"
	"restaurant-scheduler/internal/repository"
	"restaurant-scheduler/internal/seed"
	"restaurant-scheduler/internal/service"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	logger.WithField("path", cfg.DatabasePath).Info("Opening database")
	db, err := repository.Open(cfg.DatabasePath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open database")
	}
	defer func() {
		if err := repository.Close(db); err != nil {
			logger.WithError(err).Warn("Error closing database")
		}
	}()

	employeeRepo, err := repository.NewGormEmployeeRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create employee repository")
	}
	templateRepo, err := repository.NewGormShiftTemplateRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create shift template repository")
	}
	shiftRepo, err := repository.NewGormShiftRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create shift repository")
	}
	scheduleRepo, err := repository.NewGormScheduleRepository(db, shiftRepo, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create schedule repository")
	}
	settingsRepo, err := repository.NewGormSettingsRepository(db, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create settings repository")
	}

	employeeService := service.NewEmployeeService(employeeRepo, logger)
	templateService := service.NewTemplateService(templateRepo, logger)
	scheduleService := service.NewScheduleService(shiftRepo, scheduleRepo, templateRepo, employeeRepo, logger)

	if !cfg.SeedDemoData {
		logger.Info("SEED_DEMO_DATA disabled, nothing to do")
		return
	}

	seeder := seed.NewSeeder(employeeService, templateService, scheduleService, logger)
	if err := seeder.Run(); err != nil {
		logger.WithError(err).Fatal("Seeding failed")
	}

	if err := settingsRepo.Set("restaurant_name", "Demo Restaurant", "Display name used by the presentation layer"); err != nil {
		logger.WithError(err).Fatal("Failed to store initial settings")
	}
	if err := settingsRepo.Set("seeded_at", time.Now().Format(time.RFC3339), "When the demo data was generated"); err != nil {
		logger.WithError(err).Fatal("Failed to store initial settings")
	}

	backupPath := filepath.Join(cfg.BackupDir, "shifts-seeded.db")
	if !repository.Backup(cfg.DatabasePath, backupPath, logger) {
		logger.Warn("Post-seed backup did not complete")
	}

	logger.Info("Demo database ready")
}
