package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brukssoft/navalha-api/internal/config"
	"github.com/brukssoft/navalha-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Professional{},
		&models.Service{},
		&models.Client{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Settings{},
		&models.WebhookSubscription{},
		&models.NotificationRecord{},
		&models.CancellationRecord{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// Garante a linha única de configurações globais.
	db.Exec(`
        INSERT INTO settings (id, notif_confirmacao, notif_cancelamento, prazo_cancelamento_horas, updated_at)
        VALUES (1, true, true, 2, NOW())
        ON CONFLICT (id) DO NOTHING
    `)

	return db
}
