package database

import (
	"log"

	"portal-backend/internal/config"
	"portal-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Veritabanına bağlanılamadı: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Permission{},
		&models.Supplier{},
		&models.PurchaseCategory{},
		&models.PurchaseRequest{},
		&models.PurchaseInvoice{},
		&models.LeaveRequest{},
		&models.Equipment{},
		&models.MaintenanceRecord{},
		&models.Idea{},
		&models.IdeaVote{},
		&models.Project{},
		&models.ContractInvoice{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("Migration hatası: %v", err)
	}

	log.Println("Veritabanı bağlantısı ve migration tamam")
}
