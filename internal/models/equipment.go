package models

import "time"

// Equipment - Bakım takibi yapılan ekipman/demirbaş
type Equipment struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:200;not null"`
	SerialNo     string `gorm:"size:100;uniqueIndex"`
	Location     string `gorm:"size:200"`
	PeriodMonths int    `gorm:"not null"` // periyodik bakım aralığı (ay)
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Records []MaintenanceRecord `gorm:"foreignKey:EquipmentID;constraint:OnDelete:CASCADE"`
}

// MaintenanceRecord - Yapılan bakım kaydı. NextDueDate, bakım tarihi +
// ekipmanın periyodu olarak kayıt anında hesaplanıp yazılır.
type MaintenanceRecord struct {
	ID          uint      `gorm:"primaryKey"`
	EquipmentID uint      `gorm:"index;not null"`
	Date        time.Time `gorm:"not null"` // bakımın yapıldığı tarih
	Note        string    `gorm:"size:500"`
	PerformedBy string    `gorm:"size:100"` // bakımı yapan firma/kişi
	Cost        float64
	NextDueDate time.Time `gorm:"index;not null"`
	CreatedAt   time.Time
}
