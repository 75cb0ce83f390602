package models

import "time"

// Permission - Granüler yetki tanımı (rol bazlı kontrolün üzerine ek izinler)
type Permission struct {
	ID          uint   `gorm:"primaryKey"`
	Code        string `gorm:"size:50;uniqueIndex;not null"` // örn: "purchase.approve", "leave.decide"
	Description string `gorm:"size:255"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
