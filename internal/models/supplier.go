package models

import "time"

// Supplier - Tedarikçi kartı. Puan alanları fatura fiyat kontrolü
// onayındaki değerlendirmeden beslenir (bkz. purchase paketi).
type Supplier struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:200;not null"`
	ContactName string `gorm:"size:100"`
	Phone       string `gorm:"size:30"`
	Email       string `gorm:"size:100"`
	Address     string `gorm:"size:500"`

	// Puan: tüm değerlendirmelerin aritmetik ortalaması (1-5)
	// PuanSayisi: ortalamaya giren değerlendirme adedi
	Puan       float64 `gorm:"default:0"`
	PuanSayisi int     `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
