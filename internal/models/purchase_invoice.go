package models

import "time"

// PurchaseInvoice - Sipariş sonrası yüklenen fatura. Bir talebin birden
// fazla faturası olabilir (her teslimat için bir tane). Talep silinse
// bile fatura kaydı durur, silme workflow'da zaten yok.
type PurchaseInvoice struct {
	ID                uint            `gorm:"primaryKey"`
	PurchaseRequestID uint            `gorm:"index;not null"`
	PurchaseRequest   PurchaseRequest `gorm:"foreignKey:PurchaseRequestID"`

	FileURL string  `gorm:"size:500;not null"`
	Amount  float64 `gorm:"not null"`

	Approved        bool   `gorm:"default:false"`
	RejectionReason string `gorm:"size:500"`

	// Fiyat kontrolü onayında geçerli bir puanla birlikte onaylandıysa true
	SupplierRated bool `gorm:"default:false"`

	UploadedByID uint `gorm:"not null"`
	UploadedBy   User `gorm:"foreignKey:UploadedByID"`

	CreatedAt time.Time
}
