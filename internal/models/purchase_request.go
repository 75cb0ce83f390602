package models

import (
	"time"

	"gorm.io/datatypes"
)

type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
	OfferRejected OfferStatus = "rejected"
)

// Offer - Talebe bağlı tedarikçi teklifi. Ayrı tablo değil, talebin
// offers jsonb kolonunda sıralı liste olarak tutulur; "newOffer" ile
// liste komple değiştirilir. No alanı kayıt anında verilen sabit sıra
// numarasıdır, liste yeniden sıralansa da teklif kimliği kaymaz.
type Offer struct {
	No           int         `json:"no"`
	SupplierID   uint        `json:"supplier_id"`
	SupplierName string      `json:"supplier_name"`
	Price        float64     `json:"price"`
	Status       OfferStatus `json:"status"`
}

// PurchaseCategory - Satın alma kategorisi (kırtasiye, donanım vb.)
type PurchaseCategory struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PurchaseRequest - Satın alma talebi. Stage 1-6 arası ilerler, onay
// akışının kuralları purchase paketindeki geçiş tablosunda.
// Talepler hiç silinmez; red durumu approved/rejected bayraklarıyla izlenir.
type PurchaseRequest struct {
	ID            uint   `gorm:"primaryKey"`
	RequesterID   uint   `gorm:"index;not null"`
	Requester     User   `gorm:"foreignKey:RequesterID"`
	Unit          string `gorm:"size:100"`
	ItemName      string `gorm:"size:200;not null"`
	ItemSpec      string `gorm:"size:1000"` // teknik özellik açıklaması
	Justification string `gorm:"size:1000"`
	Quantity      int    `gorm:"not null"`
	CategoryID    *uint
	Category      *PurchaseCategory

	Stage      int    `gorm:"not null;default:1;index"`
	StageLabel string `gorm:"size:50"`

	Approved        bool   `gorm:"default:false"`
	Rejected        bool   `gorm:"default:false"`
	RejectionReason string `gorm:"size:500"`

	Offers        datatypes.JSON `gorm:"type:jsonb"` // []Offer
	SelectedOffer datatypes.JSON `gorm:"type:jsonb"` // Offer (kabul edilen teklifin kopyası)

	CreatedAt time.Time
	UpdatedAt time.Time
}
