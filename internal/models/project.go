package models

import "time"

// Project - Sözleşmeli proje. Number benzersizdir, aynı numarayla
// ikinci kayıt 409 döner.
type Project struct {
	ID           uint   `gorm:"primaryKey"`
	Number       string `gorm:"size:50;uniqueIndex;not null"` // proje numarası
	Name         string `gorm:"size:200;not null"`
	CustomerName string `gorm:"size:200"`
	Amount       float64
	StartDate    *time.Time
	EndDate      *time.Time
	ManagerID    *uint
	Manager      *User `gorm:"foreignKey:ManagerID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Invoices []ContractInvoice `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
}

type ContractInvoiceStatus string

const (
	ContractInvoicePending  ContractInvoiceStatus = "PENDING"
	ContractInvoiceIssued   ContractInvoiceStatus = "ISSUED"
	ContractInvoiceReceived ContractInvoiceStatus = "RECEIVED"
	ContractInvoicePaidOut  ContractInvoiceStatus = "PAID_OUT"
)

// ContractInvoice - Proje faturası. Durum makinesi kesin sıralı:
// PENDING -> ISSUED -> RECEIVED -> PAID_OUT, atlama yok.
// Her geçiş kendi tarih alanını damgalar.
type ContractInvoice struct {
	ID        uint    `gorm:"primaryKey"`
	ProjectID uint    `gorm:"index;not null"`
	Project   Project `gorm:"foreignKey:ProjectID"`

	Amount      float64               `gorm:"not null"`
	Description string                `gorm:"size:500"`
	Status      ContractInvoiceStatus `gorm:"size:20;not null;default:PENDING"`

	IssuedDate          *time.Time
	PaymentReceivedDate *time.Time
	AcademicianPaidDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
