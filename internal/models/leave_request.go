package models

import "time"

type LeaveType string

const (
	LeaveAnnual LeaveType = "yillik"
	LeaveSick   LeaveType = "rapor"
	LeaveUnpaid LeaveType = "ucretsiz"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// LeaveRequest - İzin talebi. Onaylanan talepler PDF form olarak indirilebilir.
type LeaveRequest struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"index;not null"`
	User   User `gorm:"foreignKey:UserID"`

	Type      LeaveType `gorm:"size:20;not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	DayCount  int       `gorm:"not null"` // başlangıç-bitiş dahil gün sayısı
	Reason    string    `gorm:"size:500"`

	Status       LeaveStatus `gorm:"size:20;not null;default:pending"`
	DeciderID    *uint
	Decider      *User       `gorm:"foreignKey:DeciderID"`
	DecisionNote string      `gorm:"size:500"`
	DecidedAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
