package models

import "time"

type UserRole string

const (
	RoleAdmin     UserRole = "admin"     // sistem yöneticisi
	RoleYonetici  UserRole = "yonetici"  // üst yönetim
	RoleSatinAlma UserRole = "satinalma" // satın alma sorumlusu
	RoleCalisan   UserRole = "calisan"   // normal çalışan
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	Unit         string   `gorm:"size:100"` // birim/departman
	Active       bool     `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Permissions []Permission `gorm:"many2many:user_permissions;"`
}
