package audit

import (
	"encoding/json"
	"fmt"

	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"gorm.io/datatypes"
)

type LogOptions struct {
	UserID      uint
	UserName    string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// PostgreSQL jsonb için boş değer yerine "null" JSON'u kullanmalıyız
	beforeJSON := datatypes.JSON([]byte("null"))
	afterJSON := datatypes.JSON([]byte("null"))

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeJSON = datatypes.JSON(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterJSON = datatypes.JSON(b)
		}
	}

	log := models.AuditLog{
		UserID:      opts.UserID,
		UserName:    opts.UserName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeJSON,
		AfterData:   afterJSON,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log kaydedilemedi: %w", err)
	}

	return nil
}
