package maintenance

import (
	"fmt"
	"strings"
	"time"

	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateEquipmentRequest struct {
	Name         string `json:"name"`
	SerialNo     string `json:"serial_no"`
	Location     string `json:"location"`
	PeriodMonths int    `json:"period_months"`
}

type CreateMaintenanceRequest struct {
	Date        string  `json:"date"` // "2025-12-09"
	Note        string  `json:"note"`
	PerformedBy string  `json:"performed_by"`
	Cost        float64 `json:"cost"`
}

type EquipmentResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	SerialNo     string `json:"serial_no"`
	Location     string `json:"location"`
	PeriodMonths int    `json:"period_months"`
	LastDate     string `json:"last_maintenance_date,omitempty"`
	NextDueDate  string `json:"next_due_date,omitempty"`
}

// NextDueDate - Bakım tarihi + ekipman periyodu. Ay sonu taşmalarında
// time.AddDate'in normalize davranışı geçerli (31 Oca + 1 ay = 2/3 Mar).
func NextDueDate(done time.Time, periodMonths int) time.Time {
	return done.AddDate(0, periodMonths, 0)
}

// -------------------------
// Equipment CRUD
// -------------------------

// POST /api/equipment
func CreateEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateEquipmentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "isim boş olamaz")
		}
		if body.PeriodMonths <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "period_months > 0 olmalı")
		}

		equipment := models.Equipment{
			Name:         strings.TrimSpace(body.Name),
			SerialNo:     strings.TrimSpace(body.SerialNo),
			Location:     strings.TrimSpace(body.Location),
			PeriodMonths: body.PeriodMonths,
		}

		if err := database.DB.Create(&equipment).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				return fiber.NewError(fiber.StatusConflict, "Bu seri numarasıyla kayıtlı ekipman var")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Ekipman kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(equipment)
	}
}

// GET /api/equipment
func ListEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var equipment []models.Equipment
		if err := database.DB.Order("name asc").Find(&equipment).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ekipmanlar listelenemedi")
		}

		resp := make([]EquipmentResponse, 0, len(equipment))
		for _, eq := range equipment {
			item := EquipmentResponse{
				ID:           eq.ID,
				Name:         eq.Name,
				SerialNo:     eq.SerialNo,
				Location:     eq.Location,
				PeriodMonths: eq.PeriodMonths,
			}

			// Son bakım kaydından sıradaki tarih
			var last models.MaintenanceRecord
			if err := database.DB.Where("equipment_id = ?", eq.ID).
				Order("date DESC").First(&last).Error; err == nil {
				item.LastDate = last.Date.Format("2006-01-02")
				item.NextDueDate = last.NextDueDate.Format("2006-01-02")
			}

			resp = append(resp, item)
		}
		return c.JSON(resp)
	}
}

// DELETE /api/equipment/:id
func DeleteEquipmentHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		result := database.DB.Delete(&models.Equipment{}, id)
		if result.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Ekipman silinemedi")
		}
		if result.RowsAffected == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Ekipman bulunamadı")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------
// Maintenance Records
// -------------------------

// POST /api/equipment/:id/maintenance
func CreateMaintenanceRecordHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var equipment models.Equipment
		if err := database.DB.First(&equipment, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Ekipman bulunamadı")
		}

		var body CreateMaintenanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		date, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "date formatı geçersiz (YYYY-MM-DD)")
		}

		record := models.MaintenanceRecord{
			EquipmentID: equipment.ID,
			Date:        date,
			Note:        strings.TrimSpace(body.Note),
			PerformedBy: strings.TrimSpace(body.PerformedBy),
			Cost:        body.Cost,
			NextDueDate: NextDueDate(date, equipment.PeriodMonths),
		}

		if err := database.DB.Create(&record).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bakım kaydı oluşturulamadı")
		}

		if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				EntityType:  "maintenance_record",
				EntityID:    record.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("%s için bakım kaydı girildi", equipment.Name),
				After:       record,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(record)
	}
}

// GET /api/equipment/:id/maintenance
func ListMaintenanceRecordsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var records []models.MaintenanceRecord
		if err := database.DB.Where("equipment_id = ?", id).
			Order("date DESC").Find(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bakım kayıtları listelenemedi")
		}

		return c.JSON(records)
	}
}

// GET /api/maintenance/due?within_days=30
// Sıradaki bakım tarihi yaklaşan veya geçen ekipmanlar
func ListDueMaintenanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		withinDays := 30
		if s := c.Query("within_days"); s != "" {
			if _, err := fmt.Sscan(s, &withinDays); err != nil || withinDays < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "within_days geçersiz")
			}
		}

		cutoff := time.Now().AddDate(0, 0, withinDays)

		// Her ekipmanın sadece en güncel bakım kaydına bakılır
		var records []models.MaintenanceRecord
		if err := database.DB.Raw(`
			SELECT DISTINCT ON (equipment_id) *
			FROM maintenance_records
			ORDER BY equipment_id, date DESC
		`).Scan(&records).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Bakım kayıtları okunamadı")
		}

		due := make([]fiber.Map, 0)
		for _, r := range records {
			if r.NextDueDate.After(cutoff) {
				continue
			}
			var eq models.Equipment
			if err := database.DB.First(&eq, r.EquipmentID).Error; err != nil {
				continue
			}
			due = append(due, fiber.Map{
				"equipment_id":  eq.ID,
				"name":          eq.Name,
				"location":      eq.Location,
				"last_date":     r.Date.Format("2006-01-02"),
				"next_due_date": r.NextDueDate.Format("2006-01-02"),
				"overdue":       r.NextDueDate.Before(time.Now()),
			})
		}

		return c.JSON(due)
	}
}
