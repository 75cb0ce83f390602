package project

import (
	"fmt"
	"strings"
	"time"

	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreateProjectRequest struct {
	Number       string  `json:"number"`
	Name         string  `json:"name"`
	CustomerName string  `json:"customer_name"`
	Amount       float64 `json:"amount"`
	StartDate    string  `json:"start_date"` // "2025-12-09"
	EndDate      string  `json:"end_date"`
	ManagerID    *uint   `json:"manager_id"`
}

type CreateContractInvoiceRequest struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
}

type InvoiceTransitionRequest struct {
	Status models.ContractInvoiceStatus `json:"status"`
	Date   string                       `json:"date"` // ISO-8601
}

type ContractInvoiceResponse struct {
	ID                  uint                         `json:"id"`
	ProjectID           uint                         `json:"project_id"`
	Amount              float64                      `json:"amount"`
	Description         string                       `json:"description"`
	Status              models.ContractInvoiceStatus `json:"status"`
	IssuedDate          *string                      `json:"issued_date"`
	PaymentReceivedDate *string                      `json:"payment_received_date"`
	AcademicianPaidDate *string                      `json:"academician_paid_date"`
	CreatedAt           string                       `json:"created_at"`
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02T15:04:05Z07:00")
	return &s
}

func invoiceToResponse(inv *models.ContractInvoice) ContractInvoiceResponse {
	return ContractInvoiceResponse{
		ID:                  inv.ID,
		ProjectID:           inv.ProjectID,
		Amount:              inv.Amount,
		Description:         inv.Description,
		Status:              inv.Status,
		IssuedDate:          formatDatePtr(inv.IssuedDate),
		PaymentReceivedDate: formatDatePtr(inv.PaymentReceivedDate),
		AcademicianPaidDate: formatDatePtr(inv.AcademicianPaidDate),
		CreatedAt:           inv.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func parseDateField(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	// Hem tam ISO-8601 hem sade tarih kabul edilir
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("tarih formatı geçersiz: %s", s)
}

// -------------------------
// Project CRUD
// -------------------------

// POST /api/projects
func CreateProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProjectRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Number = strings.TrimSpace(body.Number)
		if body.Number == "" || strings.TrimSpace(body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "number ve name zorunlu")
		}

		startDate, err := parseDateField(body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		endDate, err := parseDateField(body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		project := models.Project{
			Number:       body.Number,
			Name:         strings.TrimSpace(body.Name),
			CustomerName: strings.TrimSpace(body.CustomerName),
			Amount:       body.Amount,
			StartDate:    startDate,
			EndDate:      endDate,
			ManagerID:    body.ManagerID,
		}

		if err := database.DB.Create(&project).Error; err != nil {
			if strings.Contains(err.Error(), "duplicate") || strings.Contains(err.Error(), "unique") {
				return fiber.NewError(fiber.StatusConflict, "Bu proje numarası zaten kayıtlı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Proje kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(project)
	}
}

// GET /api/projects
func ListProjectsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var projects []models.Project
		if err := database.DB.Preload("Invoices").Order("created_at DESC").Find(&projects).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Projeler listelenemedi")
		}
		return c.JSON(projects)
	}
}

// GET /api/projects/:id
func GetProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var project models.Project
		if err := database.DB.Preload("Invoices").First(&project, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
		}
		return c.JSON(project)
	}
}

// DELETE /api/projects/:id
// Faturalar cascade ile birlikte silinir, tek transaction'da
func DeleteProjectHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var project models.Project
		if err := database.DB.First(&project, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
		}

		txErr := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("project_id = ?", project.ID).Delete(&models.ContractInvoice{}).Error; err != nil {
				return err
			}
			return tx.Delete(&project).Error
		})
		if txErr != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Proje silinemedi")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// -------------------------
// Contract Invoices
// -------------------------

// POST /api/projects/:id/invoices
func CreateContractInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var project models.Project
		if err := database.DB.First(&project, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Proje bulunamadı")
		}

		var body CreateContractInvoiceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount > 0 olmalı")
		}

		invoice := models.ContractInvoice{
			ProjectID:   project.ID,
			Amount:      body.Amount,
			Description: strings.TrimSpace(body.Description),
			Status:      models.ContractInvoicePending,
		}

		if err := database.DB.Create(&invoice).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura kaydedilemedi")
		}

		return c.Status(fiber.StatusCreated).JSON(invoiceToResponse(&invoice))
	}
}

// PATCH /api/contract-invoices/:id
// Gövde: { status: "ISSUED"|"RECEIVED"|"PAID_OUT", date: ISO-8601 }
func TransitionContractInvoiceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body InvoiceTransitionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Status == "" {
			return fiber.NewError(fiber.StatusBadRequest, "status zorunlu")
		}

		datePtr, err := parseDateField(body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		date := time.Now()
		if datePtr != nil {
			date = *datePtr
		}

		var invoice models.ContractInvoice
		if err := database.DB.First(&invoice, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		before := invoice.Status

		if err := ApplyInvoiceTransition(&invoice, body.Status, date); err != nil {
			return err
		}

		if err := database.DB.Save(&invoice).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura güncellenemedi")
		}

		if userID, ok := c.Locals(auth.CtxUserIDKey).(uint); ok {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				EntityType:  "contract_invoice",
				EntityID:    invoice.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Sözleşme faturası #%d: %s -> %s", invoice.ID, before, invoice.Status),
				After:       invoice,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.JSON(invoiceToResponse(&invoice))
	}
}
