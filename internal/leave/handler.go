package leave

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

type CreateLeaveRequestBody struct {
	Type      models.LeaveType `json:"type"`
	StartDate string           `json:"start_date"` // "2025-12-09"
	EndDate   string           `json:"end_date"`
	Reason    string           `json:"reason"`
}

type DecideLeaveRequestBody struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

type LeaveRequestResponse struct {
	ID           uint               `json:"id"`
	UserID       uint               `json:"user_id"`
	UserName     string             `json:"user_name"`
	Type         models.LeaveType   `json:"type"`
	StartDate    string             `json:"start_date"`
	EndDate      string             `json:"end_date"`
	DayCount     int                `json:"day_count"`
	Reason       string             `json:"reason"`
	Status       models.LeaveStatus `json:"status"`
	DecisionNote string             `json:"decision_note,omitempty"`
	CreatedAt    string             `json:"created_at"`
}

var validLeaveTypes = map[models.LeaveType]bool{
	models.LeaveAnnual: true,
	models.LeaveSick:   true,
	models.LeaveUnpaid: true,
}

// DayCount - Başlangıç ve bitiş dahil takvim günü sayısı
func DayCount(start, end time.Time) int {
	start = start.Truncate(24 * time.Hour)
	end = end.Truncate(24 * time.Hour)
	return int(end.Sub(start).Hours()/24) + 1
}

func toResponse(req *models.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           req.ID,
		UserID:       req.UserID,
		UserName:     req.User.Name,
		Type:         req.Type,
		StartDate:    req.StartDate.Format("2006-01-02"),
		EndDate:      req.EndDate.Format("2006-01-02"),
		DayCount:     req.DayCount,
		Reason:       req.Reason,
		Status:       req.Status,
		DecisionNote: req.DecisionNote,
		CreatedAt:    req.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func getUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}
	return userID, nil
}

// -------------------------
// Handlers
// -------------------------

// POST /api/leave-requests
func CreateLeaveRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateLeaveRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if !validLeaveTypes[body.Type] {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz izin türü")
		}

		start, err := time.Parse("2006-01-02", body.StartDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "start_date formatı geçersiz (YYYY-MM-DD)")
		}
		end, err := time.Parse("2006-01-02", body.EndDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "end_date formatı geçersiz (YYYY-MM-DD)")
		}
		if end.Before(start) {
			return fiber.NewError(fiber.StatusBadRequest, "end_date start_date'ten önce olamaz")
		}

		userID, err := getUserID(c)
		if err != nil {
			return err
		}

		req := models.LeaveRequest{
			UserID:    userID,
			Type:      body.Type,
			StartDate: start,
			EndDate:   end,
			DayCount:  DayCount(start, end),
			Reason:    strings.TrimSpace(body.Reason),
			Status:    models.LeavePending,
		}

		if err := database.DB.Create(&req).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talebi kaydedilemedi")
		}

		database.DB.Preload("User").First(&req, req.ID)

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    req.User.Name,
			EntityType:  "leave_request",
			EntityID:    req.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("İzin talebi açıldı: %s, %d gün", body.Type, req.DayCount),
			After:       req,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(toResponse(&req))
	}
}

// GET /api/leave-requests?status=pending&user_id=3
func ListLeaveRequestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.LeaveRequest{}).Preload("User")

		if status := c.Query("status"); status != "" {
			dbq = dbq.Where("status = ?", status)
		}
		if uidStr := c.Query("user_id"); uidStr != "" {
			var uid uint
			if _, err := fmt.Sscan(uidStr, &uid); err == nil && uid > 0 {
				dbq = dbq.Where("user_id = ?", uid)
			}
		}

		var reqs []models.LeaveRequest
		if err := dbq.Order("created_at DESC").Find(&reqs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talepleri listelenemedi")
		}

		resp := make([]LeaveRequestResponse, 0, len(reqs))
		for i := range reqs {
			resp = append(resp, toResponse(&reqs[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/leave-requests/:id/decision
func DecideLeaveRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body DecideLeaveRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var req models.LeaveRequest
		if err := database.DB.Preload("User").First(&req, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İzin talebi bulunamadı")
		}

		if req.Status != models.LeavePending {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("İzin talebi zaten karara bağlanmış (durum: %s)", req.Status))
		}

		if !body.Approve && strings.TrimSpace(body.Note) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Red için note zorunlu")
		}

		deciderID, err := getUserID(c)
		if err != nil {
			return err
		}

		now := time.Now()
		if body.Approve {
			req.Status = models.LeaveApproved
		} else {
			req.Status = models.LeaveRejected
		}
		req.DeciderID = &deciderID
		req.DecisionNote = strings.TrimSpace(body.Note)
		req.DecidedAt = &now

		if err := database.DB.Save(&req).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "İzin talebi güncellenemedi")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      deciderID,
			UserName:    "",
			EntityType:  "leave_request",
			EntityID:    req.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("İzin talebi #%d: %s", req.ID, req.Status),
			After:       req,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(toResponse(&req))
	}
}

// GET /api/leave-requests/:id/pdf
// Sadece onaylanmış talepler form olarak indirilebilir
func LeaveFormPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var req models.LeaveRequest
		if err := database.DB.Preload("User").Preload("Decider").First(&req, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "İzin talebi bulunamadı")
		}

		if req.Status != models.LeaveApproved {
			return fiber.NewError(fiber.StatusBadRequest, "Sadece onaylanmış izinlerin formu indirilebilir")
		}

		pdfBytes, err := GenerateLeaveFormPDF(&req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "PDF oluşturulamadı")
		}

		c.Set("Content-Type", "application/pdf")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="izin-formu-%d.pdf"`, req.ID))
		return c.Send(pdfBytes)
	}
}
