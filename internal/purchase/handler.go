package purchase

import (
	"fmt"
	"strings"

	"portal-backend/internal/audit"
	"portal-backend/internal/auth"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Request/Response Types
// -------------------------

type CreatePurchaseRequestBody struct {
	Unit          string `json:"unit"`
	ItemName      string `json:"item_name"`
	ItemSpec      string `json:"item_spec"`
	Justification string `json:"justification"`
	Quantity      int    `json:"quantity"`
	CategoryID    *uint  `json:"category_id"`
}

// ActionRequestBody - PUT /api/purchase-requests gövdesi
type ActionRequestBody struct {
	ID uint `json:"id"`
	ActionInput
}

type PurchaseRequestResponse struct {
	ID              uint           `json:"id"`
	RequesterID     uint           `json:"requester_id"`
	RequesterName   string         `json:"requester_name"`
	Unit            string         `json:"unit"`
	ItemName        string         `json:"item_name"`
	ItemSpec        string         `json:"item_spec"`
	Justification   string         `json:"justification"`
	Quantity        int            `json:"quantity"`
	CategoryID      *uint          `json:"category_id"`
	Stage           int            `json:"stage"`
	StageLabel      string         `json:"stage_label"`
	Approved        bool           `json:"approved"`
	Rejected        bool           `json:"rejected"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	Offers          []models.Offer `json:"offers"`
	SelectedOffer   *models.Offer  `json:"selected_offer,omitempty"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
}

// -------------------------
// Yardımcı Fonksiyonlar
// -------------------------

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "Kullanıcı bilgisi alınamadı")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Kullanıcı bulunamadı")
	}

	return userID, user.Name, nil
}

func toResponse(req *models.PurchaseRequest) (*PurchaseRequestResponse, error) {
	offers, err := DecodeOffers(req)
	if err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []models.Offer{}
	}

	resp := &PurchaseRequestResponse{
		ID:              req.ID,
		RequesterID:     req.RequesterID,
		RequesterName:   req.Requester.Name,
		Unit:            req.Unit,
		ItemName:        req.ItemName,
		ItemSpec:        req.ItemSpec,
		Justification:   req.Justification,
		Quantity:        req.Quantity,
		CategoryID:      req.CategoryID,
		Stage:           req.Stage,
		StageLabel:      req.StageLabel,
		Approved:        req.Approved,
		Rejected:        req.Rejected,
		RejectionReason: req.RejectionReason,
		Offers:          offers,
		CreatedAt:       req.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:       req.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}

	if selected, ok := DecodeSelectedOffer(req); ok {
		resp.SelectedOffer = &selected
	}

	return resp, nil
}

// -------------------------
// Handlers
// -------------------------

// POST /api/purchase-requests
// Talep oluşturma aşaması (stage 1) oluşturma anının kendisidir; kayıt
// doğrudan "ikinci onay bekliyor" (stage 2) olarak açılır.
func CreatePurchaseRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreatePurchaseRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if strings.TrimSpace(body.ItemName) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "item_name zorunlu")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity > 0 olmalı")
		}

		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		req := models.PurchaseRequest{
			RequesterID:   userID,
			Unit:          strings.TrimSpace(body.Unit),
			ItemName:      strings.TrimSpace(body.ItemName),
			ItemSpec:      strings.TrimSpace(body.ItemSpec),
			Justification: strings.TrimSpace(body.Justification),
			Quantity:      body.Quantity,
			CategoryID:    body.CategoryID,
			Stage:         StageOnayBekliyor,
			StageLabel:    StageLabel(StageOnayBekliyor),
		}

		if err := database.DB.Create(&req).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep kaydedilemedi")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "purchase_request",
			EntityID:    req.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Satın alma talebi açıldı: %s", req.ItemName),
			After:       req,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		req.Requester = models.User{ID: userID, Name: userName}
		resp, err := toResponse(&req)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}
}

// GET /api/purchase-requests?stage=3&approved=true&rejected=false
func ListPurchaseRequestsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PurchaseRequest{}).Preload("Requester")

		if stageStr := c.Query("stage"); stageStr != "" {
			var stage int
			if _, err := fmt.Sscan(stageStr, &stage); err != nil || stage < StageTalep || stage > StageKapanis {
				return fiber.NewError(fiber.StatusBadRequest, "stage geçersiz")
			}
			dbq = dbq.Where("stage = ?", stage)
		}
		if approvedStr := c.Query("approved"); approvedStr != "" {
			dbq = dbq.Where("approved = ?", approvedStr == "true")
		}
		if rejectedStr := c.Query("rejected"); rejectedStr != "" {
			dbq = dbq.Where("rejected = ?", rejectedStr == "true")
		}
		if requesterStr := c.Query("requester_id"); requesterStr != "" {
			var rid uint
			if _, err := fmt.Sscan(requesterStr, &rid); err == nil && rid > 0 {
				dbq = dbq.Where("requester_id = ?", rid)
			}
		}

		var reqs []models.PurchaseRequest
		if err := dbq.Order("created_at DESC").Find(&reqs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talepler listelenemedi")
		}

		resp := make([]*PurchaseRequestResponse, 0, len(reqs))
		for i := range reqs {
			r, err := toResponse(&reqs[i])
			if err != nil {
				return err
			}
			resp = append(resp, r)
		}
		return c.JSON(resp)
	}
}

// GET /api/purchase-requests/:id
func GetPurchaseRequestHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var req models.PurchaseRequest
		if err := database.DB.Preload("Requester").First(&req, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Talep bulunamadı")
		}

		resp, err := toResponse(&req)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}

// PUT /api/purchase-requests
// Aksiyon gövdesi: { id, action, rejectionReason?, offers?,
// selectedOfferIndex?, newOffers? }. Geçiş kuralları workflow.go'da.
func ActionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ActionRequestBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.ID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id zorunlu")
		}
		if body.Action == "" {
			return fiber.NewError(fiber.StatusBadRequest, "action zorunlu")
		}

		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var req models.PurchaseRequest
		if err := database.DB.Preload("Requester").First(&req, body.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Talep bulunamadı")
		}

		before := req

		if err := Apply(&req, &body.ActionInput); err != nil {
			return err
		}

		if err := database.DB.Save(&req).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talep güncellenemedi")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "purchase_request",
			EntityID:    req.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Talep #%d: %s (aşama %d -> %d)", req.ID, body.Action, before.Stage, req.Stage),
			Before:      before,
			After:       req,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		resp, err := toResponse(&req)
		if err != nil {
			return err
		}
		return c.JSON(resp)
	}
}
