package purchase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"portal-backend/internal/audit"
	"portal-backend/internal/config"
	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxInvoiceFileSize = 10 << 20 // 10 MB

var allowedInvoiceMIMEs = map[string]string{
	"application/pdf": ".pdf",
	"image/jpeg":      ".jpg",
	"image/jpg":       ".jpg",
	"image/png":       ".png",
}

// validateInvoiceFile - Tip ve boyut kontrolü; dosya uzantısını döner.
// Diske yazmadan önce çağrılır, hata varsa ne kayıt ne dosya oluşur.
func validateInvoiceFile(contentType string, size int64) (string, error) {
	if size > maxInvoiceFileSize {
		return "", fiber.NewError(fiber.StatusBadRequest, "Dosya 10 MB'den büyük olamaz")
	}
	ext, ok := allowedInvoiceMIMEs[strings.ToLower(contentType)]
	if !ok {
		return "", fiber.NewError(fiber.StatusBadRequest, "Sadece PDF, JPEG veya PNG yüklenebilir")
	}
	return ext, nil
}

// -------------------------
// Request/Response Types
// -------------------------

type PriceCheckBody struct {
	Action          Action `json:"action"`
	RejectionReason string `json:"rejectionReason"`
	SupplierRating  *int   `json:"supplierRating"`
}

type PurchaseInvoiceResponse struct {
	ID                uint    `json:"id"`
	PurchaseRequestID uint    `json:"purchase_request_id"`
	FileURL           string  `json:"file_url"`
	Amount            float64 `json:"amount"`
	Approved          bool    `json:"approved"`
	RejectionReason   string  `json:"rejection_reason,omitempty"`
	SupplierRated     bool    `json:"supplier_rated"`
	UploadedByID      uint    `json:"uploaded_by_id"`
	CreatedAt         string  `json:"created_at"`
}

func invoiceToResponse(inv *models.PurchaseInvoice) PurchaseInvoiceResponse {
	return PurchaseInvoiceResponse{
		ID:                inv.ID,
		PurchaseRequestID: inv.PurchaseRequestID,
		FileURL:           inv.FileURL,
		Amount:            inv.Amount,
		Approved:          inv.Approved,
		RejectionReason:   inv.RejectionReason,
		SupplierRated:     inv.SupplierRated,
		UploadedByID:      inv.UploadedByID,
		CreatedAt:         inv.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// -------------------------
// Handlers
// -------------------------

// POST /api/purchase-invoices
// multipart/form-data: purchaseId, amount, file (pdf/jpeg/png, max 10 MB)
// Dosya diske yazılmadan önce tüm doğrulamalar biter; hatalı istekte
// ne fatura kaydı ne dosya oluşur.
func UploadInvoiceHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var purchaseID uint
		if _, err := fmt.Sscan(c.FormValue("purchaseId"), &purchaseID); err != nil || purchaseID == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "purchaseId zorunlu")
		}

		var amount float64
		if _, err := fmt.Sscan(c.FormValue("amount"), &amount); err != nil || amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount zorunlu ve > 0 olmalı")
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Dosya yüklenemedi: "+err.Error())
		}

		ext, err := validateInvoiceFile(fileHeader.Header.Get("Content-Type"), fileHeader.Size)
		if err != nil {
			return err
		}

		var req models.PurchaseRequest
		if err := database.DB.First(&req, purchaseID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Talep bulunamadı")
		}
		if req.Stage < StageSiparisOnayi {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Fatura sadece sipariş onayı aşamasındaki (>=%d) taleplere yüklenebilir, talep aşaması: %d", StageSiparisOnayi, req.Stage))
		}

		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.InvoiceFilePath, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya klasörü oluşturulamadı")
		}

		fileName := uuid.NewString() + ext
		filePath := filepath.Join(cfg.InvoiceFilePath, fileName)
		if err := c.SaveFile(fileHeader, filePath); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Dosya kaydedilemedi")
		}

		invoice := models.PurchaseInvoice{
			PurchaseRequestID: purchaseID,
			FileURL:           "/invoice-files/" + fileName,
			Amount:            amount,
			UploadedByID:      userID,
		}

		if err := database.DB.Create(&invoice).Error; err != nil {
			// Kayıt açılamadıysa yazılan dosya da kalmasın
			os.Remove(filePath)
			return fiber.NewError(fiber.StatusInternalServerError, "Fatura kaydedilemedi")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserID:      userID,
			UserName:    userName,
			EntityType:  "purchase_invoice",
			EntityID:    invoice.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Talep #%d için fatura yüklendi (%.2f TL)", purchaseID, amount),
			After:       invoice,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(invoiceToResponse(&invoice))
	}
}

// GET /api/purchase-invoices?purchase_id=1
func ListInvoicesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.PurchaseInvoice{})

		if pidStr := c.Query("purchase_id"); pidStr != "" {
			var pid uint
			if _, err := fmt.Sscan(pidStr, &pid); err == nil && pid > 0 {
				dbq = dbq.Where("purchase_request_id = ?", pid)
			}
		}
		if approvedStr := c.Query("approved"); approvedStr != "" {
			dbq = dbq.Where("approved = ?", approvedStr == "true")
		}

		var invoices []models.PurchaseInvoice
		if err := dbq.Order("created_at DESC").Find(&invoices).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Faturalar listelenemedi")
		}

		resp := make([]PurchaseInvoiceResponse, 0, len(invoices))
		for i := range invoices {
			resp = append(resp, invoiceToResponse(&invoices[i]))
		}
		return c.JSON(resp)
	}
}

// PUT /api/purchase-invoices/:id/price-check
// Fiyat kontrolü: onayla kapanışa geçilir (stage 6), redde talep
// sipariş onayında (stage 5) kalır. Onay, geçerli bir supplierRating
// ve çözümlenebilir bir seçili teklif varsa tedarikçi puanlamasını da
// aynı transaction içinde yapar; tedarikçi bulunamazsa puanlama
// sessizce atlanır.
func PriceCheckHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "id geçersiz")
		}

		var body PriceCheckBody
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		userID, userName, err := getUserInfo(c)
		if err != nil {
			return err
		}

		var invoice models.PurchaseInvoice
		if err := database.DB.First(&invoice, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fatura bulunamadı")
		}

		var req models.PurchaseRequest
		if err := database.DB.First(&req, invoice.PurchaseRequestID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Faturanın talebi bulunamadı")
		}

		switch body.Action {
		case ActionApprove:
			rated := false
			txErr := database.DB.Transaction(func(tx *gorm.DB) error {
				invoice.Approved = true
				invoice.RejectionReason = ""

				req.Stage = StageKapanis
				req.StageLabel = StageLabel(StageKapanis)
				req.Approved = true
				req.Rejected = false
				req.RejectionReason = ""

				if body.SupplierRating != nil && RatingValid(*body.SupplierRating) {
					if selected, ok := DecodeSelectedOffer(&req); ok {
						ok, err := rateSupplier(tx, selected.SupplierID, *body.SupplierRating)
						if err != nil {
							return err
						}
						if ok {
							invoice.SupplierRated = true
							rated = true
						}
					}
				}

				if err := tx.Save(&invoice).Error; err != nil {
					return err
				}
				return tx.Save(&req).Error
			})
			if txErr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fiyat kontrolü kaydedilemedi")
			}

			desc := fmt.Sprintf("Fatura #%d fiyat kontrolü onaylandı, talep kapanışa geçti", invoice.ID)
			if rated {
				desc += fmt.Sprintf(" (tedarikçi puanı: %d)", *body.SupplierRating)
			}
			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "purchase_invoice",
				EntityID:    invoice.ID,
				Action:      models.AuditActionUpdate,
				Description: desc,
				After:       invoice,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}

			return c.JSON(invoiceToResponse(&invoice))

		case ActionReject:
			reason := strings.TrimSpace(body.RejectionReason)
			if reason == "" {
				return fiber.NewError(fiber.StatusBadRequest, "rejectionReason zorunlu")
			}

			txErr := database.DB.Transaction(func(tx *gorm.DB) error {
				invoice.Approved = false
				invoice.RejectionReason = reason

				// Talep sipariş onayı aşamasında kalır
				req.Stage = StageSiparisOnayi
				req.StageLabel = StageLabel(StageSiparisOnayi)
				req.Approved = false
				req.Rejected = true
				req.RejectionReason = reason

				if err := tx.Save(&invoice).Error; err != nil {
					return err
				}
				return tx.Save(&req).Error
			})
			if txErr != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Fiyat kontrolü kaydedilemedi")
			}

			if logErr := audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "purchase_invoice",
				EntityID:    invoice.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Fatura #%d fiyat kontrolünde reddedildi: %s", invoice.ID, reason),
				After:       invoice,
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}

			return c.JSON(invoiceToResponse(&invoice))

		default:
			return fiber.NewError(fiber.StatusBadRequest, "action 'approve' veya 'reject' olmalı")
		}
	}
}
