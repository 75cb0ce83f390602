package purchase

import (
	"fmt"

	"portal-backend/internal/database"
	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/purchase-requests/export
// Talep listesini XLSX olarak indirir. Liste endpoint'iyle aynı
// filtreleri kabul eder (stage, approved, rejected).
func ExportPurchaseRequestsHandler() fiber.Handler {
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

		var reqs []models.PurchaseRequest
		if err := dbq.Order("created_at DESC").Find(&reqs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Talepler listelenemedi")
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"ID", "Talep Eden", "Birim", "Ürün", "Adet", "Aşama", "Durum", "Red Nedeni", "Seçilen Tedarikçi", "Tutar", "Tarih"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for rowIdx, req := range reqs {
			durum := "Beklemede"
			if req.Rejected {
				durum = "Reddedildi"
			} else if req.Approved {
				durum = "Onaylandı"
			}

			supplierName := ""
			var price float64
			if selected, ok := DecodeSelectedOffer(&req); ok {
				supplierName = selected.SupplierName
				price = selected.Price
			}

			values := []interface{}{
				req.ID,
				req.Requester.Name,
				req.Unit,
				req.ItemName,
				req.Quantity,
				req.StageLabel,
				durum,
				req.RejectionReason,
				supplierName,
				price,
				req.CreatedAt.Format("2006-01-02"),
			}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Excel dosyası oluşturulamadı")
		}

		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", `attachment; filename="satin-alma-talepleri.xlsx"`)
		return c.Send(buf.Bytes())
	}
}
