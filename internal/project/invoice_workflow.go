package project

import (
	"fmt"
	"time"

	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Sözleşme faturası durum makinesi kesin sıralıdır, atlama ve geri
// dönüş yoktur: PENDING -> ISSUED -> RECEIVED -> PAID_OUT
var invoiceNextStatus = map[models.ContractInvoiceStatus]models.ContractInvoiceStatus{
	models.ContractInvoicePending:  models.ContractInvoiceIssued,
	models.ContractInvoiceIssued:   models.ContractInvoiceReceived,
	models.ContractInvoiceReceived: models.ContractInvoicePaidOut,
}

// ValidateInvoiceTransition - İstenen durumun mevcut durumun hemen
// ardılı olduğunu doğrular. Hata mesajı iki durumu da isimlendirir.
func ValidateInvoiceTransition(current, requested models.ContractInvoiceStatus) error {
	next, ok := invoiceNextStatus[current]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Geçersiz geçiş: fatura %s durumunda, başka duruma geçilemez", current))
	}
	if requested != next {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("Geçersiz geçiş: mevcut durum %s iken %s istendi (sıradaki: %s)", current, requested, next))
	}
	return nil
}

// ApplyInvoiceTransition - Geçişi doğrular, durumu ilerletir ve geçişe
// ait tarih alanını damgalar.
func ApplyInvoiceTransition(inv *models.ContractInvoice, requested models.ContractInvoiceStatus, date time.Time) error {
	if err := ValidateInvoiceTransition(inv.Status, requested); err != nil {
		return err
	}

	inv.Status = requested
	switch requested {
	case models.ContractInvoiceIssued:
		inv.IssuedDate = &date
	case models.ContractInvoiceReceived:
		inv.PaymentReceivedDate = &date
	case models.ContractInvoicePaidOut:
		inv.AcademicianPaidDate = &date
	}

	return nil
}
