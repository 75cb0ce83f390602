package project

import (
	"testing"
	"time"

	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInvoiceTransition_Sequential(t *testing.T) {
	tests := []struct {
		current   models.ContractInvoiceStatus
		requested models.ContractInvoiceStatus
		ok        bool
	}{
		{models.ContractInvoicePending, models.ContractInvoiceIssued, true},
		{models.ContractInvoiceIssued, models.ContractInvoiceReceived, true},
		{models.ContractInvoiceReceived, models.ContractInvoicePaidOut, true},

		// Atlama yok
		{models.ContractInvoicePending, models.ContractInvoiceReceived, false},
		{models.ContractInvoicePending, models.ContractInvoicePaidOut, false},
		{models.ContractInvoiceIssued, models.ContractInvoicePaidOut, false},

		// Geri dönüş yok
		{models.ContractInvoiceIssued, models.ContractInvoicePending, false},
		{models.ContractInvoiceReceived, models.ContractInvoiceIssued, false},

		// Son durumdan çıkış yok
		{models.ContractInvoicePaidOut, models.ContractInvoiceIssued, false},
		{models.ContractInvoicePaidOut, models.ContractInvoicePaidOut, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.current)+"->"+string(tt.requested), func(t *testing.T) {
			err := ValidateInvoiceTransition(tt.current, tt.requested)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ferr, ok := err.(*fiber.Error)
			require.True(t, ok)
			assert.Equal(t, fiber.StatusBadRequest, ferr.Code)
			// Hata mesajı mevcut durumu isimlendirmeli
			assert.Contains(t, ferr.Message, string(tt.current))
		})
	}
}

func TestValidateInvoiceTransition_ErrorNamesBothStates(t *testing.T) {
	err := ValidateInvoiceTransition(models.ContractInvoicePending, models.ContractInvoicePaidOut)
	require.Error(t, err)
	ferr := err.(*fiber.Error)
	assert.Contains(t, ferr.Message, "PENDING")
	assert.Contains(t, ferr.Message, "PAID_OUT")
}

func TestApplyInvoiceTransition_StampsDates(t *testing.T) {
	inv := &models.ContractInvoice{Status: models.ContractInvoicePending}

	issued := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ApplyInvoiceTransition(inv, models.ContractInvoiceIssued, issued))
	assert.Equal(t, models.ContractInvoiceIssued, inv.Status)
	require.NotNil(t, inv.IssuedDate)
	assert.Equal(t, issued, *inv.IssuedDate)
	assert.Nil(t, inv.PaymentReceivedDate)
	assert.Nil(t, inv.AcademicianPaidDate)

	received := issued.AddDate(0, 0, 15)
	require.NoError(t, ApplyInvoiceTransition(inv, models.ContractInvoiceReceived, received))
	require.NotNil(t, inv.PaymentReceivedDate)
	assert.Equal(t, received, *inv.PaymentReceivedDate)

	paid := received.AddDate(0, 0, 5)
	require.NoError(t, ApplyInvoiceTransition(inv, models.ContractInvoicePaidOut, paid))
	require.NotNil(t, inv.AcademicianPaidDate)
	assert.Equal(t, paid, *inv.AcademicianPaidDate)
}

func TestApplyInvoiceTransition_InvalidLeavesInvoiceUntouched(t *testing.T) {
	inv := &models.ContractInvoice{Status: models.ContractInvoicePending}

	err := ApplyInvoiceTransition(inv, models.ContractInvoicePaidOut, time.Now())
	require.Error(t, err)

	assert.Equal(t, models.ContractInvoicePending, inv.Status)
	assert.Nil(t, inv.IssuedDate)
	assert.Nil(t, inv.AcademicianPaidDate)
}
