package purchase

import (
	"testing"

	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestAtStage(t *testing.T, stage int, offers []models.Offer) *models.PurchaseRequest {
	t.Helper()
	req := &models.PurchaseRequest{
		ID:         1,
		ItemName:   "Laptop",
		Quantity:   2,
		Stage:      stage,
		StageLabel: StageLabel(stage),
	}
	if offers != nil {
		require.NoError(t, setOffers(req, offers))
	}
	return req
}

func sampleOffers() []models.Offer {
	return []models.Offer{
		{SupplierID: 10, SupplierName: "Tedarikçi A", Price: 1000},
		{SupplierID: 20, SupplierName: "Tedarikçi B", Price: 900},
		{SupplierID: 30, SupplierName: "Tedarikçi C", Price: 1100},
	}
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	ferr, ok := err.(*fiber.Error)
	require.True(t, ok, "fiber.Error bekleniyordu, gelen: %v", err)
	return ferr.Code
}

func TestStage2_RejectWithoutReason(t *testing.T) {
	req := newRequestAtStage(t, StageOnayBekliyor, nil)

	err := Apply(req, &ActionInput{Action: ActionReject})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))

	// Talep değişmeden kalmalı
	assert.Equal(t, StageOnayBekliyor, req.Stage)
	assert.False(t, req.Approved)
	assert.False(t, req.Rejected)
	assert.Empty(t, req.RejectionReason)
}

func TestStage2_RejectPinsStage(t *testing.T) {
	req := newRequestAtStage(t, StageOnayBekliyor, nil)

	err := Apply(req, &ActionInput{Action: ActionReject, RejectionReason: "Bütçe yok"})
	require.NoError(t, err)

	assert.Equal(t, StageOnayBekliyor, req.Stage)
	assert.False(t, req.Approved)
	assert.True(t, req.Rejected)
	assert.Equal(t, "Bütçe yok", req.RejectionReason)
}

func TestStage2_ApproveAdvancesToOfferCollection(t *testing.T) {
	req := newRequestAtStage(t, StageOnayBekliyor, nil)

	err := Apply(req, &ActionInput{Action: ActionApprove, Offers: sampleOffers()})
	require.NoError(t, err)

	assert.Equal(t, StageFiyatArastirmasi, req.Stage)
	assert.Equal(t, "Fiyat Araştırması", req.StageLabel)
	assert.True(t, req.Approved)
	assert.False(t, req.Rejected)

	offers, err := DecodeOffers(req)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	for i, o := range offers {
		assert.Equal(t, i+1, o.No)
		assert.Equal(t, models.OfferPending, o.Status)
	}
}

func TestStage2_SaveOffersKeepsStage(t *testing.T) {
	req := newRequestAtStage(t, StageOnayBekliyor, nil)

	err := Apply(req, &ActionInput{Action: ActionSaveOffers, Offers: sampleOffers()})
	require.NoError(t, err)

	assert.Equal(t, StageOnayBekliyor, req.Stage)
	assert.False(t, req.Approved)

	offers, err := DecodeOffers(req)
	require.NoError(t, err)
	assert.Len(t, offers, 3)
}

func TestStage3_ApproveIndexOutOfBounds(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"negatif", -1},
		{"liste boyu", 3},
		{"liste boyundan büyük", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequestAtStage(t, StageFiyatArastirmasi, sampleOffers())
			before, err := DecodeOffers(req)
			require.NoError(t, err)

			idx := tt.index
			applyErr := Apply(req, &ActionInput{Action: ActionApprove, SelectedOfferIndex: &idx})
			require.Error(t, applyErr)
			assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, applyErr))

			// Teklifler dokunulmamış olmalı
			after, err := DecodeOffers(req)
			require.NoError(t, err)
			assert.Equal(t, before, after)
			assert.Equal(t, StageFiyatArastirmasi, req.Stage)
		})
	}
}

func TestStage3_ApproveWithoutOffers(t *testing.T) {
	req := newRequestAtStage(t, StageFiyatArastirmasi, nil)

	idx := 0
	err := Apply(req, &ActionInput{Action: ActionApprove, SelectedOfferIndex: &idx})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.Equal(t, StageFiyatArastirmasi, req.Stage)
}

func TestStage3_ApproveSelectsExactlyOne(t *testing.T) {
	req := newRequestAtStage(t, StageFiyatArastirmasi, sampleOffers())

	idx := 1
	err := Apply(req, &ActionInput{Action: ActionApprove, SelectedOfferIndex: &idx})
	require.NoError(t, err)

	assert.Equal(t, StageUstYonetimOnayi, req.Stage)
	assert.True(t, req.Approved)

	offers, err := DecodeOffers(req)
	require.NoError(t, err)
	accepted := 0
	for i, o := range offers {
		if i == idx {
			assert.Equal(t, models.OfferAccepted, o.Status)
			accepted++
		} else {
			assert.Equal(t, models.OfferRejected, o.Status)
		}
	}
	assert.Equal(t, 1, accepted)

	selected, ok := DecodeSelectedOffer(req)
	require.True(t, ok)
	assert.Equal(t, offers[idx], selected)
	assert.Equal(t, uint(20), selected.SupplierID)
}

func TestStage3_RejectResetsToStage3(t *testing.T) {
	req := newRequestAtStage(t, StageFiyatArastirmasi, sampleOffers())

	err := Apply(req, &ActionInput{Action: ActionReject, RejectionReason: "Fiyatlar yüksek"})
	require.NoError(t, err)

	assert.Equal(t, StageFiyatArastirmasi, req.Stage)
	assert.True(t, req.Rejected)
	assert.False(t, req.Approved)
}

func TestStage3_RejectWithoutReason(t *testing.T) {
	req := newRequestAtStage(t, StageFiyatArastirmasi, sampleOffers())

	err := Apply(req, &ActionInput{Action: ActionReject, RejectionReason: "   "})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	assert.False(t, req.Rejected)
}

func TestStage3_NewOfferReplacesWholesale(t *testing.T) {
	req := newRequestAtStage(t, StageFiyatArastirmasi, sampleOffers())

	// Önce red et, newOffer temizlemeli
	require.NoError(t, Apply(req, &ActionInput{Action: ActionReject, RejectionReason: "Uygun değil"}))
	require.True(t, req.Rejected)

	newOffers := []models.Offer{
		{SupplierID: 40, SupplierName: "Tedarikçi D", Price: 800},
		{SupplierID: 50, SupplierName: "Tedarikçi E", Price: 850},
	}
	err := Apply(req, &ActionInput{Action: ActionNewOffer, NewOffers: newOffers})
	require.NoError(t, err)

	assert.False(t, req.Approved)
	assert.False(t, req.Rejected)
	assert.Empty(t, req.RejectionReason)

	offers, err := DecodeOffers(req)
	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, uint(40), offers[0].SupplierID)
}

func TestStage3_NewOfferIdempotent(t *testing.T) {
	req := newRequestAtStage(t, StageFiyatArastirmasi, sampleOffers())

	newOffers := []models.Offer{
		{SupplierID: 40, SupplierName: "Tedarikçi D", Price: 800},
	}

	require.NoError(t, Apply(req, &ActionInput{Action: ActionNewOffer, NewOffers: newOffers}))
	first, err := DecodeOffers(req)
	require.NoError(t, err)

	// Aynı liste ikinci kez gönderilince sonuç birebir aynı olmalı
	require.NoError(t, Apply(req, &ActionInput{Action: ActionNewOffer, NewOffers: newOffers}))
	second, err := DecodeOffers(req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, second, 1)
	assert.False(t, req.Approved)
	assert.False(t, req.Rejected)
	assert.Empty(t, req.RejectionReason)
}

func TestStage3_NewOfferEmptyList(t *testing.T) {
	req := newRequestAtStage(t, StageFiyatArastirmasi, sampleOffers())

	err := Apply(req, &ActionInput{Action: ActionNewOffer})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestStage4_ApproveSetsOrderLabel(t *testing.T) {
	req := newRequestAtStage(t, StageUstYonetimOnayi, nil)

	err := Apply(req, &ActionInput{Action: ActionApprove})
	require.NoError(t, err)

	assert.Equal(t, StageSiparisOnayi, req.Stage)
	assert.Equal(t, "Sipariş Onayı", req.StageLabel)
}

func TestStage4_HoldChangesNothing(t *testing.T) {
	req := newRequestAtStage(t, StageUstYonetimOnayi, nil)
	req.Approved = true

	err := Apply(req, &ActionInput{Action: ActionHold})
	require.NoError(t, err)

	assert.Equal(t, StageUstYonetimOnayi, req.Stage)
	assert.True(t, req.Approved)
	assert.False(t, req.Rejected)
}

func TestRejectedRequestIsFrozen(t *testing.T) {
	req := newRequestAtStage(t, StageOnayBekliyor, nil)
	require.NoError(t, Apply(req, &ActionInput{Action: ActionReject, RejectionReason: "Gerek yok"}))

	for _, action := range []Action{ActionApprove, ActionReject, ActionSaveOffers, ActionHold} {
		err := Apply(req, &ActionInput{Action: action, RejectionReason: "x"})
		require.Error(t, err, "aksiyon: %s", action)
		assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
	}
	assert.Equal(t, StageOnayBekliyor, req.Stage)
}

func TestInvalidActionForStage(t *testing.T) {
	tests := []struct {
		stage  int
		action Action
	}{
		{StageOnayBekliyor, ActionHold},
		{StageOnayBekliyor, ActionNewOffer},
		{StageFiyatArastirmasi, ActionSaveOffers},
		{StageUstYonetimOnayi, ActionReject},
		{StageSiparisOnayi, ActionApprove}, // stage 5 PUT üzerinden değil fatura endpoint'inden ilerler
		{StageKapanis, ActionApprove},
	}

	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			req := newRequestAtStage(t, tt.stage, sampleOffers())
			err := Apply(req, &ActionInput{Action: tt.action, RejectionReason: "x", NewOffers: sampleOffers()})
			require.Error(t, err)
			assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
			assert.Equal(t, tt.stage, req.Stage)
		})
	}
}

func TestStageLabel_Unknown(t *testing.T) {
	assert.Equal(t, "Bilinmeyen Aşama", StageLabel(0))
	assert.Equal(t, "Bilinmeyen Aşama", StageLabel(7))
}
