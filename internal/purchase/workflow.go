package purchase

import (
	"encoding/json"
	"fmt"
	"strings"

	"portal-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------
// Aşamalar
// -------------------------

// Satın alma talebi 6 aşamalı sabit bir hattan geçer. Aşama sadece
// onaylı geçişlerle artar; red, talebi bulunduğu aşamada sabitler
// (stage 3'te newOffer ile akış yeniden açılabilir).
const (
	StageTalep            = 1 // talep oluşturma (oluşturma anında verilir)
	StageOnayBekliyor     = 2 // ikinci onay
	StageFiyatArastirmasi = 3 // teklif toplama
	StageUstYonetimOnayi  = 4 // üst yönetim onayı
	StageSiparisOnayi     = 5 // sipariş onayı / fatura yükleme
	StageKapanis          = 6 // fiyat kontrolü tamam, kapanış
)

var stageLabels = map[int]string{
	StageTalep:            "Talep Oluşturuldu",
	StageOnayBekliyor:     "Onay Bekliyor",
	StageFiyatArastirmasi: "Fiyat Araştırması",
	StageUstYonetimOnayi:  "Üst Yönetim Onayı",
	StageSiparisOnayi:     "Sipariş Onayı",
	StageKapanis:          "Kapanış",
}

func StageLabel(stage int) string {
	if label, ok := stageLabels[stage]; ok {
		return label
	}
	return "Bilinmeyen Aşama"
}

// -------------------------
// Aksiyonlar
// -------------------------

type Action string

const (
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionHold       Action = "hold"
	ActionSaveOffers Action = "saveOffers"
	ActionNewOffer   Action = "newOffer"
)

// ActionInput - PUT /api/purchase-requests gövdesindeki aksiyon alanları
type ActionInput struct {
	Action             Action         `json:"action"`
	RejectionReason    string         `json:"rejectionReason"`
	Offers             []models.Offer `json:"offers"`
	SelectedOfferIndex *int           `json:"selectedOfferIndex"`
	NewOffers          []models.Offer `json:"newOffers"`
	SupplierRating     *int           `json:"supplierRating"`
}

// -------------------------
// Geçiş motoru
// -------------------------

// Apply - Aksiyonu talebin mevcut aşamasına göre doğrular ve uygular.
// Veritabanına dokunmaz, sadece struct'ı değiştirir; kaydetme ve
// transaction handler'ın işi. Hata durumunda talep değişmeden kalır.
func Apply(req *models.PurchaseRequest, in *ActionInput) error {
	// Reddedilmiş talep donar; sadece stage 3'teki newOffer akışı yeniden açar
	if req.Rejected && in.Action != ActionNewOffer {
		return fiber.NewError(fiber.StatusBadRequest, "Reddedilmiş talep üzerinde bu işlem yapılamaz")
	}

	switch req.Stage {
	case StageOnayBekliyor:
		return applyStage2(req, in)
	case StageFiyatArastirmasi:
		return applyStage3(req, in)
	case StageUstYonetimOnayi:
		return applyStage4(req, in)
	default:
		return invalidAction(req.Stage, in.Action)
	}
}

func applyStage2(req *models.PurchaseRequest, in *ActionInput) error {
	switch in.Action {
	case ActionApprove:
		// Teklifler bu aşamada opsiyonel olarak eklenebilir
		if len(in.Offers) > 0 {
			if err := setOffers(req, in.Offers); err != nil {
				return err
			}
		}
		advance(req, StageFiyatArastirmasi)
		return nil

	case ActionReject:
		return reject(req, in.RejectionReason)

	case ActionSaveOffers:
		// Sadece teklif listesi güncellenir, aşama değişmez
		return setOffers(req, in.Offers)

	default:
		return invalidAction(req.Stage, in.Action)
	}
}

func applyStage3(req *models.PurchaseRequest, in *ActionInput) error {
	switch in.Action {
	case ActionApprove:
		offers, err := DecodeOffers(req)
		if err != nil {
			return err
		}
		if len(offers) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Teklif olmadan onay verilemez")
		}
		if in.SelectedOfferIndex == nil {
			return fiber.NewError(fiber.StatusBadRequest, "selectedOfferIndex zorunlu")
		}
		idx := *in.SelectedOfferIndex
		if idx < 0 || idx >= len(offers) {
			return fiber.NewError(fiber.StatusBadRequest, "selectedOfferIndex geçersiz")
		}

		// Seçilen teklif kabul, diğerleri red
		for i := range offers {
			if i == idx {
				offers[i].Status = models.OfferAccepted
			} else {
				offers[i].Status = models.OfferRejected
			}
		}
		if err := writeOffers(req, offers); err != nil {
			return err
		}

		chosen, err := json.Marshal(offers[idx])
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Seçilen teklif kaydedilemedi")
		}
		req.SelectedOffer = chosen

		advance(req, StageUstYonetimOnayi)
		return nil

	case ActionReject:
		if err := reject(req, in.RejectionReason); err != nil {
			return err
		}
		// Red, talebi fiyat araştırması aşamasında sabitler
		req.Stage = StageFiyatArastirmasi
		req.StageLabel = StageLabel(StageFiyatArastirmasi)
		return nil

	case ActionNewOffer:
		if len(in.NewOffers) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "newOffers boş olamaz")
		}
		if err := setOffers(req, in.NewOffers); err != nil {
			return err
		}
		// Yeni teklif listesi red durumunu temizler, akış yeniden açılır
		req.Approved = false
		req.Rejected = false
		req.RejectionReason = ""
		req.SelectedOffer = nil
		return nil

	default:
		return invalidAction(req.Stage, in.Action)
	}
}

func applyStage4(req *models.PurchaseRequest, in *ActionInput) error {
	switch in.Action {
	case ActionApprove:
		advance(req, StageSiparisOnayi)
		return nil

	case ActionHold:
		// İncelendi ama ilerletilmedi; sadece updated_at'e dokunulur
		return nil

	default:
		return invalidAction(req.Stage, in.Action)
	}
}

// -------------------------
// Ortak geçiş parçaları
// -------------------------

func advance(req *models.PurchaseRequest, toStage int) {
	req.Stage = toStage
	req.StageLabel = StageLabel(toStage)
	req.Approved = true
	req.Rejected = false
	req.RejectionReason = ""
}

func reject(req *models.PurchaseRequest, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fiber.NewError(fiber.StatusBadRequest, "rejectionReason zorunlu")
	}
	req.Approved = false
	req.Rejected = true
	req.RejectionReason = reason
	return nil
}

func invalidAction(stage int, action Action) error {
	return fiber.NewError(fiber.StatusBadRequest,
		fmt.Sprintf("Geçersiz işlem: aşama %d (%s) için '%s' desteklenmiyor", stage, StageLabel(stage), action))
}

// -------------------------
// Teklif listesi yardımcıları
// -------------------------

// DecodeOffers - Talebin offers jsonb kolonunu çözer
func DecodeOffers(req *models.PurchaseRequest) ([]models.Offer, error) {
	if len(req.Offers) == 0 {
		return nil, nil
	}
	var offers []models.Offer
	if err := json.Unmarshal(req.Offers, &offers); err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Teklif listesi okunamadı")
	}
	return offers, nil
}

// DecodeSelectedOffer - Kabul edilen teklif kopyasını çözer.
// Kolon boşsa veya çözümlenemezse ok=false döner, hata üretmez;
// tedarikçi puanlama adımı bu durumda sessizce atlanır.
func DecodeSelectedOffer(req *models.PurchaseRequest) (models.Offer, bool) {
	var offer models.Offer
	if len(req.SelectedOffer) == 0 {
		return offer, false
	}
	if err := json.Unmarshal(req.SelectedOffer, &offer); err != nil {
		return offer, false
	}
	return offer, offer.SupplierID != 0
}

// setOffers - Gelen listeyi normalize edip komple yazar. Her teklife
// kayıt anında sabit bir sıra numarası (no) verilir; liste sonradan
// yeniden sıralansa da teklifin kimliği değişmez.
func setOffers(req *models.PurchaseRequest, offers []models.Offer) error {
	normalized := make([]models.Offer, 0, len(offers))
	for i, o := range offers {
		o.No = i + 1
		o.SupplierName = strings.TrimSpace(o.SupplierName)
		if o.Status == "" {
			o.Status = models.OfferPending
		}
		normalized = append(normalized, o)
	}
	return writeOffers(req, normalized)
}

func writeOffers(req *models.PurchaseRequest, offers []models.Offer) error {
	data, err := json.Marshal(offers)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Teklif listesi kaydedilemedi")
	}
	req.Offers = data
	return nil
}
