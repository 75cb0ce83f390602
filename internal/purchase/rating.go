package purchase

import (
	"portal-backend/internal/models"

	"gorm.io/gorm"
)

// RatingValid - Tedarikçi puanı 1-5 arası tam sayı
func RatingValid(rating int) bool {
	return rating >= 1 && rating <= 5
}

// NextAverage - Yeni puan eklendikten sonraki ortalama ve sayaç.
// Ağırlıklı yürüyen ortalama: (puan*sayı + yeni) / (sayı+1).
func NextAverage(puan float64, puanSayisi int, rating int) (float64, int) {
	newCount := puanSayisi + 1
	newAvg := (puan*float64(puanSayisi) + float64(rating)) / float64(newCount)
	return newAvg, newCount
}

// rateSupplier - Tedarikçiyi verilen transaction içinde puanlar.
// Ortalama, aynı transaction'da okunan satır üzerinden hesaplanır ki
// fatura onayı ile puan güncellemesi tek atomik birimde kalsın.
// Tedarikçi bulunamazsa puanlama sessizce atlanır (ok=false), hata değildir.
func rateSupplier(tx *gorm.DB, supplierID uint, rating int) (bool, error) {
	var supplier models.Supplier
	if err := tx.First(&supplier, supplierID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, err
	}

	supplier.Puan, supplier.PuanSayisi = NextAverage(supplier.Puan, supplier.PuanSayisi, rating)

	if err := tx.Model(&models.Supplier{}).Where("id = ?", supplier.ID).
		Updates(map[string]interface{}{
			"puan":        supplier.Puan,
			"puan_sayisi": supplier.PuanSayisi,
		}).Error; err != nil {
		return false, err
	}

	return true, nil
}
