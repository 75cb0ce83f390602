package leave

import (
	"bytes"
	"fmt"

	"portal-backend/internal/models"

	"github.com/jung-kurt/gofpdf"
)

var leaveTypeLabels = map[models.LeaveType]string{
	models.LeaveAnnual: "Yillik Izin",
	models.LeaveSick:   "Rapor",
	models.LeaveUnpaid: "Ucretsiz Izin",
}

// GenerateLeaveFormPDF - Onaylanan izin talebi için A4 izin formu üretir.
// gofpdf'in gömülü fontları Latin-1 olduğundan form metinleri ASCII tutulur.
func GenerateLeaveFormPDF(req *models.LeaveRequest) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "IZIN TALEP FORMU", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	typeLabel, ok := leaveTypeLabels[req.Type]
	if !ok {
		typeLabel = string(req.Type)
	}

	rows := [][2]string{
		{"Form No", fmt.Sprintf("%d", req.ID)},
		{"Calisan", req.User.Name},
		{"Birim", req.User.Unit},
		{"Izin Turu", typeLabel},
		{"Baslangic", req.StartDate.Format("02.01.2006")},
		{"Bitis", req.EndDate.Format("02.01.2006")},
		{"Gun Sayisi", fmt.Sprintf("%d", req.DayCount)},
	}
	if req.Decider != nil {
		rows = append(rows, [2]string{"Onaylayan", req.Decider.Name})
	}
	if req.DecidedAt != nil {
		rows = append(rows, [2]string{"Onay Tarihi", req.DecidedAt.Format("02.01.2006")})
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(50, 9, row[0], "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 9, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(14)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(85, 8, "Calisan Imza", "T", 0, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Yonetici Imza", "T", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("izin formu PDF üretilemedi: %w", err)
	}
	return buf.Bytes(), nil
}
