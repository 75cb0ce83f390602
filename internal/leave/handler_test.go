package leave

import (
	"testing"
	"time"

	"portal-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayCount(t *testing.T) {
	day := func(s string) time.Time {
		d, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return d
	}

	tests := []struct {
		name     string
		start    string
		end      string
		expected int
	}{
		{"tek gün", "2025-03-10", "2025-03-10", 1},
		{"iki gün", "2025-03-10", "2025-03-11", 2},
		{"bir hafta", "2025-03-10", "2025-03-16", 7},
		{"ay sonu geçişi", "2025-01-30", "2025-02-02", 4},
		{"yıl geçişi", "2025-12-30", "2026-01-02", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DayCount(day(tt.start), day(tt.end)))
		})
	}
}

func TestGenerateLeaveFormPDF(t *testing.T) {
	now := time.Now()
	req := &models.LeaveRequest{
		ID:        7,
		User:      models.User{Name: "Ayse Yilmaz", Unit: "Muhasebe"},
		Type:      models.LeaveAnnual,
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
		DayCount:  5,
		Decider:   &models.User{Name: "Mehmet Demir"},
		DecidedAt: &now,
	}

	pdfBytes, err := GenerateLeaveFormPDF(req)
	require.NoError(t, err)
	require.NotEmpty(t, pdfBytes)

	// PDF başlığı
	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
}
