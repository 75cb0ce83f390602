package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDueDate(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		done     time.Time
		period   int
		expected time.Time
	}{
		{"aylık", day(2025, time.March, 15), 1, day(2025, time.April, 15)},
		{"üç aylık", day(2025, time.January, 10), 3, day(2025, time.April, 10)},
		{"yıllık", day(2025, time.June, 1), 12, day(2026, time.June, 1)},
		{"yıl geçişi", day(2025, time.November, 20), 3, day(2026, time.February, 20)},
		// 31 Ocak + 1 ay: Şubat 31 olmadığından normalize edilir
		{"ay sonu taşması", day(2025, time.January, 31), 1, day(2025, time.March, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextDueDate(tt.done, tt.period))
		})
	}
}
