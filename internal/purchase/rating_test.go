package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatingValid(t *testing.T) {
	tests := []struct {
		rating   int
		expected bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{5, true},
		{6, false},
		{-1, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RatingValid(tt.rating), "rating: %d", tt.rating)
	}
}

func TestNextAverage_RunningMean(t *testing.T) {
	// puan=3.0, sayı=2 iken 4 verilince: (3.0*2+4)/3 = 3.333..., sayı 3
	avg, count := NextAverage(3.0, 2, 4)
	assert.InDelta(t, 3.3333333, avg, 1e-6)
	assert.Equal(t, 3, count)
}

func TestNextAverage_FirstRating(t *testing.T) {
	avg, count := NextAverage(0, 0, 5)
	assert.Equal(t, 5.0, avg)
	assert.Equal(t, 1, count)
}

// Puan her zaman tüm puanların aritmetik ortalaması olmalı; iki değerin
// basit ortalamasını alan eski varyant bilinçli olarak yok.
func TestNextAverage_SequenceIsArithmeticMean(t *testing.T) {
	ratings := []int{5, 3, 4, 1, 2, 5, 4}

	var avg float64
	var count int
	sum := 0
	for _, r := range ratings {
		avg, count = NextAverage(avg, count, r)
		sum += r
	}

	assert.Equal(t, len(ratings), count)
	assert.InDelta(t, float64(sum)/float64(len(ratings)), avg, 1e-9)
}
