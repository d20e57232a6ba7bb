package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	tests := []struct {
		name      string
		ratings   []float64
		wantAvg   float64
		wantCount int
	}{
		{
			name:      "empty set is the no-reviews state",
			ratings:   nil,
			wantAvg:   0.0,
			wantCount: 0,
		},
		{
			name:      "single rating",
			ratings:   []float64{4.0},
			wantAvg:   4.0,
			wantCount: 1,
		},
		{
			name:      "three ratings",
			ratings:   []float64{5.0, 4.0, 3.0},
			wantAvg:   4.0,
			wantCount: 3,
		},
		{
			name:      "after removing the 3.0",
			ratings:   []float64{5.0, 4.0},
			wantAvg:   4.5,
			wantCount: 2,
		},
		{
			name:      "rounds to one decimal",
			ratings:   []float64{5.0, 4.0, 4.0},
			wantAvg:   4.3,
			wantCount: 3,
		},
		{
			name:      "half rounds up",
			ratings:   []float64{4.1, 4.2}, // mean 4.15
			wantAvg:   4.2,
			wantCount: 2,
		},
		{
			name:      "fractional ratings",
			ratings:   []float64{3.5, 4.5, 2.0},
			wantAvg:   3.3,
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avg, count := Aggregate(tt.ratings)
			assert.Equal(t, tt.wantAvg, avg)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestAggregateIdempotent(t *testing.T) {
	ratings := []float64{4.7, 3.2, 5.0, 1.5}

	avg1, count1 := Aggregate(ratings)
	avg2, count2 := Aggregate(ratings)

	assert.Equal(t, avg1, avg2)
	assert.Equal(t, count1, count2)
}
