package model

import (
	"github.com/shopspring/decimal"
)

// Aggregate computes (average rating, count) over a rating multiset.
// Mean được round half-up về 1 decimal. Empty input cho (0.0, 0) -
// đó là trạng thái hợp lệ của book chưa có review, không phải error.
//
// Pure function: repository gọi nó trong cùng transaction với review
// mutation để hai denormalized columns trên books không bao giờ drift.
func Aggregate(ratings []float64) (float64, int) {
	if len(ratings) == 0 {
		return 0.0, 0
	}

	sum := decimal.Zero
	for _, r := range ratings {
		sum = sum.Add(decimal.NewFromFloat(r))
	}

	avg := sum.Div(decimal.NewFromInt(int64(len(ratings)))).Round(1)
	result, _ := avg.Float64()

	return result, len(ratings)
}
