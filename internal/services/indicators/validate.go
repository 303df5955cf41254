package indicators

import (
	"math"

	"TAMCP/internal/domain/models"
)

// ValidateSeries rejects empty series and non-finite elements.
func ValidateSeries(prices []float64) error {
	if len(prices) == 0 {
		return models.InvalidInputf("prices list must not be empty")
	}
	for i, p := range prices {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return models.InvalidInputf("all items in prices must be numeric (index %d is not finite)", i)
		}
	}
	return nil
}

// ValidatePeriod requires 1 <= period <= len(prices).
func ValidatePeriod(period int, prices []float64) error {
	if period <= 0 {
		return models.InvalidInputf("period must be positive")
	}
	if period > len(prices) {
		return models.InvalidInputf("period cannot be greater than length of prices")
	}
	return nil
}

// ValidatePositive rejects zero, negative and NaN values.
func ValidatePositive(value float64, label string) error {
	if !(value > 0) {
		return models.InvalidInputf("%s must be positive", label)
	}
	return nil
}
