package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TAMCP/internal/domain/models"
)

func TestValidateSeries(t *testing.T) {
	require.NoError(t, ValidateSeries([]float64{1, 2, 3}))

	err := ValidateSeries(nil)
	require.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "must not be empty")

	err = ValidateSeries([]float64{1, math.NaN()})
	require.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Contains(t, err.Error(), "numeric")

	assert.ErrorIs(t, ValidateSeries([]float64{math.Inf(1)}), models.ErrInvalidInput)
}

func TestValidatePeriod(t *testing.T) {
	prices := []float64{1, 2, 3}
	require.NoError(t, ValidatePeriod(3, prices))
	require.NoError(t, ValidatePeriod(1, prices))

	err := ValidatePeriod(0, prices)
	require.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, "period must be positive", err.Error())

	err = ValidatePeriod(4, prices)
	require.ErrorIs(t, err, models.ErrInvalidInput)
	assert.Equal(t, "period cannot be greater than length of prices", err.Error())
}

func TestValidatePositive(t *testing.T) {
	require.NoError(t, ValidatePositive(0.5, "upper_dev"))
	assert.EqualError(t, ValidatePositive(0, "upper_dev"), "upper_dev must be positive")
	assert.Error(t, ValidatePositive(-1, "x"))
	assert.Error(t, ValidatePositive(math.NaN(), "x"))
}
