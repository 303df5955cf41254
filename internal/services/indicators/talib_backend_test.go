package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TAMCP/internal/domain/models"
)

func values(t *testing.T, s models.Series, from int) []float64 {
	t.Helper()
	out := make([]float64, 0, len(s)-from)
	for i := from; i < len(s); i++ {
		require.NotNil(t, s[i], "index %d", i)
		out = append(out, *s[i])
	}
	return out
}

func sampleCloses() []float64 {
	out := make([]float64, 60)
	for i := range out {
		out[i] = 100 + 5*math.Sin(float64(i)/4) + float64(i%7)/3
	}
	return out
}

func TestTalibSMAEndToEnd(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())

	out, err := calc.SMA(ramp(10), 5)
	require.NoError(t, err)
	require.Len(t, out, 10)
	for i := 0; i < 4; i++ {
		assert.Nil(t, out[i])
	}
	assert.InDeltaSlice(t, []float64{3, 4, 5, 6, 7, 8}, values(t, out, 4), 1e-9)
}

func TestTalibSMAIsWindowMean(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())
	prices := sampleCloses()

	out, err := calc.SMA(prices, 7)
	require.NoError(t, err)
	for i := 6; i < len(prices); i++ {
		sum := 0.0
		for _, p := range prices[i-6 : i+1] {
			sum += p
		}
		assert.InDelta(t, sum/7, *out[i], 1e-9)
	}
}

func TestTalibEMA(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())

	out, err := calc.EMA([]float64{100, 102, 104, 103, 105}, 3)
	require.NoError(t, err)
	assert.Nil(t, out[0])
	assert.Nil(t, out[1])
	assert.InDeltaSlice(t, []float64{102, 102.5, 103.75}, values(t, out, 2), 1e-9)
}

func TestTalibRSIBounds(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())
	prices := sampleCloses()

	out, err := calc.RSI(prices, 14)
	require.NoError(t, err)
	require.Len(t, out, len(prices))
	for i := 0; i < 14; i++ {
		assert.Nil(t, out[i])
	}
	for _, v := range values(t, out, 14) {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestTalibRSIMonotonic(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())

	up, err := calc.RSI(ramp(20), 5)
	require.NoError(t, err)
	for _, v := range values(t, up, 5) {
		assert.InDelta(t, 100.0, v, 1e-9)
	}

	falling := make([]float64, 20)
	for i := range falling {
		falling[i] = float64(100 - i)
	}
	down, err := calc.RSI(falling, 5)
	require.NoError(t, err)
	for _, v := range values(t, down, 5) {
		assert.InDelta(t, 0.0, v, 1e-9)
	}
}

func TestTalibRSIPeriodOne(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())

	out, err := calc.RSI([]float64{1, 2, 1, 1, 3}, 1)
	require.NoError(t, err)
	assert.Nil(t, out[0])
	assert.Equal(t, []float64{100, 0, 0, 100}, values(t, out, 1))
}

func TestTalibBBands(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())
	prices := sampleCloses()

	res, err := calc.BBands(prices, 20, 2, 2)
	require.NoError(t, err)
	for i := 19; i < len(prices); i++ {
		assert.LessOrEqual(t, *res.Lower[i], *res.Middle[i])
		assert.LessOrEqual(t, *res.Middle[i], *res.Upper[i])
	}

	flat := make([]float64, 25)
	for i := range flat {
		flat[i] = 10
	}
	res, err = calc.BBands(flat, 20, 2, 2)
	require.NoError(t, err)
	for i := 19; i < len(flat); i++ {
		assert.InDelta(t, 10.0, *res.Upper[i], 1e-9)
		assert.InDelta(t, 10.0, *res.Middle[i], 1e-9)
		assert.InDelta(t, 10.0, *res.Lower[i], 1e-9)
	}
}

func TestTalibBBandsPopulationStdDev(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())

	res, err := calc.BBands(ramp(30), 20, 2, 1)
	require.NoError(t, err)
	sd := math.Sqrt(33.25)
	assert.InDelta(t, 20.5, *res.Middle[29], 1e-9)
	assert.InDelta(t, 20.5+2*sd, *res.Upper[29], 1e-6)
	assert.InDelta(t, 20.5-sd, *res.Lower[29], 1e-6)
}

func TestTalibMACD(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())
	prices := sampleCloses()

	res, err := calc.MACD(prices, 12, 26, 9)
	require.NoError(t, err)
	lookback := 26 + 9 - 2
	for _, line := range []models.Series{res.MACD, res.Signal, res.Histogram} {
		require.Len(t, line, len(prices))
		assert.Equal(t, lookback, nullCount(line))
	}
	for i := lookback; i < len(prices); i++ {
		assert.InDelta(t, *res.MACD[i]-*res.Signal[i], *res.Histogram[i], 1e-12)
	}
}

func TestTalibMACDMatchesEMADifference(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())
	prices := sampleCloses()

	res, err := calc.MACD(prices, 3, 6, 2)
	require.NoError(t, err)
	slow, err := calc.EMA(prices, 6)
	require.NoError(t, err)
	fast, err := calc.EMA(prices[3:], 3)
	require.NoError(t, err)
	for i := 6; i < len(prices); i++ {
		assert.InDelta(t, *fast[i-3]-*slow[i], *res.MACD[i], 1e-9)
	}
}

func TestTalibIdempotent(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())
	prices := sampleCloses()

	a, err := calc.MACD(prices, 12, 26, 9)
	require.NoError(t, err)
	b, err := calc.MACD(prices, 12, 26, 9)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTalibSMAOverflowIsNull(t *testing.T) {
	calc := NewCalculator(NewTalibBackend())

	// the running window sum overflows to Inf, so every value is null
	out, err := calc.SMA([]float64{1e308, 1e308, 1e308}, 2)
	require.NoError(t, err)
	assert.Equal(t, models.Series{nil, nil, nil}, out)
}
