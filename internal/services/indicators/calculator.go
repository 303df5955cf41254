package indicators

import (
	"math"

	"TAMCP/internal/domain/models"
	domsvc "TAMCP/internal/domain/service"
)

const (
	DefaultRSIPeriod    = 14
	DefaultMACDFast     = 12
	DefaultMACDSlow     = 26
	DefaultMACDSignal   = 9
	DefaultEMAPeriod    = 10
	DefaultSMAPeriod    = 10
	DefaultBBandsPeriod = 20
	DefaultBBandsDev    = 2.0
)

// Calculator validates arguments, runs the backend and converts its output
// into null-padded series aligned with the input prices.
type Calculator struct {
	backend domsvc.IndicatorBackend
}

func NewCalculator(backend domsvc.IndicatorBackend) *Calculator {
	return &Calculator{backend: backend}
}

// RSI computes the Relative Strength Index. The first `period` entries are null.
func (c *Calculator) RSI(prices []float64, period int) (models.Series, error) {
	if err := ValidateSeries(prices); err != nil {
		return nil, err
	}
	if err := ValidatePeriod(period, prices); err != nil {
		return nil, err
	}
	lookback := period
	if len(prices) <= lookback {
		return nullSeries(len(prices)), nil
	}
	return mask(c.backend.RSI(prices, period), lookback, len(prices)), nil
}

// SMA computes the simple moving average. The first `period-1` entries are null.
func (c *Calculator) SMA(prices []float64, period int) (models.Series, error) {
	if err := ValidateSeries(prices); err != nil {
		return nil, err
	}
	if err := ValidatePeriod(period, prices); err != nil {
		return nil, err
	}
	return mask(c.backend.SMA(prices, period), period-1, len(prices)), nil
}

// EMA computes the exponential moving average seeded with the SMA of the first window.
func (c *Calculator) EMA(prices []float64, period int) (models.Series, error) {
	if err := ValidateSeries(prices); err != nil {
		return nil, err
	}
	if err := ValidatePeriod(period, prices); err != nil {
		return nil, err
	}
	return mask(c.backend.EMA(prices, period), period-1, len(prices)), nil
}

// MACD computes the MACD, signal and histogram lines. All three are null
// until the signal EMA has a value, i.e. for the first slow+signal-2 entries.
func (c *Calculator) MACD(prices []float64, fast, slow, signal int) (*models.MACDResult, error) {
	if err := ValidateSeries(prices); err != nil {
		return nil, err
	}
	if err := ValidatePositive(float64(fast), "fast period"); err != nil {
		return nil, err
	}
	if err := ValidatePositive(float64(slow), "slow period"); err != nil {
		return nil, err
	}
	if err := ValidatePositive(float64(signal), "signal period"); err != nil {
		return nil, err
	}
	if fast >= slow {
		return nil, models.InvalidInputf("fast period must be less than slow period")
	}
	if err := ValidatePeriod(slow, prices); err != nil {
		return nil, err
	}

	n := len(prices)
	// slow <= n here, so comparing signal against n-slow avoids overflowing slow+signal
	if signal > n-slow+1 {
		return &models.MACDResult{MACD: nullSeries(n), Signal: nullSeries(n), Histogram: nullSeries(n)}, nil
	}

	lookback := slow + signal - 2
	macdRaw, signalRaw, _ := c.backend.MACD(prices, fast, slow, signal)
	res := &models.MACDResult{
		MACD:      mask(macdRaw, lookback, n),
		Signal:    mask(signalRaw, lookback, n),
		Histogram: make(models.Series, n),
	}
	// histogram is derived from the masked lines so macd - signal == histogram holds exactly
	for i := range res.Histogram {
		if res.MACD[i] != nil && res.Signal[i] != nil {
			h := *res.MACD[i] - *res.Signal[i]
			res.Histogram[i] = &h
		}
	}
	return res, nil
}

// BBands computes Bollinger Bands over an SMA middle band with population stddev.
func (c *Calculator) BBands(prices []float64, period int, upperDev, lowerDev float64) (*models.BBandsResult, error) {
	if err := ValidateSeries(prices); err != nil {
		return nil, err
	}
	if err := ValidatePeriod(period, prices); err != nil {
		return nil, err
	}
	if err := ValidatePositive(upperDev, "upper_dev"); err != nil {
		return nil, err
	}
	if err := ValidatePositive(lowerDev, "lower_dev"); err != nil {
		return nil, err
	}
	n := len(prices)
	upper, middle, lower := c.backend.BBands(prices, period, upperDev, lowerDev)
	return &models.BBandsResult{
		Upper:  mask(upper, period-1, n),
		Middle: mask(middle, period-1, n),
		Lower:  mask(lower, period-1, n),
	}, nil
}

func nullSeries(n int) models.Series {
	return make(models.Series, n)
}

// mask converts raw backend output into a Series of length n, nulling the
// warm-up window and any non-finite value. Non-finite covers results the
// backend could not represent, e.g. an SMA whose running sum overflows to Inf
// on inputs near math.MaxFloat64 is null even though the mean is finite.
func mask(values []float64, lookback, n int) models.Series {
	out := make(models.Series, n)
	for i := max(lookback, 0); i < n && i < len(values); i++ {
		v := values[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[i] = &v
	}
	return out
}
