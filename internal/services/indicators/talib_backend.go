package indicators

import (
	talib "github.com/markcheno/go-talib"

	domsvc "TAMCP/internal/domain/service"
)

// TalibBackend binds the indicator tools to go-talib.
// Callers guarantee the series is long enough for the requested window.
type TalibBackend struct{}

func NewTalibBackend() *TalibBackend { return &TalibBackend{} }

func (TalibBackend) SMA(prices []float64, period int) []float64 {
	return talib.Sma(prices, period)
}

func (TalibBackend) EMA(prices []float64, period int) []float64 {
	return talib.Ema(prices, period)
}

func (TalibBackend) RSI(prices []float64, period int) []float64 {
	if period < 2 {
		// go-talib returns zeros below period 2; with a one-bar window the
		// Wilder averages are just the latest gain and loss.
		out := make([]float64, len(prices))
		for i := 1; i < len(prices); i++ {
			if prices[i] > prices[i-1] {
				out[i] = 100
			}
		}
		return out
	}
	return talib.Rsi(prices, period)
}

// MACD follows TA-Lib's alignment: both EMAs start producing at slow-1
// (the fast one seeded on the fast window ending there) and the signal EMA
// is seeded on the first `signal` MACD values.
func (TalibBackend) MACD(prices []float64, fast, slow, signal int) ([]float64, []float64, []float64) {
	n := len(prices)
	macd := make([]float64, n)
	sig := make([]float64, n)
	hist := make([]float64, n)
	if fast > slow {
		fast, slow = slow, fast
	}
	start := slow - 1
	if fast <= 0 || signal <= 0 || n <= start {
		return macd, sig, hist
	}

	shift := slow - fast
	slowEMA := talib.Ema(prices, slow)
	fastEMA := talib.Ema(prices[shift:], fast)
	for i := start; i < n; i++ {
		macd[i] = fastEMA[i-shift] - slowEMA[i]
	}
	if n-start < signal {
		return macd, sig, hist
	}

	sigEMA := talib.Ema(macd[start:], signal)
	for i := start + signal - 1; i < n; i++ {
		sig[i] = sigEMA[i-start]
		hist[i] = macd[i] - sig[i]
	}
	return macd, sig, hist
}

func (TalibBackend) BBands(prices []float64, period int, upperDev, lowerDev float64) ([]float64, []float64, []float64) {
	return talib.BBands(prices, period, upperDev, lowerDev, talib.SMA)
}

var _ domsvc.IndicatorBackend = (*TalibBackend)(nil)
