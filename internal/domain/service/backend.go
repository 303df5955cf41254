package service

// IndicatorBackend is the numerical library behind the indicator tools.
// Every output is aligned 1:1 with the input; values inside the warm-up
// window are unspecified and are masked by the caller.
type IndicatorBackend interface {
	SMA(prices []float64, period int) []float64
	EMA(prices []float64, period int) []float64
	RSI(prices []float64, period int) []float64
	MACD(prices []float64, fast, slow, signal int) (macd, signalLine, hist []float64)
	BBands(prices []float64, period int, upperDev, lowerDev float64) (upper, middle, lower []float64)
}
