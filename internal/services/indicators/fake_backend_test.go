package indicators

import "math"

// fakeBackend returns fill for every index and NaN at nanAt (when >= 0).
type fakeBackend struct {
	fill  float64
	nanAt int
	calls int
}

func newFakeBackend(fill float64) *fakeBackend { return &fakeBackend{fill: fill, nanAt: -1} }

func (f *fakeBackend) series(n int) []float64 {
	f.calls++
	out := make([]float64, n)
	for i := range out {
		out[i] = f.fill
	}
	if f.nanAt >= 0 && f.nanAt < n {
		out[f.nanAt] = math.NaN()
	}
	return out
}

func (f *fakeBackend) SMA(prices []float64, _ int) []float64 { return f.series(len(prices)) }
func (f *fakeBackend) EMA(prices []float64, _ int) []float64 { return f.series(len(prices)) }
func (f *fakeBackend) RSI(prices []float64, _ int) []float64 { return f.series(len(prices)) }

func (f *fakeBackend) MACD(prices []float64, _, _, _ int) ([]float64, []float64, []float64) {
	m := f.series(len(prices))
	s := make([]float64, len(prices))
	for i := range s {
		s[i] = f.fill / 2
	}
	// deliberately inconsistent histogram; the calculator recomputes it
	return m, s, make([]float64, len(prices))
}

func (f *fakeBackend) BBands(prices []float64, _ int, up, dn float64) ([]float64, []float64, []float64) {
	mid := f.series(len(prices))
	u := make([]float64, len(mid))
	l := make([]float64, len(mid))
	for i, v := range mid {
		u[i] = v + up
		l[i] = v - dn
	}
	return u, mid, l
}
