package usecase

import (
	"TAMCP/internal/domain/models"
	"TAMCP/internal/services/indicators"
)

// toolArgs is implemented by every argument struct in models.
type toolArgs interface {
	Points() int
}

type tool struct {
	desc    models.ToolDescriptor
	aliases map[string]string // accepted legacy argument names
	newArgs func() toolArgs
	run     func(c *indicators.Calculator, a toolArgs) (interface{}, error)
}

var pricesSchema = map[string]interface{}{
	"type":        "array",
	"items":       map[string]interface{}{"type": "number"},
	"minItems":    1,
	"description": "Prices in chronological order (oldest first).",
}

func intParam(def int, desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "minimum": 1, "default": def, "description": desc}
}

func numParam(def float64, desc string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "exclusiveMinimum": 0, "default": def, "description": desc}
}

func objectSchema(props map[string]interface{}) map[string]interface{} {
	props["prices"] = pricesSchema
	return map[string]interface{}{
		"type":       "object",
		"properties": props,
		"required":   []string{"prices"},
	}
}

// builtinTools lists the tools in the order they are advertised.
func builtinTools() []*tool {
	return []*tool{
		{
			desc: models.ToolDescriptor{
				Name:        "rsi",
				Description: "Relative Strength Index (Wilder). Returns a list aligned with prices; the first `period` entries are null.",
				InputSchema: objectSchema(map[string]interface{}{
					"period": intParam(indicators.DefaultRSIPeriod, "Lookback period."),
				}),
			},
			newArgs: func() toolArgs { return &models.RSIArgs{} },
			run: func(c *indicators.Calculator, a toolArgs) (interface{}, error) {
				args := a.(*models.RSIArgs)
				return c.RSI(args.Prices, args.Period)
			},
		},
		{
			desc: models.ToolDescriptor{
				Name:        "macd",
				Description: "Moving Average Convergence/Divergence. Returns {macd, signal, histogram}, each aligned with prices and null until the signal line has a value.",
				InputSchema: objectSchema(map[string]interface{}{
					"fast":   intParam(indicators.DefaultMACDFast, "Fast EMA period, must be less than slow."),
					"slow":   intParam(indicators.DefaultMACDSlow, "Slow EMA period."),
					"signal": intParam(indicators.DefaultMACDSignal, "Signal EMA period."),
				}),
			},
			aliases: map[string]string{"fastperiod": "fast", "slowperiod": "slow", "signalperiod": "signal"},
			newArgs: func() toolArgs { return &models.MACDArgs{} },
			run: func(c *indicators.Calculator, a toolArgs) (interface{}, error) {
				args := a.(*models.MACDArgs)
				return c.MACD(args.Prices, args.Fast, args.Slow, args.Signal)
			},
		},
		{
			desc: models.ToolDescriptor{
				Name:        "ema",
				Description: "Exponential Moving Average seeded with the SMA of the first window. The first `period-1` entries are null.",
				InputSchema: objectSchema(map[string]interface{}{
					"period": intParam(indicators.DefaultEMAPeriod, "Lookback period."),
				}),
			},
			newArgs: func() toolArgs { return &models.EMAArgs{} },
			run: func(c *indicators.Calculator, a toolArgs) (interface{}, error) {
				args := a.(*models.EMAArgs)
				return c.EMA(args.Prices, args.Period)
			},
		},
		{
			desc: models.ToolDescriptor{
				Name:        "sma",
				Description: "Simple Moving Average. The first `period-1` entries are null.",
				InputSchema: objectSchema(map[string]interface{}{
					"period": intParam(indicators.DefaultSMAPeriod, "Lookback period."),
				}),
			},
			newArgs: func() toolArgs { return &models.SMAArgs{} },
			run: func(c *indicators.Calculator, a toolArgs) (interface{}, error) {
				args := a.(*models.SMAArgs)
				return c.SMA(args.Prices, args.Period)
			},
		},
		{
			desc: models.ToolDescriptor{
				Name:        "bbands",
				Description: "Bollinger Bands over an SMA middle band and population standard deviation. Returns {upper, middle, lower}.",
				InputSchema: objectSchema(map[string]interface{}{
					"period":    intParam(indicators.DefaultBBandsPeriod, "Lookback period."),
					"upper_dev": numParam(indicators.DefaultBBandsDev, "Standard deviations above the middle band."),
					"lower_dev": numParam(indicators.DefaultBBandsDev, "Standard deviations below the middle band."),
				}),
			},
			aliases: map[string]string{"nbdevup": "upper_dev", "nbdevdn": "lower_dev"},
			newArgs: func() toolArgs { return &models.BBandsArgs{} },
			run: func(c *indicators.Calculator, a toolArgs) (interface{}, error) {
				args := a.(*models.BBandsArgs)
				return c.BBands(args.Prices, args.Period, args.UpperDev, args.LowerDev)
			},
		},
	}
}
