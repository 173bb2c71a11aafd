package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Protocol: DefaultProtocolConfig(),
		Swap:     DefaultSwapConfig(),
		Db: DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "test",
		},
		Queue: QueueConfig{
			Enabled:        true,
			Url:            "amqp://localhost:5672",
			Exchange:       "protocol.events",
			PublishTimeout: 5 * time.Second,
		},
		Api:     ApiConfig{Port: 8080},
		Metrics: MetricsConfig{Port: 2112},
	}
}

func TestConfig_Valid(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestConfig_DisabledQueueNeedsNoBroker(t *testing.T) {
	cfg := validConfig()
	cfg.Queue = QueueConfig{Enabled: false}
	require.NoError(t, cfg.Validate())
}

func TestProtocolConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ProtocolConfig)
	}{
		{
			name:   "zero cap multiple",
			mutate: func(c *ProtocolConfig) { c.CapMultiple = 0 },
		},
		{
			name:   "negative direct rate",
			mutate: func(c *ProtocolConfig) { c.DirectRateBillionths = -1 },
		},
		{
			name: "purchase payouts exceed the purchase",
			mutate: func(c *ProtocolConfig) {
				c.DirectRateBillionths = 900_000_000
				c.LevelRateBillionths = 10_000_000
			},
		},
		{
			name:   "zero liquidity factor",
			mutate: func(c *ProtocolConfig) { c.LiquidityFactorBillionths = 0 },
		},
		{
			name:   "zero flex window",
			mutate: func(c *ProtocolConfig) { c.TicketFlexWindow = 0 },
		},
		{
			name:   "no cycles",
			mutate: func(c *ProtocolConfig) { c.Cycles = nil },
		},
		{
			name: "duplicate cycle",
			mutate: func(c *ProtocolConfig) {
				c.Cycles = append(c.Cycles, CycleConfig{Days: 7, DailyRateBillionths: 1})
			},
		},
		{
			name: "cycle rate over 100 percent",
			mutate: func(c *ProtocolConfig) {
				c.Cycles[0].DailyRateBillionths = RateScale + 1
			},
		},
		{
			name: "tiers out of order",
			mutate: func(c *ProtocolConfig) {
				c.Tiers[3].MinTeamCount = 1
			},
		},
		{
			name: "tier rates not monotone",
			mutate: func(c *ProtocolConfig) {
				c.Tiers[5].RateBillionths = 1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultProtocolConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestProtocolConfig_CycleRate(t *testing.T) {
	cfg := DefaultProtocolConfig()

	rate, ok := cfg.CycleRate(7)
	require.True(t, ok)
	assert.Equal(t, int64(13_333_333), rate)

	rate, ok = cfg.CycleRate(30)
	require.True(t, ok)
	assert.Equal(t, int64(20_000_000), rate)

	_, ok = cfg.CycleRate(14)
	assert.False(t, ok)
}

func TestSwapConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SwapConfig)
	}{
		{
			name:   "buy tax over 100 percent",
			mutate: func(c *SwapConfig) { c.BuyTaxBillionths = RateScale + 1 },
		},
		{
			name:   "sell tax at 100 percent",
			mutate: func(c *SwapConfig) { c.SellTaxBillionths = RateScale },
		},
		{
			name:   "negative burn rate",
			mutate: func(c *SwapConfig) { c.BurnRateBillionths = -1 },
		},
		{
			name:   "zero burn interval",
			mutate: func(c *SwapConfig) { c.BurnInterval = 0 },
		},
		{
			name:   "negative reserve",
			mutate: func(c *SwapConfig) { c.InitialReserveA = -1 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSwapConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
