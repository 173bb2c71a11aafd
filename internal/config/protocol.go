package config

import (
	"errors"
	"fmt"
	"time"
)

// RateScale mirrors the ledger fixed-point scale: 1_000_000_000 is 100%.
const RateScale = 1_000_000_000

// CycleConfig is one allowed staking cycle and its static daily rate.
type CycleConfig struct {
	Days                uint32 `mapstructure:"days"`
	DailyRateBillionths int64  `mapstructure:"daily-rate-billionths"`
}

// TierConfig is one differential tier. Tiers are looked up by descending
// team-count threshold; ties resolve to the highest qualifying tier.
type TierConfig struct {
	Name           string `mapstructure:"name"`
	MinTeamCount   uint64 `mapstructure:"min-team-count"`
	RateBillionths int64  `mapstructure:"rate-billionths"`
}

type ProtocolConfig struct {
	CapMultiple               int64         `mapstructure:"cap-multiple"`
	DirectRateBillionths      int64         `mapstructure:"direct-rate-billionths"`
	LevelRateBillionths       int64         `mapstructure:"level-rate-billionths"`
	LiquidityFactorBillionths int64         `mapstructure:"liquidity-factor-billionths"`
	RedeemFeeRateBillionths   int64         `mapstructure:"redeem-fee-rate-billionths"`
	TicketFlexWindow          time.Duration `mapstructure:"ticket-flex-window"`
	Cycles                    []CycleConfig `mapstructure:"cycles"`
	Tiers                     []TierConfig  `mapstructure:"tiers"`
}

func (cfg *ProtocolConfig) Validate() error {
	if cfg.CapMultiple <= 0 {
		return errors.New("cap-multiple must be positive")
	}
	if cfg.DirectRateBillionths < 0 || cfg.LevelRateBillionths < 0 || cfg.RedeemFeeRateBillionths < 0 {
		return errors.New("reward and fee rates must be non-negative")
	}
	// Per-purchase flat payouts may never exceed the purchase itself.
	if cfg.DirectRateBillionths+15*cfg.LevelRateBillionths > RateScale {
		return errors.New("direct plus level rates exceed 100%")
	}
	if cfg.LiquidityFactorBillionths <= 0 {
		return errors.New("liquidity-factor-billionths must be positive")
	}
	if cfg.TicketFlexWindow <= 0 {
		return errors.New("ticket-flex-window must be positive")
	}
	if len(cfg.Cycles) == 0 {
		return errors.New("at least one staking cycle is required")
	}
	seen := make(map[uint32]bool)
	for _, c := range cfg.Cycles {
		if c.Days == 0 {
			return errors.New("cycle days must be positive")
		}
		if c.DailyRateBillionths <= 0 || c.DailyRateBillionths > RateScale {
			return fmt.Errorf("daily rate for %d-day cycle out of range", c.Days)
		}
		if seen[c.Days] {
			return fmt.Errorf("duplicate %d-day cycle", c.Days)
		}
		seen[c.Days] = true
	}
	var prevThreshold uint64
	var prevRate int64
	for i, t := range cfg.Tiers {
		if t.RateBillionths < 0 || t.RateBillionths > RateScale {
			return fmt.Errorf("tier %s rate out of range", t.Name)
		}
		if i > 0 && (t.MinTeamCount <= prevThreshold || t.RateBillionths < prevRate) {
			return fmt.Errorf("tiers must be ascending by team count and rate, violated at %s", t.Name)
		}
		prevThreshold = t.MinTeamCount
		prevRate = t.RateBillionths
	}
	return nil
}

// CycleRate returns the static daily rate for the given cycle length.
func (cfg *ProtocolConfig) CycleRate(days uint32) (int64, bool) {
	for _, c := range cfg.Cycles {
		if c.Days == days {
			return c.DailyRateBillionths, true
		}
	}
	return 0, false
}

// DefaultProtocolConfig carries the reference distribution: direct 25%,
// fifteen 1% levels, 1.5x liquidity adequacy, 3x revenue cap, V0-V9
// differential tiers from 0% to 45%.
func DefaultProtocolConfig() ProtocolConfig {
	return ProtocolConfig{
		CapMultiple:               3,
		DirectRateBillionths:      250_000_000,
		LevelRateBillionths:       10_000_000,
		LiquidityFactorBillionths: 1_500_000_000,
		RedeemFeeRateBillionths:   10_000_000,
		TicketFlexWindow:          72 * time.Hour,
		Cycles: []CycleConfig{
			{Days: 7, DailyRateBillionths: 13_333_333},
			{Days: 15, DailyRateBillionths: 16_666_667},
			{Days: 30, DailyRateBillionths: 20_000_000},
		},
		Tiers: []TierConfig{
			{Name: "V0", MinTeamCount: 0, RateBillionths: 0},
			{Name: "V1", MinTeamCount: 3, RateBillionths: 50_000_000},
			{Name: "V2", MinTeamCount: 10, RateBillionths: 100_000_000},
			{Name: "V3", MinTeamCount: 30, RateBillionths: 150_000_000},
			{Name: "V4", MinTeamCount: 100, RateBillionths: 200_000_000},
			{Name: "V5", MinTeamCount: 300, RateBillionths: 250_000_000},
			{Name: "V6", MinTeamCount: 1_000, RateBillionths: 300_000_000},
			{Name: "V7", MinTeamCount: 3_000, RateBillionths: 350_000_000},
			{Name: "V8", MinTeamCount: 10_000, RateBillionths: 400_000_000},
			{Name: "V9", MinTeamCount: 30_000, RateBillionths: 450_000_000},
		},
	}
}
