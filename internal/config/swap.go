package config

import (
	"errors"
	"time"
)

type SwapConfig struct {
	// BuyTaxBillionths is deducted from the gross output of A->B swaps
	// and burned. SellTaxBillionths is deducted from the input of B->A
	// swaps before it enters the curve. Selling the token is cheaper
	// than buying it on purpose.
	BuyTaxBillionths  int64 `mapstructure:"buy-tax-billionths"`
	SellTaxBillionths int64 `mapstructure:"sell-tax-billionths"`

	BurnRateBillionths int64         `mapstructure:"burn-rate-billionths"`
	BurnInterval       time.Duration `mapstructure:"burn-interval"`

	InitialReserveA int64 `mapstructure:"initial-reserve-a"`
	InitialReserveB int64 `mapstructure:"initial-reserve-b"`
}

func (cfg *SwapConfig) Validate() error {
	if cfg.BuyTaxBillionths < 0 || cfg.BuyTaxBillionths > RateScale {
		return errors.New("buy-tax-billionths out of range")
	}
	if cfg.SellTaxBillionths < 0 || cfg.SellTaxBillionths >= RateScale {
		return errors.New("sell-tax-billionths out of range")
	}
	if cfg.BurnRateBillionths < 0 || cfg.BurnRateBillionths > RateScale {
		return errors.New("burn-rate-billionths out of range")
	}
	if cfg.BurnInterval <= 0 {
		return errors.New("burn-interval must be positive")
	}
	if cfg.InitialReserveA < 0 || cfg.InitialReserveB < 0 {
		return errors.New("initial reserves must be non-negative")
	}
	return nil
}

// DefaultSwapConfig carries the reference taxes: 50% buy, 25% sell, and a
// 1% daily reserve burn.
func DefaultSwapConfig() SwapConfig {
	return SwapConfig{
		BuyTaxBillionths:   500_000_000,
		SellTaxBillionths:  250_000_000,
		BurnRateBillionths: 10_000_000,
		BurnInterval:       24 * time.Hour,
	}
}
