package testutil

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/pkg"
)

// RandomAddress generates a plausible account address for tests.
func RandomAddress() string {
	return fmt.Sprintf("sf1%s", pkg.RandString(38))
}

// RandomAmount generates a positive ledger amount between min and max.
func RandomAmount(min, max int64) ledger.Amount {
	return ledger.NewAmount(int64(gofakeit.Number(int(min), int(max))))
}
