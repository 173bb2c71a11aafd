package model

// PoolSnapshotID is the fixed document ID: the pool journal is a single
// document replaced wholesale on every write.
const PoolSnapshotID = "pool"

// PoolSnapshotDocument journals the AMM pool, the protocol treasury, and
// the operational switches so a restarted instance resumes with the same
// reserves it shut down with.
type PoolSnapshotDocument struct {
	ID                 string `bson:"_id"`
	ReserveA           string `bson:"reserve_a"`
	ReserveB           string `bson:"reserve_b"`
	BurnedB            string `bson:"burned_b"`
	TreasuryB          string `bson:"treasury_b"`
	BuyTaxBillionths   int64  `bson:"buy_tax_billionths"`
	SellTaxBillionths  int64  `bson:"sell_tax_billionths"`
	BurnRateBillionths int64  `bson:"burn_rate_billionths"`
	OwnerWallet        string `bson:"owner_wallet,omitempty"`
	FeeWallet          string `bson:"fee_wallet,omitempty"`
	Paused             bool   `bson:"paused"`
	LastUpdated        int64  `bson:"last_updated"`
}
