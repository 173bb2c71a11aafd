package model

// PendingDifferentialDocument is one frozen differential obligation of a
// stake, released at redemption.
type PendingDifferentialDocument struct {
	Ancestor string `bson:"ancestor"`
	BaseCap  string `bson:"base_cap"`
}

type StakeSnapshotDocument struct {
	StakeID             string                        `bson:"_id"`
	Account             string                        `bson:"account"`
	Amount              string                        `bson:"amount"`
	StartTime           int64                         `bson:"start_time"`
	CycleDays           uint32                        `bson:"cycle_days"`
	DailyRateBillionths int64                         `bson:"daily_rate_billionths"`
	State               string                        `bson:"state"`
	Paid                string                        `bson:"paid"`
	PendingDiffs        []PendingDifferentialDocument `bson:"pending_diffs,omitempty"`
	LastUpdated         int64                         `bson:"last_updated"`
}
