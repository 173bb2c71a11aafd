package model

// RewardRecordDocument is the append-only audit trail of settled rewards.
type RewardRecordDocument struct {
	ID      string `bson:"_id"`
	Account string `bson:"account"`
	Source  string `bson:"source,omitempty"` // buyer or staker that triggered the reward
	StakeID string `bson:"stake_id,omitempty"`
	Kind    string `bson:"kind"`
	// Requested is the computed reward, Paid the cap-clipped amount
	// actually settled; the difference was dropped at the cap.
	Requested string `bson:"requested"`
	Paid      string `bson:"paid"`
	PaidA     string `bson:"paid_a"`
	PaidB     string `bson:"paid_b"`
	Timestamp int64  `bson:"timestamp"`
}
