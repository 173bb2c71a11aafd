package types

// Enum values for Stake state
type StakeState string

const (
	StakeAccruing      StakeState = "ACCRUING"
	StakeRedeemedEarly StakeState = "REDEEMED_EARLY"
	StakeMatured       StakeState = "MATURED"
)

func (s StakeState) String() string {
	return string(s)
}

// QualifiedStatesForRedeem returns the stake states from which a redemption
// may proceed. Redeeming a stake in any other state fails with NotAccruing.
func QualifiedStatesForRedeem() []StakeState {
	return []StakeState{StakeAccruing}
}

// IsRedeemed reports whether the stake has left the accruing state for good.
func (s StakeState) IsRedeemed() bool {
	return s == StakeRedeemedEarly || s == StakeMatured
}

// Enum values for reward kinds. The four kinds share one capped-payment
// primitive; the kind only selects rate and settlement split.
type RewardKind string

const (
	RewardDirect       RewardKind = "DIRECT"
	RewardLevel        RewardKind = "LEVEL"
	RewardStatic       RewardKind = "STATIC"
	RewardDifferential RewardKind = "DIFFERENTIAL"
)

func (k RewardKind) String() string {
	return string(k)
}
