package types

import "time"

type EventTypes string

func (e EventTypes) String() string {
	return string(e)
}

const (
	EventReferrerBound   EventTypes = "stakeflow.protocol.v1.EventReferrerBound"
	EventTicketPurchased EventTypes = "stakeflow.protocol.v1.EventTicketPurchased"
	EventTicketExpired   EventTypes = "stakeflow.protocol.v1.EventTicketExpired"
	EventStakeCreated    EventTypes = "stakeflow.protocol.v1.EventStakeCreated"
	EventStakeRedeemed   EventTypes = "stakeflow.protocol.v1.EventStakeRedeemed"
	EventRewardPaid      EventTypes = "stakeflow.protocol.v1.EventRewardPaid"
	EventAccountExited   EventTypes = "stakeflow.protocol.v1.EventAccountExited"
	EventSwapExecuted    EventTypes = "stakeflow.protocol.v1.EventSwapExecuted"
	EventReserveBurned   EventTypes = "stakeflow.protocol.v1.EventReserveBurned"
)

// ProtocolEvent is the message published to the queue for every state
// transition. Amounts are decimal strings to keep big-int precision on
// the wire.
type ProtocolEvent struct {
	Type      EventTypes `json:"type"`
	Account   string     `json:"account,omitempty"`
	Referrer  string     `json:"referrer,omitempty"`
	StakeID   string     `json:"stake_id,omitempty"`
	TicketID  string     `json:"ticket_id,omitempty"`
	Kind      string     `json:"kind,omitempty"`
	Amount    string     `json:"amount,omitempty"`
	AmountB   string     `json:"amount_b,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}
