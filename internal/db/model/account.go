package model

// AccountSnapshotDocument is the persisted view of one ledger account,
// replaced wholesale after every operation that touches the account.
// Amounts are decimal strings to keep big-int precision.
type AccountSnapshotDocument struct {
	Address               string `bson:"_id"`
	Referrer              string `bson:"referrer,omitempty"`
	ActiveDirects         uint64 `bson:"active_directs"`
	TeamCount             uint64 `bson:"team_count"`
	TotalRevenue          string `bson:"total_revenue"`
	CurrentCap            string `bson:"current_cap"`
	Exited                bool   `bson:"exited"`
	RefundFeeAmount       string `bson:"refund_fee_amount"`
	TeamTotalVolume       string `bson:"team_total_volume"`
	TeamTotalCap          string `bson:"team_total_cap"`
	MaxTicketAmount       string `bson:"max_ticket_amount"`
	MaxSingleTicketAmount string `bson:"max_single_ticket_amount"`
	StakedLiquidity       string `bson:"staked_liquidity"`
	BalanceA              string `bson:"balance_a"`
	BalanceB              string `bson:"balance_b"`
	Active                bool   `bson:"active"`

	TicketID           string `bson:"ticket_id,omitempty"`
	TicketAmount       string `bson:"ticket_amount,omitempty"`
	TicketPurchaseTime int64  `bson:"ticket_purchase_time,omitempty"`
	TicketStaked       bool   `bson:"ticket_staked,omitempty"`
	TicketExited       bool   `bson:"ticket_exited,omitempty"`

	LastUpdated int64 `bson:"last_updated"`
}
