package model

type BurnRecordDocument struct {
	ID        string `bson:"_id"`
	Amount    string `bson:"amount"`
	ReserveB  string `bson:"reserve_b"` // reserve after the burn
	Timestamp int64  `bson:"timestamp"`
}
