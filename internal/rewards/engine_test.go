package rewards

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakeflow-labs/stakeflow-engine/internal/config"
	"github.com/stakeflow-labs/stakeflow-engine/internal/ledger"
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

func newTestEngine() *Engine {
	return NewEngine(config.DefaultProtocolConfig())
}

func TestTierRate(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		teamCount uint64
		name      string
		rate      int64
	}{
		{0, "V0", 0},
		{2, "V0", 0},
		{3, "V1", 50_000_000},
		{9, "V1", 50_000_000},
		{10, "V2", 100_000_000},
		{30, "V3", 150_000_000},
		{100, "V4", 200_000_000},
		{29_999, "V8", 400_000_000},
		{30_000, "V9", 450_000_000},
		{1_000_000, "V9", 450_000_000},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("team %d", tt.teamCount), func(t *testing.T) {
			assert.Equal(t, tt.rate, e.TierRate(tt.teamCount))
			assert.Equal(t, tt.name, e.TierName(tt.teamCount))
		})
	}
}

func TestPurchasePayments(t *testing.T) {
	e := newTestEngine()
	s := ledger.NewStore()

	// Chain of 20 ancestors above the buyer: buyer -> u1 -> ... -> u20.
	s.GetOrCreateAccount("buyer")
	child := "buyer"
	for i := 1; i <= 20; i++ {
		addr := fmt.Sprintf("u%d", i)
		s.GetOrCreateAccount(addr)
		s.Account(child).Referrer = addr
		child = addr
	}

	payments := e.PurchasePayments(s, "buyer", ledger.NewAmount(10_000))
	require.Len(t, payments, 16)

	assert.Equal(t, "u1", payments[0].Account)
	assert.Equal(t, types.RewardDirect, payments[0].Kind)
	assert.Equal(t, ledger.NewAmount(2500), payments[0].Amount)

	for i := 1; i < 16; i++ {
		assert.Equal(t, fmt.Sprintf("u%d", i+1), payments[i].Account)
		assert.Equal(t, types.RewardLevel, payments[i].Kind)
		assert.Equal(t, ledger.NewAmount(100), payments[i].Amount)
	}
}

func TestPurchasePayments_NoUpline(t *testing.T) {
	e := newTestEngine()
	s := ledger.NewStore()
	s.GetOrCreateAccount("loner")

	assert.Empty(t, e.PurchasePayments(s, "loner", ledger.NewAmount(10_000)))
}

func TestPayCapped(t *testing.T) {
	e := newTestEngine()

	t.Run("within headroom", func(t *testing.T) {
		acct := testAccount("alice", 3000, 0)
		paid, exited := e.PayCapped(acct, ledger.NewAmount(1000))
		assert.Equal(t, ledger.NewAmount(1000), paid)
		assert.False(t, exited)
		assert.Equal(t, ledger.NewAmount(1000), acct.TotalRevenue)
	})

	t.Run("clipped at cap and exits", func(t *testing.T) {
		acct := testAccount("alice", 3000, 2500)
		paid, exited := e.PayCapped(acct, ledger.NewAmount(1000))
		assert.Equal(t, ledger.NewAmount(500), paid)
		assert.True(t, exited)
		assert.True(t, acct.Exited)
		assert.False(t, acct.Active)
		assert.Equal(t, ledger.NewAmount(3000), acct.TotalRevenue)
	})

	t.Run("exact cap hit exits", func(t *testing.T) {
		acct := testAccount("alice", 3000, 2000)
		paid, exited := e.PayCapped(acct, ledger.NewAmount(1000))
		assert.Equal(t, ledger.NewAmount(1000), paid)
		assert.True(t, exited)
	})

	t.Run("exited account receives nothing", func(t *testing.T) {
		acct := testAccount("alice", 3000, 3000)
		acct.Exited = true
		paid, exited := e.PayCapped(acct, ledger.NewAmount(1000))
		assert.True(t, paid.IsZero())
		assert.False(t, exited)
	})

	t.Run("zero cap account accrues freely", func(t *testing.T) {
		// An account that never invested has no cap to hit; the clip to
		// zero headroom drops the whole payment instead.
		acct := testAccount("alice", 0, 0)
		paid, exited := e.PayCapped(acct, ledger.NewAmount(1000))
		assert.True(t, paid.IsZero())
		assert.False(t, exited)
	})

	t.Run("exiting marks the ticket", func(t *testing.T) {
		acct := testAccount("alice", 3000, 2999)
		acct.Ticket = &ledger.Ticket{ID: "t1", Amount: ledger.NewAmount(1000)}
		_, exited := e.PayCapped(acct, ledger.NewAmount(10))
		assert.True(t, exited)
		assert.True(t, acct.Ticket.Exited)
	})
}

func testAccount(addr string, cap, revenue int64) *ledger.Account {
	acct := ledger.NewStore().GetOrCreateAccount(addr)
	acct.CurrentCap = ledger.NewAmount(cap)
	acct.TotalRevenue = ledger.NewAmount(revenue)
	return acct
}

func TestPendingDifferentials(t *testing.T) {
	e := newTestEngine()
	s := ledger.NewStore()

	require.Nil(t, s.BindReferrer("u3", "u4"))
	require.Nil(t, s.BindReferrer("u2", "u3"))
	require.Nil(t, s.BindReferrer("u1", "u2"))

	// u3 never bought a ticket; u2 and u4 hold tickets of different sizes.
	s.Account("u2").MaxTicketAmount = ledger.NewAmount(500)
	s.Account("u4").MaxTicketAmount = ledger.NewAmount(5000)

	entries := e.PendingDifferentials(s, "u1", ledger.NewAmount(2000))
	require.Len(t, entries, 2)

	assert.Equal(t, "u2", entries[0].Ancestor)
	assert.Equal(t, ledger.NewAmount(500), entries[0].BaseCap)

	assert.Equal(t, "u4", entries[1].Ancestor)
	assert.Equal(t, ledger.NewAmount(2000), entries[1].BaseCap)
}

func TestDifferentialPayments(t *testing.T) {
	e := newTestEngine()
	s := ledger.NewStore()

	// Nearest-first tiers: V1 (5%), V1 again (skipped), V3 (15%).
	require.Nil(t, s.BindReferrer("u3", "u4"))
	require.Nil(t, s.BindReferrer("u2", "u3"))
	require.Nil(t, s.BindReferrer("u1", "u2"))
	s.Account("u2").TeamCount = 3
	s.Account("u3").TeamCount = 5
	s.Account("u4").TeamCount = 50

	stake := &ledger.Stake{
		ID:      "s1",
		Account: "u1",
		Amount:  ledger.NewAmount(10_000),
		State:   types.StakeAccruing,
		PendingDiffs: []ledger.DifferentialEntry{
			{Ancestor: "u2", BaseCap: ledger.NewAmount(10_000)},
			{Ancestor: "u3", BaseCap: ledger.NewAmount(10_000)},
			{Ancestor: "u4", BaseCap: ledger.NewAmount(400)},
		},
	}

	payments := e.DifferentialPayments(s, stake, ledger.NewAmount(1000))
	require.Len(t, payments, 2)

	// u2 at V1: 5% of 1000.
	assert.Equal(t, "u2", payments[0].Account)
	assert.Equal(t, types.RewardDifferential, payments[0].Kind)
	assert.Equal(t, ledger.NewAmount(50), payments[0].Amount)

	// u3 also V1: no margin over u2, skipped. u4 at V3: marginal 10% over
	// the best 5% seen, on a base clipped to its frozen cap of 400.
	assert.Equal(t, "u4", payments[1].Account)
	assert.Equal(t, ledger.NewAmount(40), payments[1].Amount)
}

func TestDifferentialPayments_ZeroStatic(t *testing.T) {
	e := newTestEngine()
	s := ledger.NewStore()
	require.Nil(t, s.BindReferrer("u1", "u2"))
	s.Account("u2").TeamCount = 100

	stake := &ledger.Stake{
		ID:      "s1",
		Account: "u1",
		PendingDiffs: []ledger.DifferentialEntry{
			{Ancestor: "u2", BaseCap: ledger.NewAmount(10_000)},
		},
	}

	assert.Empty(t, e.DifferentialPayments(s, stake, ledger.ZeroAmount()))
}
