package ledger

import (
	"sort"
)

// Store is the in-memory ledger: accounts, stakes, and the referral
// parent-pointer map (held on the accounts themselves). It is the explicit
// mutable state passed into every operation handler; it carries no locking
// of its own because the protocol service serializes all mutating
// operations behind a single mutex.
type Store struct {
	accounts        map[string]*Account
	stakes          map[string]*Stake
	stakesByAccount map[string][]string
}

func NewStore() *Store {
	return &Store{
		accounts:        make(map[string]*Account),
		stakes:          make(map[string]*Stake),
		stakesByAccount: make(map[string][]string),
	}
}

// Account returns the record for addr, or nil if it never interacted.
func (s *Store) Account(addr string) *Account {
	return s.accounts[addr]
}

func (s *Store) GetOrCreateAccount(addr string) *Account {
	if acct, ok := s.accounts[addr]; ok {
		return acct
	}
	acct := newAccount(addr)
	s.accounts[addr] = acct
	return acct
}

func (s *Store) PutStake(stake *Stake) {
	if _, ok := s.stakes[stake.ID]; !ok {
		s.stakesByAccount[stake.Account] = append(s.stakesByAccount[stake.Account], stake.ID)
	}
	s.stakes[stake.ID] = stake
}

func (s *Store) Stake(id string) *Stake {
	return s.stakes[id]
}

// StakesFor returns the stakes of addr in creation order.
func (s *Store) StakesFor(addr string) []*Stake {
	ids := s.stakesByAccount[addr]
	stakes := make([]*Stake, 0, len(ids))
	for _, id := range ids {
		stakes = append(stakes, s.stakes[id])
	}
	return stakes
}

// Addresses returns every known account address, sorted for deterministic
// iteration (snapshot persistence, restore).
func (s *Store) Addresses() []string {
	addrs := make([]string, 0, len(s.accounts))
	for addr := range s.accounts {
		addrs = append(addrs, addr)
	}
	sort.Strings(addrs)
	return addrs
}

func (s *Store) AccountCount() int {
	return len(s.accounts)
}
