package ledger

import (
	"github.com/stakeflow-labs/stakeflow-engine/internal/types"
)

const (
	// LevelRewardDepth bounds the upline walk for level and differential
	// rewards: ancestors 2..LevelRewardDepth+1 receive level rewards.
	LevelRewardDepth = 15
	// CycleDetectDepth bounds cycle detection and team-count propagation.
	CycleDetectDepth = 30
)

// BindReferrer records the one-time referral edge for user. This is the
// sole place team statistics are updated: having a referrer alone counts
// as a team member, independent of any ticket purchase.
func (s *Store) BindReferrer(user, referrer string) *types.Error {
	if user == "" || referrer == "" || user == referrer {
		return types.NewValidationError(types.InvalidReferrer, "referrer %q is not valid for user %q", referrer, user)
	}

	acct := s.GetOrCreateAccount(user)
	if acct.HasReferrer() {
		return types.NewPreconditionError(types.AlreadyBound, "account %s already has a referrer", user)
	}

	// Reject if the referrer's existing chain already contains user.
	// Iterative walk, never recursion, so cost stays bounded.
	ancestor := referrer
	for depth := 0; ancestor != "" && depth < CycleDetectDepth; depth++ {
		if ancestor == user {
			return types.NewPreconditionError(types.CyclicReferral, "binding %s -> %s would close a referral cycle", user, referrer)
		}
		parent := s.Account(ancestor)
		if parent == nil {
			break
		}
		ancestor = parent.Referrer
	}

	s.GetOrCreateAccount(referrer)
	acct.Referrer = referrer

	for _, addr := range s.UplineChain(user, CycleDetectDepth) {
		s.accounts[addr].TeamCount++
	}
	return nil
}

// UplineChain returns up to maxDepth ancestor addresses of user, ordered
// nearest-first. The walk terminates at the root or the depth limit.
func (s *Store) UplineChain(user string, maxDepth int) []string {
	chain := make([]string, 0, maxDepth)
	acct := s.Account(user)
	if acct == nil {
		return chain
	}
	ancestor := acct.Referrer
	for depth := 0; ancestor != "" && depth < maxDepth; depth++ {
		parent := s.Account(ancestor)
		if parent == nil {
			break
		}
		chain = append(chain, ancestor)
		ancestor = parent.Referrer
	}
	return chain
}
