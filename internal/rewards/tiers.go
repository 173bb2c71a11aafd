package rewards

// TierRate returns the differential rate for the highest tier whose
// team-count threshold is met. Ties resolve to the highest qualifying tier
// because the scan runs from the top of the table down.
func (e *Engine) TierRate(teamCount uint64) int64 {
	for i := len(e.cfg.Tiers) - 1; i >= 0; i-- {
		if teamCount >= e.cfg.Tiers[i].MinTeamCount {
			return e.cfg.Tiers[i].RateBillionths
		}
	}
	return 0
}

// TierName returns the tier label for a team count, V0 when nothing higher
// qualifies.
func (e *Engine) TierName(teamCount uint64) string {
	for i := len(e.cfg.Tiers) - 1; i >= 0; i-- {
		if teamCount >= e.cfg.Tiers[i].MinTeamCount {
			return e.cfg.Tiers[i].Name
		}
	}
	return ""
}
