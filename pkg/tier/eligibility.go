package tier

import "slices"

// Selection identifies what the pricing screen should pre-select: either a
// subscription tier or the one-time extra-credits offer.
type Selection struct {
	Tier         Tier `json:"tier,omitempty"`
	ExtraCredits bool `json:"extra_credits,omitempty"`
}

// Eligibility is the result of evaluating the tier rules for one user.
type Eligibility struct {
	// HideFreeTier is true when the free tier must not be shown: the user
	// is on a paid tier, or on free with no credits left.
	HideFreeTier bool

	// AvailableTiers lists the catalog tiers ranked strictly above the
	// user's current tier, ascending. New users see every tier.
	AvailableTiers []Tier

	// DefaultSelection is the offer the screen pre-selects.
	DefaultSelection Selection
}

// Evaluate computes tier eligibility from the user's current state and the
// product catalog. currentTier is nil for new users who have never held a
// subscription; creditsRemaining is nil when the balance is unknown.
func Evaluate(currentTier *Tier, creditsRemaining *int, products []Product) Eligibility {
	credits := 0
	if creditsRemaining != nil {
		credits = *creditsRemaining
	}

	e := Eligibility{
		AvailableTiers: availableTiers(currentTier, products),
	}

	if currentTier != nil {
		cur := *currentTier
		e.HideFreeTier = cur.Paid() || (cur == Free && credits <= 0)

		switch cur {
		case Premium:
			// No higher subscription tier exists; offer the one-time pack.
			e.DefaultSelection = Selection{ExtraCredits: true}
		case Standard:
			e.DefaultSelection = Selection{Tier: Premium}
		case Basic:
			e.DefaultSelection = Selection{Tier: Standard}
		case Free:
			if credits <= 0 {
				e.DefaultSelection = Selection{Tier: Basic}
			} else {
				e.DefaultSelection = Selection{Tier: Free}
			}
		}
		return e
	}

	e.DefaultSelection = Selection{Tier: Free}
	return e
}

// availableTiers returns the catalog tiers ranked strictly above the current
// tier, ascending. With no current tier every catalog tier is available,
// including free.
func availableTiers(currentTier *Tier, products []Product) []Tier {
	minRank := -1
	if currentTier != nil {
		minRank = currentTier.Rank()
	}

	seen := make(map[Tier]bool, len(ranks))
	var tiers []Tier
	for _, p := range products {
		if p.OneTime || !p.Tier.Valid() || seen[p.Tier] {
			continue
		}
		if p.Tier.Rank() > minRank {
			seen[p.Tier] = true
			tiers = append(tiers, p.Tier)
		}
	}
	// The free tier has no catalog product; new users still see it.
	if currentTier == nil && !seen[Free] {
		tiers = append(tiers, Free)
	}

	slices.SortFunc(tiers, func(a, b Tier) int { return a.Rank() - b.Rank() })
	return tiers
}

// ReassignSelection moves the active selection to the first eligible tier
// when the selected tier is no longer visible, e.g. free hidden after the
// last credit was spent. An active extra-credits selection is never
// reassigned, and the selection is kept when no alternative exists.
func ReassignSelection(sel Selection, e Eligibility) Selection {
	if sel.ExtraCredits {
		return sel
	}
	if !selectionHidden(sel, e) || len(e.AvailableTiers) == 0 {
		return sel
	}
	return Selection{Tier: e.AvailableTiers[0]}
}

func selectionHidden(sel Selection, e Eligibility) bool {
	if sel.Tier == Free {
		return e.HideFreeTier
	}
	return !slices.Contains(e.AvailableTiers, sel.Tier)
}
