// Package tier defines the subscription tier ladder and the eligibility
// rules that decide which tiers a user may be offered.
//
// Tiers are totally ordered (free < basic < standard < premium). A user may
// only move strictly up the ladder; free users with credits left keep the
// free tier visible, and premium users are offered a one-time extra-credits
// pack instead of another subscription.
//
// Eligibility evaluation is a pure function of the user's current tier,
// their remaining credits, and the product catalog:
//
//	elig := tier.Evaluate(&current, &credits, products)
//	// elig.AvailableTiers, elig.HideFreeTier, elig.DefaultSelection
//
// The package has no I/O and no dependencies on the purchase flow, so the
// rules can be exercised exhaustively in tests.
package tier
