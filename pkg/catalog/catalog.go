package catalog

import (
	"github.com/voxlabs/billingkit/pkg/tier"
)

// Catalog is the set of purchasable products currently on offer.
type Catalog struct {
	Products []tier.Product

	// Fallback is true when the static catalog substituted the live one.
	Fallback bool
}

// ProductForTier returns the subscription product for a paid tier.
func (c Catalog) ProductForTier(t tier.Tier) (tier.Product, bool) {
	for _, p := range c.Products {
		if !p.OneTime && p.Tier == t {
			return p, true
		}
	}
	return tier.Product{}, false
}

// ExtraCredits returns the one-time extra-credits pack.
func (c Catalog) ExtraCredits() (tier.Product, bool) {
	for _, p := range c.Products {
		if p.OneTime {
			return p, true
		}
	}
	return tier.Product{}, false
}

// ProductIDs returns every product identifier in catalog order.
func (c Catalog) ProductIDs() []string {
	ids := make([]string, 0, len(c.Products))
	for _, p := range c.Products {
		ids = append(ids, p.ProductID)
	}
	return ids
}

// Tiers returns the paid tiers covered by the catalog, in catalog order.
func (c Catalog) Tiers() []tier.Tier {
	tiers := make([]tier.Tier, 0, len(c.Products))
	for _, p := range c.Products {
		if !p.OneTime && p.Tier.Valid() {
			tiers = append(tiers, p.Tier)
		}
	}
	return tiers
}
