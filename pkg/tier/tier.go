package tier

// Tier is a named subscription level granting a periodic credit allotment.
type Tier string

const (
	Free     Tier = "free"
	Basic    Tier = "basic"
	Standard Tier = "standard"
	Premium  Tier = "premium"
)

// ranks defines the total order of the tier ladder.
var ranks = map[Tier]int{
	Free:     0,
	Basic:    1,
	Standard: 2,
	Premium:  3,
}

// All lists every tier in ascending rank order.
func All() []Tier {
	return []Tier{Free, Basic, Standard, Premium}
}

// Rank returns the tier's position on the ladder, or -1 for unknown tiers.
func (t Tier) Rank() int {
	if r, ok := ranks[t]; ok {
		return r
	}
	return -1
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	_, ok := ranks[t]
	return ok
}

// Paid reports whether t is a paid subscription tier.
func (t Tier) Paid() bool {
	return t.Valid() && t != Free
}

// Above reports whether t ranks strictly above other.
func (t Tier) Above(other Tier) bool {
	return t.Rank() > other.Rank()
}

// Product describes a purchasable catalog entry: one subscription product
// per paid tier plus exactly one one-time extra-credits pack.
type Product struct {
	ProductID   string `json:"product_id"`
	Tier        Tier   `json:"tier,omitempty"` // zero for the extra-credits pack
	DisplayName string `json:"display_name,omitempty"`
	Price       string `json:"price"` // decimal amount without currency symbol
	CreditGrant int    `json:"credit_grant"`
	OneTime     bool   `json:"one_time,omitempty"` // true only for the extra-credits pack
}

// IsExtraCredits reports whether p is the one-time extra-credits pack.
func (p Product) IsExtraCredits() bool {
	return p.OneTime
}
