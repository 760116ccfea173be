package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/voxlabs/billingkit/pkg/tier"
)

// The static catalog ships with the binary so pricing failures never block
// the purchase screen. Product identifiers and tier coverage must stay in
// lockstep with the live pricing endpoint.
//
//go:embed fallback.yaml
var fallbackYAML []byte

var fallbackOnce = sync.OnceValue(parseFallback)

type fallbackFile struct {
	Products []struct {
		ProductID string `yaml:"product_id"`
		Tier      string `yaml:"tier"`
		Name      string `yaml:"name"`
		Price     string `yaml:"price"`
		Credits   int    `yaml:"credits"`
		OneTime   bool   `yaml:"one_time"`
	} `yaml:"products"`
}

// FallbackCatalog returns the embedded static catalog. Panics on a
// malformed embed, which is a build defect rather than a runtime condition.
func FallbackCatalog() Catalog {
	return fallbackOnce()
}

func parseFallback() Catalog {
	var file fallbackFile
	if err := yaml.Unmarshal(fallbackYAML, &file); err != nil {
		panic(fmt.Sprintf("catalog: malformed embedded fallback catalog: %v", err))
	}
	if len(file.Products) == 0 {
		panic("catalog: embedded fallback catalog is empty")
	}

	products := make([]tier.Product, 0, len(file.Products))
	for _, p := range file.Products {
		products = append(products, tier.Product{
			ProductID:   p.ProductID,
			Tier:        tier.Tier(p.Tier),
			DisplayName: p.Name,
			Price:       p.Price,
			CreditGrant: p.Credits,
			OneTime:     p.OneTime,
		})
	}

	return Catalog{Products: products, Fallback: true}
}
