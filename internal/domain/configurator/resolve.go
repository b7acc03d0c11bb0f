package configurator

import (
	"strings"

	"github.com/example/hamper-shop/internal/catalog"
)

// CustomSentinel opens the configurator with no occasion chosen.
const CustomSentinel = "custom"

// ResolveOccasion turns an externally supplied occasion into a record. It
// matches by id, case-insensitive name or slugified name, and otherwise
// synthesizes one. ok is false only for an empty identifier or the
// "custom" sentinel.
func ResolveOccasion(cat *catalog.Catalog, identifier string) (catalog.Occasion, bool) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || strings.EqualFold(identifier, CustomSentinel) {
		return catalog.Occasion{}, false
	}

	slug := catalog.Slugify(identifier)
	if cat != nil {
		for _, o := range cat.Occasions {
			if o.ID == identifier || strings.EqualFold(o.Name, identifier) || o.ID == slug {
				return o, true
			}
		}
	}

	return catalog.Occasion{
		ID:          slug,
		Name:        catalog.Capitalize(identifier),
		Description: "Custom hamper for " + identifier,
	}, true
}
