package services

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Tier is one closed party-size band of a product's price list.
// A nil Max means the band has no upper bound.
type Tier struct {
	Min   int             `json:"min"`
	Max   *int            `json:"max"`
	Price decimal.Decimal `json:"price"`
}

// Contains reports whether a party of n persons falls in the band
func (t Tier) Contains(n int) bool {
	if n < t.Min {
		return false
	}
	return t.Max == nil || n <= *t.Max
}

func band(min, max int, price string) Tier {
	return Tier{Min: min, Max: &max, Price: decimal.RequireFromString(price)}
}

func openBand(min int, price string) Tier {
	return Tier{Min: min, Price: decimal.RequireFromString(price)}
}

// productTiers is never mutated after init. A nil entry marks an experience
// that can only be booked through a specific provider.
var productTiers = map[string][]Tier{
	"Jeep Safari": {
		band(1, 3, "38"),
		band(4, 5, "30"),
		band(6, 10, "20"),
		band(11, 20, "15"),
	},
	"Catamaran Boat Ride": {
		band(1, 1, "9.8"),
		openBand(2, "7"),
	},
	"Village Cooking Experience": {
		band(1, 5, "15"),
		band(6, 10, "13"),
		band(11, 20, "11"),
		band(21, 50, "10"),
	},
	"Bullock Cart Ride": {
		band(1, 5, "9.9"),
		band(6, 20, "5"),
		band(21, 50, "4"),
	},
	"Village Tour": {
		band(1, 5, "19.9"),
		band(6, 10, "18.2"),
		band(11, 20, "17.3"),
		band(21, 30, "16.3"),
		band(31, 50, "15"),
	},
	"Traditional Village Lunch": {
		openBand(1, "15"),
	},
	"Sundowners Cocktail": nil,
	"High Tea":            nil,
	"Tuk Tuk Adventures":  nil,
}

// priceScale is the number of decimal places stored for prices
const priceScale = 2

// ProductTiers returns a copy of the tier list for a product. The boolean is
// false when the product is unknown or not bookable as a generic product.
func ProductTiers(productType string) ([]Tier, bool) {
	tiers, ok := productTiers[productType]
	if !ok || tiers == nil {
		return nil, false
	}
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out, true
}

// ProductPricing is one row of the public price list
type ProductPricing struct {
	ProductType string `json:"productType"`
	Bookable    bool   `json:"bookable"`
	Tiers       []Tier `json:"tiers"`
}

// PriceList returns every product in name order
func PriceList() []ProductPricing {
	names := make([]string, 0, len(productTiers))
	for name := range productTiers {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]ProductPricing, 0, len(names))
	for _, name := range names {
		tiers, ok := ProductTiers(name)
		list = append(list, ProductPricing{ProductType: name, Bookable: ok, Tiers: tiers})
	}
	return list
}

// SelectTier returns the first tier containing a party of n persons
func SelectTier(tiers []Tier, n int) (Tier, bool) {
	for _, t := range tiers {
		if t.Contains(n) {
			return t, true
		}
	}
	return Tier{}, false
}

// ProductPrice prices a generic product booking. Children pay the adult rate
// on this path.
func ProductPrice(productType string, adults, children int) (total, unit decimal.Decimal, err error) {
	tiers, ok := ProductTiers(productType)
	if !ok {
		return decimal.Zero, decimal.Zero, Validation("invalid product type or no pricing available")
	}
	persons := adults + children
	tier, ok := SelectTier(tiers, persons)
	if !ok {
		return decimal.Zero, decimal.Zero, Validation("no pricing tier available for %d persons", persons)
	}
	total = tier.Price.Mul(decimal.NewFromInt(int64(persons))).Round(priceScale)
	return total, tier.Price, nil
}

var childRate = decimal.RequireFromString("0.5")

// ProviderPrice prices a booking against a provider's per-person rate.
// Children are billed at half the adult rate.
func ProviderPrice(rate float64, adults, children int) decimal.Decimal {
	units := decimal.NewFromInt(int64(adults)).Add(decimal.NewFromInt(int64(children)).Mul(childRate))
	return decimal.NewFromFloat(rate).Mul(units).Round(priceScale)
}
