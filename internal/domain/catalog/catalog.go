package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"idletycoon/internal/domain/achievement"
	"idletycoon/internal/domain/economy"
)

var (
	ErrUnknownVariant = errors.New("unknown catalog variant")
	ErrInvalidCatalog = errors.New("invalid catalog")
)

// Variant bundles the purchasable items and achievements of one game flavour.
type Variant struct {
	Name            string
	Items           []economy.Item
	Achievements    []achievement.Definition
	RequireShopName bool
	DefaultShopName string
}

const (
	VariantBurger = "burger"
	VariantStand  = "stand"
)

var presets = map[string]Variant{
	VariantBurger: {
		Name: VariantBurger,
		Items: []economy.Item{
			{ID: "fryer", Name: "High-performance fryer", BasePrice: 500, EarnRate: 10},
			{ID: "drink", Name: "Drink bar", BasePrice: 2500, EarnRate: 40},
			{ID: "part_time", Name: "Part-time staff", BasePrice: 10000, EarnRate: 150},
			{ID: "delivery", Name: "Delivery bike", BasePrice: 50000, EarnRate: 800},
			{ID: "branch", Name: "Second branch", BasePrice: 200000, EarnRate: 3500},
			{ID: "franchise", Name: "Franchise", BasePrice: 1000000, EarnRate: 15000},
		},
		Achievements: []achievement.Definition{
			{ID: "first_fry", Title: "Now serving fries (bought a fryer)", Condition: achievement.OwnsItem("fryer", 1)},
			{ID: "manager", Title: "Full-fledged manager (100,000 on hand)", Condition: achievement.MoneyAtLeast(100000)},
			{ID: "chain_store", Title: "Chain store (opened a second branch)", Condition: achievement.OwnsItem("branch", 1)},
		},
		RequireShopName: true,
		DefaultShopName: "Nameless Burger Shop",
	},
	VariantStand: {
		Name: VariantStand,
		Items: []economy.Item{
			{ID: "cart", Name: "Food cart", BasePrice: 500, EarnRate: 10},
			{ID: "stall", Name: "Market stall", BasePrice: 2500, EarnRate: 40},
			{ID: "staff", Name: "Hire staff", BasePrice: 10000, EarnRate: 150},
			{ID: "truck", Name: "Food truck", BasePrice: 50000, EarnRate: 800},
			{ID: "store", Name: "Storefront", BasePrice: 200000, EarnRate: 3500},
		},
		Achievements: []achievement.Definition{
			{ID: "first_cart", Title: "Open for business (bought a cart)", Condition: achievement.OwnsItem("cart", 1)},
			{ID: "tycoon", Title: "Tycoon (100,000 on hand)", Condition: achievement.MoneyAtLeast(100000)},
		},
	},
}

// Preset returns a copy of a built-in variant.
func Preset(name string) (Variant, error) {
	v, ok := presets[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownVariant, name, strings.Join(PresetNames(), ", "))
	}
	v.Items = append([]economy.Item(nil), v.Items...)
	v.Achievements = append([]achievement.Definition(nil), v.Achievements...)
	return v, nil
}

func PresetNames() []string {
	out := make([]string, 0, len(presets))
	for name := range presets {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Validate checks id uniqueness, positive base prices and that every
// achievement refers to a catalog item when it needs one. A variant that
// requires a shop name must also carry a non-blank default for it.
func (v Variant) Validate() error {
	if len(v.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidCatalog)
	}
	if v.RequireShopName && strings.TrimSpace(v.DefaultShopName) == "" {
		return fmt.Errorf("%w: shop name required but no default shop name", ErrInvalidCatalog)
	}
	seen := make(map[string]bool, len(v.Items))
	for _, it := range v.Items {
		if it.ID == "" {
			return fmt.Errorf("%w: item with empty id", ErrInvalidCatalog)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: duplicate item id %q", ErrInvalidCatalog, it.ID)
		}
		if it.BasePrice <= 0 || it.EarnRate < 0 {
			return fmt.Errorf("%w: item %q has non-positive price or negative earn rate", ErrInvalidCatalog, it.ID)
		}
		seen[it.ID] = true
	}
	ach := make(map[string]bool, len(v.Achievements))
	for _, d := range v.Achievements {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
		}
		if ach[d.ID] {
			return fmt.Errorf("%w: duplicate achievement id %q", ErrInvalidCatalog, d.ID)
		}
		ach[d.ID] = true
		if d.Condition.Kind == achievement.ConditionOwnsItem && !seen[d.Condition.ItemID] {
			return fmt.Errorf("%w: achievement %q refers to unknown item %q", ErrInvalidCatalog, d.ID, d.Condition.ItemID)
		}
	}
	return nil
}
