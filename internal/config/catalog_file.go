package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"idletycoon/internal/domain/achievement"
	"idletycoon/internal/domain/catalog"
	"idletycoon/internal/domain/economy"
)

type catalogFile struct {
	Name            string            `yaml:"name"`
	RequireShopName bool              `yaml:"require_shop_name"`
	DefaultShopName string            `yaml:"default_shop_name"`
	Items           []catalogItem     `yaml:"items"`
	Achievements    []achievementSpec `yaml:"achievements"`
}

type catalogItem struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	BasePrice int64  `yaml:"base_price"`
	EarnRate  int64  `yaml:"earn_rate"`
}

type achievementSpec struct {
	ID        string                `yaml:"id"`
	Title     string                `yaml:"title"`
	Condition achievement.Condition `yaml:"condition"`
}

// LoadCatalog reads a YAML catalog and validates it like the built-in presets.
func LoadCatalog(path string) (catalog.Variant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return catalog.Variant{}, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(raw)
}

func ParseCatalog(raw []byte) (catalog.Variant, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return catalog.Variant{}, fmt.Errorf("catalog yaml: %w", err)
	}
	v := catalog.Variant{
		Name:            f.Name,
		RequireShopName: f.RequireShopName,
		DefaultShopName: f.DefaultShopName,
	}
	if v.Name == "" {
		v.Name = "custom"
	}
	for _, it := range f.Items {
		v.Items = append(v.Items, economy.Item{
			ID:        it.ID,
			Name:      it.Name,
			BasePrice: it.BasePrice,
			Price:     it.BasePrice,
			EarnRate:  it.EarnRate,
		})
	}
	for _, a := range f.Achievements {
		v.Achievements = append(v.Achievements, achievement.Definition{ID: a.ID, Title: a.Title, Condition: a.Condition})
	}
	if err := v.Validate(); err != nil {
		return catalog.Variant{}, err
	}
	return v, nil
}
