package catalog

import (
	"testing"

	"idletycoon/internal/domain/achievement"
	"idletycoon/internal/domain/economy"

	"github.com/stretchr/testify/require"
)

func TestPresetsAreValid(t *testing.T) {
	for _, name := range PresetNames() {
		v, err := Preset(name)
		require.NoError(t, err, name)
		require.NoError(t, v.Validate(), name)
	}
}

func TestPresetReturnsCopy(t *testing.T) {
	a, err := Preset(VariantStand)
	require.NoError(t, err)
	a.Items[0].BasePrice = 1

	b, err := Preset(VariantStand)
	require.NoError(t, err)
	require.Equal(t, "cart", b.Items[0].ID)
	require.Equal(t, int64(500), b.Items[0].BasePrice)
}

func TestBurgerRequiresShopName(t *testing.T) {
	v, err := Preset(VariantBurger)
	require.NoError(t, err)
	require.True(t, v.RequireShopName)
	require.NotEmpty(t, v.DefaultShopName)

	s, err := Preset(VariantStand)
	require.NoError(t, err)
	require.False(t, s.RequireShopName)
}

func TestUnknownPreset(t *testing.T) {
	_, err := Preset("space")
	require.ErrorIs(t, err, ErrUnknownVariant)
	require.Contains(t, err.Error(), "known: burger, stand")
}

func TestValidateRejectsBrokenCatalogs(t *testing.T) {
	cases := map[string]Variant{
		"empty": {},
		"duplicate": {Items: []economy.Item{
			{ID: "a", BasePrice: 1}, {ID: "a", BasePrice: 2},
		}},
		"zero price": {Items: []economy.Item{{ID: "a"}}},
		"shop name without default": {
			Items:           []economy.Item{{ID: "a", BasePrice: 1}},
			RequireShopName: true,
			DefaultShopName: "  ",
		},
		"dangling achievement": {
			Items:        []economy.Item{{ID: "a", BasePrice: 1}},
			Achievements: []achievement.Definition{{ID: "x", Condition: achievement.OwnsItem("b", 1)}},
		},
	}
	for name, v := range cases {
		require.ErrorIs(t, v.Validate(), ErrInvalidCatalog, name)
	}
}
