package savestate

import (
	"idletycoon/internal/domain/achievement"
	"idletycoon/internal/domain/economy"
)

type PricePolicy string

const (
	// PricePersisted restores the saved price verbatim, even when it does not
	// match the count.
	PricePersisted PricePolicy = "persisted"
	// PriceReconcile recomputes every price from its item's count.
	PriceReconcile PricePolicy = "reconcile"
)

// Apply copies a loaded record into a freshly defaulted state and tracker.
// Item and achievement ids missing from the catalog are skipped.
func Apply(state *economy.State, tracker *achievement.Tracker, rec Record, policy PricePolicy) {
	state.Money = rec.Money
	state.ShopName = rec.ShopNameOrEmpty()
	for _, saved := range rec.Items {
		price := saved.Price
		if policy == PriceReconcile {
			if it, ok := state.Item(saved.ID); ok {
				price = economy.PriceAfter(it.BasePrice, saved.Count)
			}
		}
		state.RestoreItem(saved.ID, saved.Count, price)
	}
	tracker.Restore(rec.UnlockedAchievementIDs)
}
