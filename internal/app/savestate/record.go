package savestate

import (
	"time"

	"idletycoon/internal/domain/economy"
)

// Record is the persisted save layout. Field names match the browser save
// format so records written by older clients load unchanged.
type Record struct {
	ShopName               *string      `json:"shopName,omitempty"`
	Money                  int64        `json:"money"`
	Items                  []ItemRecord `json:"items"`
	UnlockedAchievementIDs []string     `json:"unlockedAchievementIds,omitempty"`
	LastSaveTime           int64        `json:"lastSaveTime"`
}

type ItemRecord struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
	Price int64  `json:"price"`
}

func NewRecord(state economy.State, unlockedIDs []string, now time.Time) Record {
	name := state.ShopName
	items := make([]ItemRecord, 0, len(state.Items))
	for _, it := range state.Items {
		items = append(items, ItemRecord{ID: it.ID, Count: it.Count, Price: it.Price})
	}
	return Record{
		ShopName:               &name,
		Money:                  state.Money,
		Items:                  items,
		UnlockedAchievementIDs: append([]string{}, unlockedIDs...),
		LastSaveTime:           now.UnixMilli(),
	}
}

func (r Record) ShopNameOrEmpty() string {
	if r.ShopName == nil {
		return ""
	}
	return *r.ShopName
}
