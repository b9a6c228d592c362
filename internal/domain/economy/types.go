package economy

import "time"

type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	BasePrice int64  `json:"base_price"`
	Price     int64  `json:"price"`
	EarnRate  int64  `json:"earn_rate"`
	Count     int64  `json:"count"`
}

type State struct {
	Money    int64  `json:"money"`
	Items    []Item `json:"items"`
	ShopName string `json:"shop_name,omitempty"`
}

type EventType string

const (
	EventMoneyChanged        EventType = "money_changed"
	EventItemPurchased       EventType = "item_purchased"
	EventPurchaseRejected    EventType = "purchase_rejected"
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventOfflineBonusApplied EventType = "offline_bonus_applied"
	EventSaveCompleted       EventType = "save_completed"
	EventShopNamed           EventType = "shop_named"
)

type DomainEvent struct {
	Type       EventType      `json:"type"`
	SessionID  string         `json:"session_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

type CatchUp struct {
	Amount         int64 `json:"amount"`
	ElapsedSeconds int64 `json:"elapsed_seconds"`
}
