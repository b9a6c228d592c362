package game

import (
	"idletycoon/internal/domain/achievement"
	"idletycoon/internal/domain/economy"
)

type StartResult struct {
	Loaded        bool            `json:"loaded"`
	SchemaVersion int             `json:"schema_version,omitempty"`
	CatchUp       economy.CatchUp `json:"catch_up"`
}

type ClickResult struct {
	Earned int64 `json:"earned"`
	Money  int64 `json:"money"`
}

type PurchaseResult struct {
	Item  economy.Item `json:"item"`
	Money int64        `json:"money"`
}

type ItemView struct {
	economy.Item
	Affordable bool `json:"affordable"`
}

type Snapshot struct {
	SessionID     string               `json:"session_id"`
	Variant       string               `json:"variant"`
	Money         int64                `json:"money"`
	ShopName      string               `json:"shop_name"`
	NeedsShopName bool                 `json:"needs_shop_name"`
	IncomeRate    int64                `json:"income_rate"`
	Items         []ItemView           `json:"items"`
	Achievements  []achievement.Status `json:"achievements"`
}
