package ports

type GameMetrics interface {
	RecordClick()
	RecordPurchase(itemID string)
	RecordPurchaseRejected()
	RecordTick(earned int64)
	RecordSave(err error)
	RecordUnlock(achievementID string)
}
