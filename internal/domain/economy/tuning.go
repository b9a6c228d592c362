package economy

import "time"

const (
	ClickReward = 100

	OfflineThresholdSeconds = 10

	AccrualInterval  = time.Second
	AutosaveInterval = 10 * time.Second
)
