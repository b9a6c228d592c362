package savestate

import "fmt"

// SchemaVersion describes one shipped save layout. The table is ordered
// newest first; Load probes it in that order and Save writes only the head.
type SchemaVersion struct {
	Version         int
	HasShopName     bool
	HasAchievements bool
}

var DefaultVersions = []SchemaVersion{
	{Version: 4, HasShopName: true, HasAchievements: true},
	{Version: 3, HasAchievements: true},
	{Version: 2},
}

const DefaultKeyPrefix = "tycoon_save"

func (v SchemaVersion) Key(prefix string) string {
	return fmt.Sprintf("%s_v%d", prefix, v.Version)
}

// normalize drops fields the version never carried so hand-edited or
// partially migrated records fall back to the documented defaults.
func (v SchemaVersion) normalize(rec *Record) {
	if !v.HasShopName {
		rec.ShopName = nil
	}
	if !v.HasAchievements {
		rec.UnlockedAchievementIDs = nil
	}
}
