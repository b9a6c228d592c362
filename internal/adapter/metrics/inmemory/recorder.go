package inmemory

import (
	"sync"

	"idletycoon/internal/app/ports"
)

type Snapshot struct {
	Clicks            uint64            `json:"clicks"`
	PurchaseTotal     uint64            `json:"purchase_total"`
	PurchaseAccepted  uint64            `json:"purchase_accepted"`
	PurchaseRejected  uint64            `json:"purchase_rejected"`
	PurchasesByItem   map[string]uint64 `json:"purchases_by_item"`
	Ticks             uint64            `json:"ticks"`
	PassiveEarned     int64             `json:"passive_earned"`
	SaveSuccess       uint64            `json:"save_success"`
	SaveFailure       uint64            `json:"save_failure"`
	AchievementUnlock map[string]uint64 `json:"achievement_unlock"`
	WSClients         int               `json:"ws_clients"`
	WSDropped         uint64            `json:"ws_dropped"`
}

// StreamStats is read at snapshot time from the event stream.
type StreamStats interface {
	ClientCount() int
	Dropped() uint64
}

type Recorder struct {
	mu       sync.Mutex
	clicks   uint64
	accepted uint64
	rejected uint64
	byItem   map[string]uint64
	ticks    uint64
	earned   int64
	saveOK   uint64
	saveFail uint64
	byUnlock map[string]uint64
	stream   StreamStats
}

func NewRecorder() *Recorder {
	return &Recorder{
		byItem:   map[string]uint64{},
		byUnlock: map[string]uint64{},
	}
}

func (r *Recorder) ObserveStream(src StreamStats) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stream = src
}

func (r *Recorder) RecordClick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clicks++
}

func (r *Recorder) RecordPurchase(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
	r.byItem[itemID]++
}

func (r *Recorder) RecordPurchaseRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
}

func (r *Recorder) RecordTick(earned int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks++
	r.earned += earned
}

func (r *Recorder) RecordSave(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.saveFail++
		return
	}
	r.saveOK++
}

func (r *Recorder) RecordUnlock(achievementID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUnlock[achievementID]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		Clicks:            r.clicks,
		PurchaseAccepted:  r.accepted,
		PurchaseRejected:  r.rejected,
		PurchaseTotal:     r.accepted + r.rejected,
		PurchasesByItem:   make(map[string]uint64, len(r.byItem)),
		Ticks:             r.ticks,
		PassiveEarned:     r.earned,
		SaveSuccess:       r.saveOK,
		SaveFailure:       r.saveFail,
		AchievementUnlock: make(map[string]uint64, len(r.byUnlock)),
	}
	for k, v := range r.byItem {
		out.PurchasesByItem[k] = v
	}
	for k, v := range r.byUnlock {
		out.AchievementUnlock[k] = v
	}
	if r.stream != nil {
		out.WSClients = r.stream.ClientCount()
		out.WSDropped = r.stream.Dropped()
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}

var _ ports.GameMetrics = (*Recorder)(nil)
