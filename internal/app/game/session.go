package game

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"idletycoon/internal/app/ports"
	"idletycoon/internal/app/savestate"
	"idletycoon/internal/domain/achievement"
	"idletycoon/internal/domain/catalog"
	"idletycoon/internal/domain/economy"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
)

var (
	ErrNotStarted          = errors.New("game session not started")
	ErrAlreadyStarted      = errors.New("game session already started")
	ErrShopNameAlreadySet  = errors.New("shop name already set")
	ErrShopNameUnsupported = errors.New("catalog variant has no shop name")
	ErrSaveDeferred        = errors.New("save deferred until shop name is set")
)

type Options struct {
	SessionID   string
	Variant     catalog.Variant
	Codec       savestate.Codec
	PricePolicy savestate.PricePolicy
	Events      ports.EventPublisher
	Metrics     ports.GameMetrics
	Now         func() time.Time
}

// Session owns the economy and achievement state of one running game. Every
// mutation goes through mu, so clock ticks and player requests never race.
type Session struct {
	mu sync.Mutex

	id      string
	variant catalog.Variant
	codec   savestate.Codec
	policy  savestate.PricePolicy
	events  ports.EventPublisher
	metrics ports.GameMetrics
	now     func() time.Time

	state        economy.State
	tracker      *achievement.Tracker
	started      bool
	nameResolved bool
}

func NewSession(opts Options) *Session {
	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}
	nowFn := opts.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	policy := opts.PricePolicy
	if policy == "" {
		policy = savestate.PricePersisted
	}
	return &Session{
		id:      id,
		variant: opts.Variant,
		codec:   opts.Codec,
		policy:  policy,
		events:  opts.Events,
		metrics: opts.Metrics,
		now:     nowFn,
		state:   economy.NewState(opts.Variant.Items),
		tracker: achievement.NewTracker(opts.Variant.Achievements),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Start restores the newest usable save and credits offline earnings once.
// It must run before the game clock starts.
func (s *Session) Start(ctx context.Context) (StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return StartResult{}, ErrAlreadyStarted
	}

	s.state = economy.NewState(s.variant.Items)
	s.tracker = achievement.NewTracker(s.variant.Achievements)

	var out StartResult
	if loaded, ok := s.codec.Load(ctx); ok {
		savestate.Apply(&s.state, s.tracker, loaded.Record, s.policy)
		out.Loaded = true
		out.SchemaVersion = loaded.Version

		catchUp := economy.ComputeCatchUp(loaded.Record.LastSaveTime, s.now().UnixMilli(), s.state.TotalIncomeRate())
		if catchUp.Amount > 0 {
			s.state.Money += catchUp.Amount
			out.CatchUp = catchUp
			s.emit(economy.EventOfflineBonusApplied, map[string]any{
				"amount":          catchUp.Amount,
				"elapsed_seconds": catchUp.ElapsedSeconds,
			})
			s.emitMoney(catchUp.Amount)
		}
		hlog.CtxInfof(ctx, "session %s restored %s (v%d), offline bonus %d over %ds",
			s.id, loaded.Key, loaded.Version, catchUp.Amount, catchUp.ElapsedSeconds)
	} else {
		hlog.CtxInfof(ctx, "session %s starting fresh, no save found", s.id)
	}

	s.nameResolved = !s.variant.RequireShopName || s.state.ShopName != ""
	s.started = true

	if s.unlockLocked() {
		s.persistLocked(ctx)
	}
	return out, nil
}

func (s *Session) Click(ctx context.Context) (ClickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ClickResult{}, ErrNotStarted
	}
	earned := s.state.Click()
	if s.metrics != nil {
		s.metrics.RecordClick()
	}
	s.emitMoney(earned)
	if s.unlockLocked() {
		s.persistLocked(ctx)
	}
	return ClickResult{Earned: earned, Money: s.state.Money}, nil
}

// Purchase buys one unit of itemID. Rejections leave state untouched and
// return economy.ErrInsufficientFunds or economy.ErrUnknownItem.
func (s *Session) Purchase(ctx context.Context, itemID string) (PurchaseResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return PurchaseResult{}, ErrNotStarted
	}
	itemID = strings.TrimSpace(itemID)
	before := s.state.Money
	item, err := s.state.Purchase(itemID)
	if err != nil {
		if errors.Is(err, economy.ErrInsufficientFunds) {
			if s.metrics != nil {
				s.metrics.RecordPurchaseRejected()
			}
			s.emit(economy.EventPurchaseRejected, map[string]any{
				"item_id": itemID,
				"price":   item.Price,
				"money":   s.state.Money,
			})
		}
		return PurchaseResult{}, err
	}
	if s.metrics != nil {
		s.metrics.RecordPurchase(item.ID)
	}
	s.emit(economy.EventItemPurchased, map[string]any{
		"item_id":     item.ID,
		"count":       item.Count,
		"next_price":  item.Price,
		"income_rate": s.state.TotalIncomeRate(),
	})
	s.emitMoney(s.state.Money - before)
	s.unlockLocked()
	s.persistLocked(ctx)
	return PurchaseResult{Item: item, Money: s.state.Money}, nil
}

// SetShopName resolves the shop name once. A blank name falls back to the
// variant's default.
func (s *Session) SetShopName(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return "", ErrNotStarted
	}
	if !s.variant.RequireShopName {
		return "", ErrShopNameUnsupported
	}
	if s.nameResolved {
		return s.state.ShopName, ErrShopNameAlreadySet
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.variant.DefaultShopName
	}
	s.state.ShopName = name
	s.nameResolved = true
	s.emit(economy.EventShopNamed, map[string]any{"shop_name": name})
	s.persistLocked(ctx)
	return name, nil
}

// AccrueTick credits one accrual interval of passive income.
func (s *Session) AccrueTick(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return 0, ErrNotStarted
	}
	delta := s.state.Accrue()
	if s.metrics != nil {
		s.metrics.RecordTick(delta)
	}
	if delta > 0 {
		s.emitMoney(delta)
	}
	if s.unlockLocked() {
		s.persistLocked(ctx)
	}
	return delta, nil
}

// Save writes the current state. It is used by the autosave tick, the manual
// save endpoint and shutdown.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return ErrNotStarted
	}
	return s.persistLocked(ctx)
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]ItemView, 0, len(s.state.Items))
	for _, it := range s.state.Items {
		items = append(items, ItemView{Item: it, Affordable: s.state.Money >= it.Price})
	}
	return Snapshot{
		SessionID:     s.id,
		Variant:       s.variant.Name,
		Money:         s.state.Money,
		ShopName:      s.state.ShopName,
		NeedsShopName: s.started && !s.nameResolved,
		IncomeRate:    s.state.TotalIncomeRate(),
		Items:         items,
		Achievements:  s.tracker.Statuses(),
	}
}

func (s *Session) unlockLocked() bool {
	fresh := s.tracker.EvaluateAll(&s.state)
	for _, d := range fresh {
		if s.metrics != nil {
			s.metrics.RecordUnlock(d.ID)
		}
		s.emit(economy.EventAchievementUnlocked, map[string]any{
			"achievement_id": d.ID,
			"title":          d.Title,
		})
	}
	return len(fresh) > 0
}

// persistLocked is best effort: failures are logged and counted, and the
// game keeps running in memory.
func (s *Session) persistLocked(ctx context.Context) error {
	if !s.nameResolved {
		return ErrSaveDeferred
	}
	rec := savestate.NewRecord(s.state, s.tracker.UnlockedIDs(), s.now())
	err := s.codec.Save(ctx, rec)
	if s.metrics != nil {
		s.metrics.RecordSave(err)
	}
	if err != nil {
		hlog.CtxWarnf(ctx, "session %s save failed, continuing in memory: %v", s.id, err)
		return err
	}
	s.emit(economy.EventSaveCompleted, map[string]any{
		"key":            s.codec.CurrentKey(),
		"last_save_time": rec.LastSaveTime,
	})
	return nil
}

func (s *Session) emitMoney(delta int64) {
	s.emit(economy.EventMoneyChanged, map[string]any{
		"money": s.state.Money,
		"delta": delta,
	})
}

func (s *Session) emit(t economy.EventType, payload map[string]any) {
	if s.events == nil {
		return
	}
	s.events.Publish(economy.DomainEvent{
		Type:       t,
		SessionID:  s.id,
		OccurredAt: s.now(),
		Payload:    payload,
	})
}
