package achievement

type Status struct {
	Definition
	Unlocked bool `json:"unlocked"`
}

// Tracker holds the unlock state of a fixed, ordered set of definitions.
// Unlocks are one-way.
type Tracker struct {
	defs     []Definition
	unlocked map[string]bool
}

func NewTracker(defs []Definition) *Tracker {
	return &Tracker{
		defs:     append([]Definition(nil), defs...),
		unlocked: make(map[string]bool, len(defs)),
	}
}

// EvaluateAll checks every locked definition in declaration order and returns
// the ones that became unlocked during this call.
func (t *Tracker) EvaluateAll(v View) []Definition {
	var fresh []Definition
	for _, d := range t.defs {
		if t.unlocked[d.ID] {
			continue
		}
		if d.Condition.Met(v) {
			t.unlocked[d.ID] = true
			fresh = append(fresh, d)
		}
	}
	return fresh
}

// Restore marks the given ids unlocked without evaluating predicates.
// Ids not in the catalog are ignored.
func (t *Tracker) Restore(ids []string) {
	for _, id := range ids {
		if t.known(id) {
			t.unlocked[id] = true
		}
	}
}

func (t *Tracker) IsUnlocked(id string) bool {
	return t.unlocked[id]
}

// UnlockedIDs returns unlocked ids in declaration order.
func (t *Tracker) UnlockedIDs() []string {
	out := make([]string, 0, len(t.unlocked))
	for _, d := range t.defs {
		if t.unlocked[d.ID] {
			out = append(out, d.ID)
		}
	}
	return out
}

func (t *Tracker) Statuses() []Status {
	out := make([]Status, 0, len(t.defs))
	for _, d := range t.defs {
		out = append(out, Status{Definition: d, Unlocked: t.unlocked[d.ID]})
	}
	return out
}

func (t *Tracker) known(id string) bool {
	for _, d := range t.defs {
		if d.ID == id {
			return true
		}
	}
	return false
}
