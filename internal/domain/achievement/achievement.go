package achievement

import (
	"errors"
	"fmt"
)

// View is the read-only slice of economy state that unlock predicates see.
type View interface {
	Balance() int64
	ItemCount(itemID string) int64
	TotalIncomeRate() int64
	TotalItemsOwned() int64
}

type ConditionKind string

const (
	ConditionOwnsItem          ConditionKind = "owns_item"
	ConditionMoneyAtLeast      ConditionKind = "money_at_least"
	ConditionIncomeAtLeast     ConditionKind = "income_at_least"
	ConditionItemsOwnedAtLeast ConditionKind = "items_owned_at_least"
)

type Condition struct {
	Kind      ConditionKind `json:"kind" yaml:"kind"`
	ItemID    string        `json:"item_id,omitempty" yaml:"item_id,omitempty"`
	Threshold int64         `json:"threshold" yaml:"threshold"`
}

type Definition struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Condition Condition `json:"condition"`
}

var ErrInvalidDefinition = errors.New("invalid achievement definition")

func OwnsItem(itemID string, n int64) Condition {
	return Condition{Kind: ConditionOwnsItem, ItemID: itemID, Threshold: n}
}

func MoneyAtLeast(n int64) Condition {
	return Condition{Kind: ConditionMoneyAtLeast, Threshold: n}
}

func IncomeAtLeast(n int64) Condition {
	return Condition{Kind: ConditionIncomeAtLeast, Threshold: n}
}

func ItemsOwnedAtLeast(n int64) Condition {
	return Condition{Kind: ConditionItemsOwnedAtLeast, Threshold: n}
}

// Met evaluates the predicate. It has no side effects.
func (c Condition) Met(v View) bool {
	switch c.Kind {
	case ConditionOwnsItem:
		return v.ItemCount(c.ItemID) >= c.Threshold
	case ConditionMoneyAtLeast:
		return v.Balance() >= c.Threshold
	case ConditionIncomeAtLeast:
		return v.TotalIncomeRate() >= c.Threshold
	case ConditionItemsOwnedAtLeast:
		return v.TotalItemsOwned() >= c.Threshold
	default:
		return false
	}
}

func (d Definition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDefinition)
	}
	switch d.Condition.Kind {
	case ConditionOwnsItem:
		if d.Condition.ItemID == "" {
			return fmt.Errorf("%w: %s needs item_id", ErrInvalidDefinition, d.ID)
		}
	case ConditionMoneyAtLeast, ConditionIncomeAtLeast, ConditionItemsOwnedAtLeast:
	default:
		return fmt.Errorf("%w: %s has unknown condition %q", ErrInvalidDefinition, d.ID, d.Condition.Kind)
	}
	return nil
}
