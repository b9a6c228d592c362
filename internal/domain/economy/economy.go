package economy

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnknownItem       = errors.New("unknown item")
)

// NewState returns a fresh state holding a copy of the catalog items with
// prices reset to their base price and nothing owned.
func NewState(catalog []Item) State {
	items := make([]Item, 0, len(catalog))
	for _, it := range catalog {
		it.Price = it.BasePrice
		it.Count = 0
		items = append(items, it)
	}
	return State{Items: items}
}

func (s *State) TotalIncomeRate() int64 {
	var total int64
	for _, it := range s.Items {
		total += it.Count * it.EarnRate
	}
	return total
}

// Accrue credits one tick of passive income and returns the delta.
func (s *State) Accrue() int64 {
	rate := s.TotalIncomeRate()
	if rate <= 0 {
		return 0
	}
	s.Money += rate
	return rate
}

func (s *State) Click() int64 {
	s.Money += ClickReward
	return ClickReward
}

// Purchase buys exactly one unit of the item. On error the state is unchanged.
func (s *State) Purchase(itemID string) (Item, error) {
	idx := s.indexOf(itemID)
	if idx < 0 {
		return Item{}, ErrUnknownItem
	}
	it := &s.Items[idx]
	if s.Money < it.Price {
		return *it, ErrInsufficientFunds
	}
	s.Money -= it.Price
	it.Count++
	it.Price = NextPrice(it.Price)
	return *it, nil
}

func (s *State) Item(itemID string) (Item, bool) {
	idx := s.indexOf(itemID)
	if idx < 0 {
		return Item{}, false
	}
	return s.Items[idx], true
}

func (s *State) ItemCount(itemID string) int64 {
	it, ok := s.Item(itemID)
	if !ok {
		return 0
	}
	return it.Count
}

func (s *State) Balance() int64 {
	return s.Money
}

func (s *State) TotalItemsOwned() int64 {
	var total int64
	for _, it := range s.Items {
		total += it.Count
	}
	return total
}

// RestoreItem overwrites count and price of a known item. Unknown ids are
// ignored and reported as false.
func (s *State) RestoreItem(itemID string, count, price int64) bool {
	idx := s.indexOf(itemID)
	if idx < 0 {
		return false
	}
	s.Items[idx].Count = count
	s.Items[idx].Price = price
	return true
}

func (s *State) indexOf(itemID string) int {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}
