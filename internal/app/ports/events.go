package ports

import "idletycoon/internal/domain/economy"

// EventPublisher fans domain events out to the presentation layer. Publish is
// called while the session lock is held and must not block.
type EventPublisher interface {
	Publish(evt economy.DomainEvent)
}
