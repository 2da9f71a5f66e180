// Package tracker orchestrates the habit, diary and investment stores
// behind the operations the API exposes. All validation happens here
// before any mutation is applied; the stores only see well-formed data.
package tracker

import (
	"context"

	"climb/internal/amqp"
	"climb/internal/store"
)

// RecordPublisher pushes completion record events to the sync worker.
// Publishing is best-effort: the local write has already succeeded when
// a publish fails, so failures are logged and swallowed.
type RecordPublisher interface {
	PublishRecordEvent(ctx context.Context, msg *amqp.RecordEventMessage) error
}

type Service struct {
	store     store.Store
	publisher RecordPublisher
}

// New builds a Service. publisher may be nil when AMQP is not
// configured; record events are then skipped.
func New(st store.Store, publisher RecordPublisher) *Service {
	return &Service{
		store:     st,
		publisher: publisher,
	}
}
