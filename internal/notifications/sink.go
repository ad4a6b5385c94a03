// Package notifications provides notification fan-out and real-time delivery.
package notifications

import (
	"context"

	"github.com/google/uuid"
)

// DeliverySink pushes a serialized notification toward a recipient's live
// connections. Delivery is best effort; persistence happens before any sink
// is invoked.
type DeliverySink interface {
	Deliver(ctx context.Context, recipientID uuid.UUID, payload []byte) error
}

// NoopSink discards every delivery. Used when no realtime transport is wired.
type NoopSink struct{}

// Deliver implements DeliverySink.
func (NoopSink) Deliver(_ context.Context, _ uuid.UUID, _ []byte) error { return nil }
