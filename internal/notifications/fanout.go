package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"loomline/internal/models"
	"loomline/internal/observability"
	"loomline/internal/repository"

	"github.com/google/uuid"
)

// EventKind identifies the mutation that produced an Event.
type EventKind string

const (
	EventFollow        EventKind = "follow"
	EventFollowRequest EventKind = "follow_request"
	EventLikePost      EventKind = "like_post"
	EventLikeComment   EventKind = "like_comment"
	EventComment       EventKind = "comment"
	EventCommentReply  EventKind = "comment_reply"
	EventPost          EventKind = "post"
	EventRepost        EventKind = "repost"
)

// Actor is the profile that performed the mutation.
type Actor struct {
	ID       uuid.UUID
	Username string
}

// Event is an immutable description of a committed mutation. Mutators return
// it after their transaction commits; Dispatch derives notifications from it.
type Event struct {
	Kind  EventKind
	Actor Actor

	// OwnerID is the profile that owns the primary entity acted on.
	OwnerID uuid.UUID

	EntityType models.EntityType
	EntityID   uuid.UUID

	// PostID is set for comment and repost events so recipients can link back.
	PostID *uuid.UUID

	// ParentCommentOwnerID is set when a comment replies to another comment.
	ParentCommentOwnerID *uuid.UUID

	// Mentions holds @usernames extracted from the content, already lowercased.
	Mentions []string

	// OriginalPostID is set for repost events.
	OriginalPostID *uuid.UUID
}

// notificationDraft is one derived notification before persistence.
type notificationDraft struct {
	recipientID uuid.UUID
	kind        models.NotificationType
	entityType  models.EntityType
	entityID    uuid.UUID
	message     string
	metadata    map[string]interface{}
}

// Fanout turns Events into persisted notifications and best-effort realtime
// pushes. Rows are written before any delivery is attempted, so a recipient
// who misses the push still finds the notification on next poll.
type Fanout struct {
	store   repository.Store
	sink    DeliverySink
	logger  *slog.Logger
	timeout time.Duration
}

// NewFanout creates a Fanout. A nil sink disables realtime delivery.
func NewFanout(store repository.Store, sink DeliverySink, logger *slog.Logger, timeout time.Duration) *Fanout {
	if sink == nil {
		sink = NoopSink{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Fanout{store: store, sink: sink, logger: logger, timeout: timeout}
}

// Dispatch derives, persists, and pushes the notifications for one event.
// It runs on a context detached from the caller's cancellation so an aborted
// request cannot halve the fan-out; persistence errors are logged and counted
// but never fail the mutation that produced the event.
func (f *Fanout) Dispatch(ctx context.Context, event Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), f.timeout)
	defer cancel()

	drafts := f.derive(ctx, event)
	for _, draft := range drafts {
		f.deliver(ctx, event, draft)
	}
}

// derive applies the fan-out rules. Every rule skips self-notification and
// the mention rule additionally skips recipients already covered by the
// primary notification.
func (f *Fanout) derive(ctx context.Context, event Event) []notificationDraft {
	var drafts []notificationDraft
	covered := map[uuid.UUID]bool{event.Actor.ID: true}

	add := func(d notificationDraft) {
		if d.recipientID == uuid.Nil || covered[d.recipientID] {
			return
		}
		covered[d.recipientID] = true
		drafts = append(drafts, d)
	}

	switch event.Kind {
	case EventFollow:
		add(notificationDraft{
			recipientID: event.OwnerID,
			kind:        models.NotificationFollow,
			entityType:  models.EntityProfile,
			entityID:    event.Actor.ID,
			message:     fmt.Sprintf("@%s started following you", event.Actor.Username),
		})
	case EventFollowRequest:
		add(notificationDraft{
			recipientID: event.OwnerID,
			kind:        models.NotificationFollowRequest,
			entityType:  models.EntityProfile,
			entityID:    event.Actor.ID,
			message:     fmt.Sprintf("@%s requested to follow you", event.Actor.Username),
		})
	case EventLikePost:
		add(notificationDraft{
			recipientID: event.OwnerID,
			kind:        models.NotificationLike,
			entityType:  models.EntityPost,
			entityID:    event.EntityID,
			message:     fmt.Sprintf("@%s liked your post", event.Actor.Username),
		})
	case EventLikeComment:
		add(notificationDraft{
			recipientID: event.OwnerID,
			kind:        models.NotificationLike,
			entityType:  models.EntityComment,
			entityID:    event.EntityID,
			message:     fmt.Sprintf("@%s liked your comment", event.Actor.Username),
		})
	case EventComment, EventCommentReply:
		var metadata map[string]interface{}
		if event.PostID != nil {
			metadata = map[string]interface{}{"postId": event.PostID.String()}
		}
		add(notificationDraft{
			recipientID: event.OwnerID,
			kind:        models.NotificationComment,
			entityType:  models.EntityComment,
			entityID:    event.EntityID,
			message:     fmt.Sprintf("@%s commented on your post", event.Actor.Username),
			metadata:    metadata,
		})
		if event.ParentCommentOwnerID != nil {
			add(notificationDraft{
				recipientID: *event.ParentCommentOwnerID,
				kind:        models.NotificationReply,
				entityType:  models.EntityComment,
				entityID:    event.EntityID,
				message:     fmt.Sprintf("@%s replied to your comment", event.Actor.Username),
				metadata:    metadata,
			})
		}
	case EventRepost:
		var metadata map[string]interface{}
		if event.OriginalPostID != nil {
			metadata = map[string]interface{}{"originalPostId": event.OriginalPostID.String()}
		}
		add(notificationDraft{
			recipientID: event.OwnerID,
			kind:        models.NotificationRepost,
			entityType:  models.EntityPost,
			entityID:    event.EntityID,
			message:     fmt.Sprintf("@%s reposted your post", event.Actor.Username),
			metadata:    metadata,
		})
	case EventPost:
		// Post creation alone notifies nobody; mentions below still apply.
	}

	for _, draft := range f.mentionDrafts(ctx, event) {
		add(draft)
	}

	return drafts
}

// mentionDrafts resolves @usernames to profiles and builds MENTION drafts.
// Unknown usernames are silently dropped.
func (f *Fanout) mentionDrafts(ctx context.Context, event Event) []notificationDraft {
	if len(event.Mentions) == 0 {
		return nil
	}

	profiles, err := f.store.Profiles().GetByUsernames(ctx, event.Mentions)
	if err != nil {
		f.logger.Error("fanout: resolving mentions failed",
			slog.String("kind", string(event.Kind)),
			slog.String("error", err.Error()),
		)
		return nil
	}

	where := "post"
	if event.EntityType == models.EntityComment {
		where = "comment"
	}

	drafts := make([]notificationDraft, 0, len(profiles))
	for _, p := range profiles {
		drafts = append(drafts, notificationDraft{
			recipientID: p.ID,
			kind:        models.NotificationMention,
			entityType:  event.EntityType,
			entityID:    event.EntityID,
			message:     fmt.Sprintf("@%s mentioned you in a %s", event.Actor.Username, where),
		})
	}
	return drafts
}

// deliver persists one draft, then pushes it through the sink. The push is
// best effort.
func (f *Fanout) deliver(ctx context.Context, event Event, draft notificationDraft) {
	senderID := event.Actor.ID
	notification := &models.Notification{
		RecipientID: draft.recipientID,
		SenderID:    &senderID,
		Type:        draft.kind,
		EntityType:  draft.entityType,
		EntityID:    draft.entityID,
		Message:     draft.message,
		Metadata:    draft.metadata,
	}

	if err := f.store.Notifications().Create(ctx, notification); err != nil {
		observability.NotificationPersistFailures.Inc()
		f.logger.Error("fanout: persisting notification failed",
			slog.String("type", string(draft.kind)),
			slog.String("recipient_id", draft.recipientID.String()),
			slog.String("error", err.Error()),
		)
		return
	}
	observability.NotificationsPersistedTotal.WithLabelValues(string(draft.kind)).Inc()

	payload, err := json.Marshal(notification)
	if err != nil {
		f.logger.Error("fanout: encoding notification failed",
			slog.String("error", err.Error()),
		)
		return
	}

	if err := f.sink.Deliver(ctx, draft.recipientID, payload); err != nil {
		observability.DeliveryFailures.Inc()
		f.logger.Warn("fanout: realtime delivery failed",
			slog.String("recipient_id", draft.recipientID.String()),
			slog.String("error", err.Error()),
		)
	}
}
