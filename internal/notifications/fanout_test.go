package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"

	"loomline/internal/models"
	"loomline/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) repository.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Notification{},
	))

	return repository.NewStore(db)
}

func createProfile(t *testing.T, store repository.Store, username string) *models.Profile {
	t.Helper()

	profile := &models.Profile{Username: username, DisplayName: username}
	require.NoError(t, store.Profiles().Create(context.Background(), profile))
	return profile
}

type recordingSink struct {
	mu         sync.Mutex
	err        error
	recipients []uuid.UUID
	payloads   [][]byte
}

func (s *recordingSink) Deliver(_ context.Context, recipientID uuid.UUID, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.recipients = append(s.recipients, recipientID)
	s.payloads = append(s.payloads, payload)
	return nil
}

func listNotifications(t *testing.T, store repository.Store, recipientID uuid.UUID) []*models.Notification {
	t.Helper()

	notifications, err := store.Notifications().ListByRecipient(context.Background(), recipientID, false, 50, 0)
	require.NoError(t, err)
	return notifications
}

func TestFanout_FollowEvent(t *testing.T) {
	store := setupTestStore(t)
	ada := createProfile(t, store, "ada")
	bob := createProfile(t, store, "bob")

	sink := &recordingSink{}
	f := NewFanout(store, sink, nil, 0)

	f.Dispatch(context.Background(), Event{
		Kind:       EventFollow,
		Actor:      Actor{ID: ada.ID, Username: ada.Username},
		OwnerID:    bob.ID,
		EntityType: models.EntityProfile,
		EntityID:   ada.ID,
	})

	got := listNotifications(t, store, bob.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationFollow, got[0].Type)
	assert.Equal(t, "@ada started following you", got[0].Message)
	require.NotNil(t, got[0].SenderID)
	assert.Equal(t, ada.ID, *got[0].SenderID)

	require.Len(t, sink.recipients, 1)
	assert.Equal(t, bob.ID, sink.recipients[0])
}

func TestFanout_SelfEventSkipped(t *testing.T) {
	store := setupTestStore(t)
	ada := createProfile(t, store, "ada")

	sink := &recordingSink{}
	f := NewFanout(store, sink, nil, 0)

	f.Dispatch(context.Background(), Event{
		Kind:       EventLikePost,
		Actor:      Actor{ID: ada.ID, Username: ada.Username},
		OwnerID:    ada.ID,
		EntityType: models.EntityPost,
		EntityID:   uuid.New(),
	})

	assert.Empty(t, listNotifications(t, store, ada.ID))
	assert.Empty(t, sink.recipients)
}

func TestFanout_CommentReply(t *testing.T) {
	store := setupTestStore(t)
	ada := createProfile(t, store, "ada")
	bob := createProfile(t, store, "bob")
	cat := createProfile(t, store, "cat")

	postID := uuid.New()
	commentID := uuid.New()

	sink := &recordingSink{}
	f := NewFanout(store, sink, nil, 0)

	f.Dispatch(context.Background(), Event{
		Kind:                 EventCommentReply,
		Actor:                Actor{ID: ada.ID, Username: ada.Username},
		OwnerID:              bob.ID,
		EntityType:           models.EntityComment,
		EntityID:             commentID,
		PostID:               &postID,
		ParentCommentOwnerID: &cat.ID,
	})

	bobGot := listNotifications(t, store, bob.ID)
	require.Len(t, bobGot, 1)
	assert.Equal(t, models.NotificationComment, bobGot[0].Type)
	assert.Equal(t, postID.String(), bobGot[0].Metadata["postId"])

	catGot := listNotifications(t, store, cat.ID)
	require.Len(t, catGot, 1)
	assert.Equal(t, models.NotificationReply, catGot[0].Type)
	assert.Equal(t, "@ada replied to your comment", catGot[0].Message)
}

func TestFanout_ReplyToOwnCommentSingleNotification(t *testing.T) {
	store := setupTestStore(t)
	ada := createProfile(t, store, "ada")
	bob := createProfile(t, store, "bob")

	postID := uuid.New()

	sink := &recordingSink{}
	f := NewFanout(store, sink, nil, 0)

	// ada replies to bob's comment on bob's post. bob gets one
	// notification, not two.
	f.Dispatch(context.Background(), Event{
		Kind:                 EventCommentReply,
		Actor:                Actor{ID: ada.ID, Username: ada.Username},
		OwnerID:              bob.ID,
		EntityType:           models.EntityComment,
		EntityID:             uuid.New(),
		PostID:               &postID,
		ParentCommentOwnerID: &bob.ID,
	})

	assert.Len(t, listNotifications(t, store, bob.ID), 1)
}

func TestFanout_Mentions(t *testing.T) {
	store := setupTestStore(t)
	ada := createProfile(t, store, "ada")
	bob := createProfile(t, store, "bob")
	cat := createProfile(t, store, "cat")

	sink := &recordingSink{}
	f := NewFanout(store, sink, nil, 0)

	f.Dispatch(context.Background(), Event{
		Kind:       EventPost,
		Actor:      Actor{ID: ada.ID, Username: ada.Username},
		OwnerID:    ada.ID,
		EntityType: models.EntityPost,
		EntityID:   uuid.New(),
		Mentions:   []string{"bob", "cat", "ada", "ghost"},
	})

	bobGot := listNotifications(t, store, bob.ID)
	require.Len(t, bobGot, 1)
	assert.Equal(t, models.NotificationMention, bobGot[0].Type)
	assert.Equal(t, "@ada mentioned you in a post", bobGot[0].Message)

	assert.Len(t, listNotifications(t, store, cat.ID), 1)

	// Mentioning yourself or an unknown username produces nothing.
	assert.Empty(t, listNotifications(t, store, ada.ID))
}

func TestFanout_RepostMetadata(t *testing.T) {
	store := setupTestStore(t)
	ada := createProfile(t, store, "ada")
	bob := createProfile(t, store, "bob")

	originalID := uuid.New()

	f := NewFanout(store, &recordingSink{}, nil, 0)
	f.Dispatch(context.Background(), Event{
		Kind:           EventRepost,
		Actor:          Actor{ID: ada.ID, Username: ada.Username},
		OwnerID:        bob.ID,
		EntityType:     models.EntityPost,
		EntityID:       uuid.New(),
		OriginalPostID: &originalID,
	})

	got := listNotifications(t, store, bob.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationRepost, got[0].Type)
	assert.Equal(t, originalID.String(), got[0].Metadata["originalPostId"])
}

func TestFanout_SinkFailureStillPersists(t *testing.T) {
	store := setupTestStore(t)
	ada := createProfile(t, store, "ada")
	bob := createProfile(t, store, "bob")

	sink := &recordingSink{err: errors.New("redis down")}
	f := NewFanout(store, sink, nil, 0)

	f.Dispatch(context.Background(), Event{
		Kind:       EventFollow,
		Actor:      Actor{ID: ada.ID, Username: ada.Username},
		OwnerID:    bob.ID,
		EntityType: models.EntityProfile,
		EntityID:   ada.ID,
	})

	assert.Len(t, listNotifications(t, store, bob.ID), 1)
}
