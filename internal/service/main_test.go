package service

import (
	"context"
	"sync"
	"testing"

	"loomline/internal/models"
	"loomline/internal/notifications"
	"loomline/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type recordingSink struct {
	mu         sync.Mutex
	recipients []uuid.UUID
}

func (s *recordingSink) Deliver(_ context.Context, recipientID uuid.UUID, _ []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipients = append(s.recipients, recipientID)
	return nil
}

type testEnv struct {
	db            *gorm.DB
	store         repository.Store
	sink          *recordingSink
	graph         *GraphService
	content       *ContentService
	feed          *FeedService
	notifications *NotificationService
	profiles      *ProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Follow{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Notification{},
		&models.Hashtag{},
	))

	store := repository.NewStore(db)
	sink := &recordingSink{}
	fanout := notifications.NewFanout(store, sink, nil, 0)

	return &testEnv{
		db:            db,
		store:         store,
		sink:          sink,
		graph:         NewGraphService(store, fanout),
		content:       NewContentService(store, fanout),
		feed:          NewFeedService(store),
		notifications: NewNotificationService(store),
		profiles:      NewProfileService(store),
	}
}

func (e *testEnv) createProfile(t *testing.T, username string, private bool) *models.Profile {
	t.Helper()

	profile, err := e.profiles.CreateProfile(context.Background(), CreateProfileInput{
		ExternalUserID: uuid.New(),
		Username:       username,
		IsPrivate:      private,
	})
	require.NoError(t, err)
	return profile
}

func (e *testEnv) getProfile(t *testing.T, id uuid.UUID) *models.Profile {
	t.Helper()

	profile, err := e.store.Profiles().GetByID(context.Background(), id)
	require.NoError(t, err)
	return profile
}

func (e *testEnv) notificationsFor(t *testing.T, recipientID uuid.UUID) []*models.Notification {
	t.Helper()

	got, err := e.notifications.List(context.Background(), recipientID, false, 50, 0)
	require.NoError(t, err)
	return got
}
