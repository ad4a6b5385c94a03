package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store bundles every repository behind a single handle so services can run
// multi-repository work inside one transaction.
type Store interface {
	Profiles() ProfileRepository
	Follows() FollowRepository
	Posts() PostRepository
	Comments() CommentRepository
	Likes() LikeRepository
	Notifications() NotificationRepository
	Hashtags() HashtagRepository

	// InTx runs fn inside a database transaction. The Store passed to fn is
	// bound to that transaction; any error from fn rolls the whole thing back.
	InTx(ctx context.Context, fn func(Store) error) error
}

type store struct {
	db            *gorm.DB
	profiles      ProfileRepository
	follows       FollowRepository
	posts         PostRepository
	comments      CommentRepository
	likes         LikeRepository
	notifications NotificationRepository
	hashtags      HashtagRepository
}

// NewStore creates a Store backed by the given gorm connection.
func NewStore(db *gorm.DB) Store {
	return &store{
		db:            db,
		profiles:      NewProfileRepository(db),
		follows:       NewFollowRepository(db),
		posts:         NewPostRepository(db),
		comments:      NewCommentRepository(db),
		likes:         NewLikeRepository(db),
		notifications: NewNotificationRepository(db),
		hashtags:      NewHashtagRepository(db),
	}
}

func (s *store) Profiles() ProfileRepository           { return s.profiles }
func (s *store) Follows() FollowRepository             { return s.follows }
func (s *store) Posts() PostRepository                 { return s.posts }
func (s *store) Comments() CommentRepository           { return s.comments }
func (s *store) Likes() LikeRepository                 { return s.likes }
func (s *store) Notifications() NotificationRepository { return s.notifications }
func (s *store) Hashtags() HashtagRepository           { return s.hashtags }

func (s *store) InTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
