// Package service implements the application's domain operations on top of
// the repository layer.
package service

import (
	"context"

	"loomline/internal/models"
	"loomline/internal/notifications"
	"loomline/internal/observability"
	"loomline/internal/repository"

	"github.com/google/uuid"
)

// GraphService owns the follow and like edges of the social graph. Every
// mutation keeps the denormalized counters on the touched entities in step
// with the edge rows inside a single transaction, then hands a fan-out event
// to the notification pipeline after commit.
type GraphService struct {
	store  repository.Store
	fanout *notifications.Fanout
}

// NewGraphService creates a GraphService.
func NewGraphService(store repository.Store, fanout *notifications.Fanout) *GraphService {
	return &GraphService{store: store, fanout: fanout}
}

// Follow creates a follow edge from follower to target. Following a private
// profile creates a pending edge that does not touch counters. Following an
// already-followed profile is a conflict; following yourself is rejected.
func (s *GraphService) Follow(ctx context.Context, followerID, targetID uuid.UUID) (follow *models.Follow, err error) {
	defer func() { observability.RecordMutation("follow", err) }()

	if followerID == targetID {
		return nil, models.NewSelfReferenceError("cannot follow yourself")
	}

	var actor *models.Profile
	var target *models.Profile

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		var txErr error
		actor, txErr = tx.Profiles().GetByID(ctx, followerID)
		if txErr != nil {
			return txErr
		}
		target, txErr = tx.Profiles().GetByID(ctx, targetID)
		if txErr != nil {
			return txErr
		}

		follow = &models.Follow{
			FollowerID:  followerID,
			FollowingID: targetID,
			IsApproved:  !target.IsPrivate,
		}
		if txErr := tx.Follows().Create(ctx, follow); txErr != nil {
			return txErr
		}

		if follow.IsApproved {
			if txErr := tx.Profiles().IncFollowerCount(ctx, targetID); txErr != nil {
				return txErr
			}
			if txErr := tx.Profiles().IncFollowingCount(ctx, followerID); txErr != nil {
				return txErr
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	kind := notifications.EventFollow
	if !follow.IsApproved {
		kind = notifications.EventFollowRequest
	}
	s.fanout.Dispatch(ctx, notifications.Event{
		Kind:       kind,
		Actor:      notifications.Actor{ID: actor.ID, Username: actor.Username},
		OwnerID:    targetID,
		EntityType: models.EntityProfile,
		EntityID:   actor.ID,
	})

	return follow, nil
}

// Unfollow removes the follow edge. Counters are only decremented when the
// removed edge was approved, mirroring the increment on creation.
func (s *GraphService) Unfollow(ctx context.Context, followerID, targetID uuid.UUID) (err error) {
	defer func() { observability.RecordMutation("unfollow", err) }()

	if followerID == targetID {
		return models.NewSelfReferenceError("cannot unfollow yourself")
	}

	return s.store.InTx(ctx, func(tx repository.Store) error {
		removed, txErr := tx.Follows().Delete(ctx, followerID, targetID)
		if txErr != nil {
			return txErr
		}
		if !removed.IsApproved {
			return nil
		}
		if txErr := tx.Profiles().DecFollowerCount(ctx, targetID); txErr != nil {
			return txErr
		}
		return tx.Profiles().DecFollowingCount(ctx, followerID)
	})
}

// Like records a like from actorID on a post or comment and bumps the cached
// like counter on the target. Liking the same target twice is a conflict.
func (s *GraphService) Like(ctx context.Context, actorID uuid.UUID, target models.LikeTarget, targetID uuid.UUID) (err error) {
	defer func() { observability.RecordMutation("like", err) }()

	actor, err := s.store.Profiles().GetByID(ctx, actorID)
	if err != nil {
		return err
	}

	var event notifications.Event

	switch target {
	case models.LikeTargetPost:
		err = s.store.InTx(ctx, func(tx repository.Store) error {
			post, txErr := tx.Posts().GetByID(ctx, targetID)
			if txErr != nil {
				return txErr
			}
			like := &models.Like{ProfileID: actorID, PostID: &post.ID}
			if txErr := tx.Likes().Create(ctx, like); txErr != nil {
				return txErr
			}
			if txErr := tx.Posts().IncLikeCount(ctx, post.ID); txErr != nil {
				return txErr
			}
			event = notifications.Event{
				Kind:       notifications.EventLikePost,
				Actor:      notifications.Actor{ID: actor.ID, Username: actor.Username},
				OwnerID:    post.ProfileID,
				EntityType: models.EntityPost,
				EntityID:   post.ID,
			}
			return nil
		})
	case models.LikeTargetComment:
		err = s.store.InTx(ctx, func(tx repository.Store) error {
			comment, txErr := tx.Comments().GetByID(ctx, targetID)
			if txErr != nil {
				return txErr
			}
			like := &models.Like{ProfileID: actorID, CommentID: &comment.ID}
			if txErr := tx.Likes().Create(ctx, like); txErr != nil {
				return txErr
			}
			if txErr := tx.Comments().IncLikeCount(ctx, comment.ID); txErr != nil {
				return txErr
			}
			event = notifications.Event{
				Kind:       notifications.EventLikeComment,
				Actor:      notifications.Actor{ID: actor.ID, Username: actor.Username},
				OwnerID:    comment.ProfileID,
				EntityType: models.EntityComment,
				EntityID:   comment.ID,
			}
			return nil
		})
	default:
		return models.NewValidationError("unknown like target")
	}
	if err != nil {
		return err
	}

	s.fanout.Dispatch(ctx, event)
	return nil
}

// Unlike removes a like and decrements the target's counter. Removing a like
// that does not exist is NotFound; the counter never goes below zero.
func (s *GraphService) Unlike(ctx context.Context, actorID uuid.UUID, target models.LikeTarget, targetID uuid.UUID) (err error) {
	defer func() { observability.RecordMutation("unlike", err) }()

	switch target {
	case models.LikeTargetPost:
		return s.store.InTx(ctx, func(tx repository.Store) error {
			if txErr := tx.Likes().DeleteForPost(ctx, actorID, targetID); txErr != nil {
				return txErr
			}
			return tx.Posts().DecLikeCount(ctx, targetID)
		})
	case models.LikeTargetComment:
		return s.store.InTx(ctx, func(tx repository.Store) error {
			if txErr := tx.Likes().DeleteForComment(ctx, actorID, targetID); txErr != nil {
				return txErr
			}
			return tx.Comments().DecLikeCount(ctx, targetID)
		})
	default:
		return models.NewValidationError("unknown like target")
	}
}
