package service

import (
	"context"
	"strings"
	"time"

	"loomline/internal/content"
	"loomline/internal/models"
	"loomline/internal/notifications"
	"loomline/internal/observability"
	"loomline/internal/repository"

	"github.com/google/uuid"
)

const maxContentLen = 5000

// ContentService owns post and comment lifecycles. Creation and deletion keep
// the denormalized counters on authors, parents, and originals consistent
// inside one transaction per mutation.
type ContentService struct {
	store  repository.Store
	fanout *notifications.Fanout
	now    func() time.Time
}

// NewContentService creates a ContentService.
func NewContentService(store repository.Store, fanout *notifications.Fanout) *ContentService {
	return &ContentService{store: store, fanout: fanout, now: time.Now}
}

// CreatePostInput carries the payload for CreatePost.
type CreatePostInput struct {
	AuthorID   uuid.UUID
	Content    string
	MediaRefs  []string
	ParentID   *uuid.UUID
	RepostOfID *uuid.UUID
	IsPublic   *bool
}

// CreateCommentInput carries the payload for CreateComment.
type CreateCommentInput struct {
	PostID   uuid.UUID
	AuthorID uuid.UUID
	Content  string
	ParentID *uuid.UUID
	MediaURL string
}

// UpdateCommentInput carries the payload for UpdateComment.
type UpdateCommentInput struct {
	CommentID uuid.UUID
	AuthorID  uuid.UUID
	Content   string
}

// CreatePost creates a root post, a thread reply, or a repost. Replies
// inherit their thread root and sit one position below the parent; reposts
// reference the original and bump its repost counter. Hashtags and mentions
// are extracted from the content at creation time.
func (s *ContentService) CreatePost(ctx context.Context, in CreatePostInput) (post *models.Post, err error) {
	defer func() { observability.RecordMutation("create_post", err) }()

	trimmed := strings.TrimSpace(in.Content)
	if trimmed == "" && in.RepostOfID == nil && len(in.MediaRefs) == 0 {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}
	if in.ParentID != nil && in.RepostOfID != nil {
		return nil, models.NewValidationError("A post cannot be both a reply and a repost")
	}

	actor, err := s.store.Profiles().GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	tags, mentions := content.Extract(in.Content)

	var event *notifications.Event

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		post = &models.Post{
			ProfileID: in.AuthorID,
			Content:   in.Content,
			MediaRefs: in.MediaRefs,
			Tags:      tags,
			Mentions:  mentions,
			IsPublic:  true,
		}
		if in.IsPublic != nil {
			post.IsPublic = *in.IsPublic
		}

		if in.ParentID != nil {
			parent, txErr := tx.Posts().GetByID(ctx, *in.ParentID)
			if txErr != nil {
				return txErr
			}
			post.ParentID = &parent.ID
			post.ThreadPosition = parent.ThreadPosition + 1
			if parent.RootThreadID != nil {
				post.RootThreadID = parent.RootThreadID
			} else {
				post.RootThreadID = &parent.ID
			}
			if txErr := tx.Posts().IncCommentCount(ctx, parent.ID); txErr != nil {
				return txErr
			}
			// Replies notify through mentions only.
			event = &notifications.Event{
				Kind:       notifications.EventPost,
				Actor:      notifications.Actor{ID: actor.ID, Username: actor.Username},
				OwnerID:    in.AuthorID,
				EntityType: models.EntityPost,
				Mentions:   mentions,
			}
		}

		if in.RepostOfID != nil {
			original, txErr := tx.Posts().GetByID(ctx, *in.RepostOfID)
			if txErr != nil {
				return txErr
			}
			// Reposting a repost attaches to the original content.
			if original.IsRepost && original.OriginalPostID != nil {
				original, txErr = tx.Posts().GetByID(ctx, *original.OriginalPostID)
				if txErr != nil {
					return txErr
				}
			}
			post.IsRepost = true
			post.OriginalPostID = &original.ID
			if txErr := tx.Posts().IncRepostCount(ctx, original.ID); txErr != nil {
				return txErr
			}
			event = &notifications.Event{
				Kind:           notifications.EventRepost,
				Actor:          notifications.Actor{ID: actor.ID, Username: actor.Username},
				OwnerID:        original.ProfileID,
				EntityType:     models.EntityPost,
				OriginalPostID: &original.ID,
				Mentions:       mentions,
			}
		}

		if txErr := tx.Posts().Create(ctx, post); txErr != nil {
			return txErr
		}
		for _, tag := range tags {
			if _, txErr := tx.Hashtags().Track(ctx, tag, s.now()); txErr != nil {
				return txErr
			}
		}
		return tx.Profiles().IncPostCount(ctx, in.AuthorID)
	})
	if err != nil {
		return nil, err
	}

	if event == nil {
		event = &notifications.Event{
			Kind:       notifications.EventPost,
			Actor:      notifications.Actor{ID: actor.ID, Username: actor.Username},
			OwnerID:    in.AuthorID,
			EntityType: models.EntityPost,
			Mentions:   mentions,
		}
	}
	event.EntityID = post.ID
	s.fanout.Dispatch(ctx, *event)

	return post, nil
}

// DeletePost soft-deletes a post. Only the author may delete it. The author's
// post counter and, for replies and reposts, the parent's or original's
// counters are decremented to mirror creation.
func (s *ContentService) DeletePost(ctx context.Context, actorID, postID uuid.UUID) (err error) {
	defer func() { observability.RecordMutation("delete_post", err) }()

	return s.store.InTx(ctx, func(tx repository.Store) error {
		post, txErr := tx.Posts().GetByID(ctx, postID)
		if txErr != nil {
			return txErr
		}
		if post.ProfileID != actorID {
			return models.NewForbiddenError("only the author can delete a post")
		}
		if txErr := tx.Posts().Delete(ctx, postID); txErr != nil {
			return txErr
		}
		if txErr := tx.Profiles().DecPostCount(ctx, post.ProfileID); txErr != nil {
			return txErr
		}
		if post.ParentID != nil {
			if txErr := tx.Posts().DecCommentCount(ctx, *post.ParentID); txErr != nil {
				return txErr
			}
		}
		if post.IsRepost && post.OriginalPostID != nil {
			if txErr := tx.Posts().DecRepostCount(ctx, *post.OriginalPostID); txErr != nil {
				return txErr
			}
		}
		return nil
	})
}

// CreateComment attaches a comment to a post, optionally nested under a
// parent comment on the same post. The post's comment counter and, for
// nested replies, the parent's reply counter move in the same transaction.
func (s *ContentService) CreateComment(ctx context.Context, in CreateCommentInput) (comment *models.Comment, err error) {
	defer func() { observability.RecordMutation("create_comment", err) }()

	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	actor, err := s.store.Profiles().GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	mentions := content.ExtractMentions(in.Content)

	var event notifications.Event

	err = s.store.InTx(ctx, func(tx repository.Store) error {
		post, txErr := tx.Posts().GetByID(ctx, in.PostID)
		if txErr != nil {
			return txErr
		}

		comment = &models.Comment{
			PostID:    post.ID,
			ProfileID: in.AuthorID,
			Content:   in.Content,
			MediaURL:  in.MediaURL,
			Mentions:  mentions,
		}

		event = notifications.Event{
			Kind:       notifications.EventComment,
			Actor:      notifications.Actor{ID: actor.ID, Username: actor.Username},
			OwnerID:    post.ProfileID,
			EntityType: models.EntityComment,
			PostID:     &post.ID,
			Mentions:   mentions,
		}

		if in.ParentID != nil {
			parent, txErr := tx.Comments().GetByID(ctx, *in.ParentID)
			if txErr != nil {
				return txErr
			}
			if parent.PostID != post.ID {
				return models.NewValidationError("Parent comment belongs to a different post")
			}
			comment.ParentID = &parent.ID
			if txErr := tx.Comments().IncReplyCount(ctx, parent.ID); txErr != nil {
				return txErr
			}
			event.Kind = notifications.EventCommentReply
			event.ParentCommentOwnerID = &parent.ProfileID
		}

		if txErr := tx.Comments().Create(ctx, comment); txErr != nil {
			return txErr
		}
		return tx.Posts().IncCommentCount(ctx, post.ID)
	})
	if err != nil {
		return nil, err
	}

	event.EntityID = comment.ID
	s.fanout.Dispatch(ctx, event)

	return comment, nil
}

// UpdateComment rewrites a comment's content and flags it as edited. Only the
// author may edit.
func (s *ContentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (comment *models.Comment, err error) {
	defer func() { observability.RecordMutation("update_comment", err) }()

	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxContentLen {
		return nil, models.NewValidationError("Content too long (max 5000 characters)")
	}

	comment, err = s.store.Comments().GetByID(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}
	if comment.ProfileID != in.AuthorID {
		return nil, models.NewForbiddenError("only the author can edit a comment")
	}

	comment.Content = in.Content
	comment.Mentions = content.ExtractMentions(in.Content)
	comment.IsEdited = true

	if err = s.store.Comments().Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment soft-deletes a comment. The comment author or the post owner
// may delete. Counters on the post and parent comment are decremented.
func (s *ContentService) DeleteComment(ctx context.Context, actorID, commentID uuid.UUID) (err error) {
	defer func() { observability.RecordMutation("delete_comment", err) }()

	return s.store.InTx(ctx, func(tx repository.Store) error {
		comment, txErr := tx.Comments().GetByID(ctx, commentID)
		if txErr != nil {
			return txErr
		}
		post, txErr := tx.Posts().GetByID(ctx, comment.PostID)
		if txErr != nil {
			return txErr
		}
		if comment.ProfileID != actorID && post.ProfileID != actorID {
			return models.NewForbiddenError("only the comment author or post owner can delete a comment")
		}
		if txErr := tx.Comments().Delete(ctx, commentID); txErr != nil {
			return txErr
		}
		if txErr := tx.Posts().DecCommentCount(ctx, comment.PostID); txErr != nil {
			return txErr
		}
		if comment.ParentID != nil {
			return tx.Comments().DecReplyCount(ctx, *comment.ParentID)
		}
		return nil
	})
}
