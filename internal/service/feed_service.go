package service

import (
	"context"

	"loomline/internal/models"
	"loomline/internal/repository"

	"github.com/google/uuid"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageBounds clamps limit/offset to sane values.
func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// FeedService serves the read side of the graph: follower and following
// lists, home feeds, thread replies, likers, comments, and trending hashtags.
// Reads never mutate state.
type FeedService struct {
	store repository.Store
}

// NewFeedService creates a FeedService.
func NewFeedService(store repository.Store) *FeedService {
	return &FeedService{store: store}
}

// checkGraphVisibility gates follower/following lists of private profiles:
// only the owner and approved followers may read them.
func (s *FeedService) checkGraphVisibility(ctx context.Context, viewerID, ownerID uuid.UUID) error {
	if viewerID == ownerID {
		return nil
	}
	owner, err := s.store.Profiles().GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if !owner.IsPrivate {
		return nil
	}
	approved, err := s.store.Follows().IsApprovedFollower(ctx, viewerID, ownerID)
	if err != nil {
		return err
	}
	if !approved {
		return models.NewForbiddenError("profile is private")
	}
	return nil
}

// annotateProfiles fills the per-viewer IsFollowing/IsFollowedBy flags.
func (s *FeedService) annotateProfiles(ctx context.Context, viewerID uuid.UUID, profiles []*models.Profile) error {
	if len(profiles) == 0 || viewerID == uuid.Nil {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}
	following, err := s.store.Follows().FollowingOf(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	followers, err := s.store.Follows().FollowersOf(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		p.IsFollowing = following[p.ID]
		p.IsFollowedBy = followers[p.ID]
	}
	return nil
}

// annotatePosts fills the per-viewer IsLiked flag.
func (s *FeedService) annotatePosts(ctx context.Context, viewerID uuid.UUID, posts []*models.Post) error {
	if len(posts) == 0 || viewerID == uuid.Nil {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	liked, err := s.store.Likes().LikedPostIDs(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	likedSet := make(map[uuid.UUID]bool, len(liked))
	for _, id := range liked {
		likedSet[id] = true
	}
	for _, p := range posts {
		p.IsLiked = likedSet[p.ID]
	}
	return nil
}

// GetFollowers returns the approved followers of a profile, newest first.
func (s *FeedService) GetFollowers(ctx context.Context, viewerID, profileID uuid.UUID, limit, offset int) ([]*models.Profile, error) {
	if err := s.checkGraphVisibility(ctx, viewerID, profileID); err != nil {
		return nil, err
	}
	limit, offset = pageBounds(limit, offset)
	profiles, err := s.store.Follows().ListFollowers(ctx, profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.annotateProfiles(ctx, viewerID, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetFollowing returns the profiles a profile has approved follows to.
func (s *FeedService) GetFollowing(ctx context.Context, viewerID, profileID uuid.UUID, limit, offset int) ([]*models.Profile, error) {
	if err := s.checkGraphVisibility(ctx, viewerID, profileID); err != nil {
		return nil, err
	}
	limit, offset = pageBounds(limit, offset)
	profiles, err := s.store.Follows().ListFollowing(ctx, profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.annotateProfiles(ctx, viewerID, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// GetFeed returns root posts authored by the viewer and everyone the viewer
// has an approved follow to, newest first, annotated with IsLiked.
func (s *FeedService) GetFeed(ctx context.Context, viewerID uuid.UUID, limit, offset int) ([]*models.Post, error) {
	authorIDs, err := s.store.Follows().ApprovedFollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	authorIDs = append(authorIDs, viewerID)

	limit, offset = pageBounds(limit, offset)
	posts, err := s.store.Posts().ListFeed(ctx, authorIDs, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.annotatePosts(ctx, viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetReplies returns the direct replies to a post in conversation order.
func (s *FeedService) GetReplies(ctx context.Context, viewerID, postID uuid.UUID, limit, offset int) ([]*models.Post, error) {
	if _, err := s.store.Posts().GetByID(ctx, postID); err != nil {
		return nil, err
	}
	limit, offset = pageBounds(limit, offset)
	posts, err := s.store.Posts().ListReplies(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.annotatePosts(ctx, viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetProfilePosts returns a profile's posts, newest first.
func (s *FeedService) GetProfilePosts(ctx context.Context, viewerID, profileID uuid.UUID, limit, offset int) ([]*models.Post, error) {
	if err := s.checkGraphVisibility(ctx, viewerID, profileID); err != nil {
		return nil, err
	}
	limit, offset = pageBounds(limit, offset)
	posts, err := s.store.Posts().ListByProfile(ctx, profileID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.annotatePosts(ctx, viewerID, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostLikers returns the profiles that liked a post, newest like first.
func (s *FeedService) GetPostLikers(ctx context.Context, viewerID, postID uuid.UUID, limit, offset int) ([]*models.Profile, error) {
	if _, err := s.store.Posts().GetByID(ctx, postID); err != nil {
		return nil, err
	}
	limit, offset = pageBounds(limit, offset)
	profiles, err := s.store.Likes().ListPostLikers(ctx, postID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := s.annotateProfiles(ctx, viewerID, profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ListComments returns the top-level comments of a post, newest first.
func (s *FeedService) ListComments(ctx context.Context, postID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.store.Posts().GetByID(ctx, postID); err != nil {
		return nil, err
	}
	limit, offset = pageBounds(limit, offset)
	return s.store.Comments().ListByPost(ctx, postID, limit, offset)
}

// ListCommentReplies returns the replies under a comment, oldest first.
func (s *FeedService) ListCommentReplies(ctx context.Context, commentID uuid.UUID, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.store.Comments().GetByID(ctx, commentID); err != nil {
		return nil, err
	}
	limit, offset = pageBounds(limit, offset)
	return s.store.Comments().ListReplies(ctx, commentID, limit, offset)
}

// GetTrendingHashtags returns hashtags ordered by decayed trend score.
func (s *FeedService) GetTrendingHashtags(ctx context.Context, limit int) ([]*models.Hashtag, error) {
	limit, _ = pageBounds(limit, 0)
	return s.store.Hashtags().ListTrending(ctx, limit)
}
