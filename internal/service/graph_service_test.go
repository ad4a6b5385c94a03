package service

import (
	"context"
	"testing"

	"loomline/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphService_FollowUpdatesCountersAndNotifies(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	bob := e.createProfile(t, "bob", false)

	follow, err := e.graph.Follow(ctx, ada.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, follow.IsApproved)

	assert.Equal(t, 1, e.getProfile(t, bob.ID).FollowerCount)
	assert.Equal(t, 1, e.getProfile(t, ada.ID).FollowingCount)

	got := e.notificationsFor(t, bob.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationFollow, got[0].Type)
	assert.Equal(t, "@ada started following you", got[0].Message)
}

func TestGraphService_FollowSelf(t *testing.T) {
	e := newTestEnv(t)
	ada := e.createProfile(t, "ada", false)

	_, err := e.graph.Follow(context.Background(), ada.ID, ada.ID)
	assert.True(t, models.IsSelfReference(err))
}

func TestGraphService_FollowUnknownTarget(t *testing.T) {
	e := newTestEnv(t)
	ada := e.createProfile(t, "ada", false)

	_, err := e.graph.Follow(context.Background(), ada.ID, uuid.New())
	assert.True(t, models.IsNotFound(err))
	assert.Equal(t, 0, e.getProfile(t, ada.ID).FollowingCount)
}

func TestGraphService_DoubleFollowConflict(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	bob := e.createProfile(t, "bob", false)

	_, err := e.graph.Follow(ctx, ada.ID, bob.ID)
	require.NoError(t, err)

	_, err = e.graph.Follow(ctx, ada.ID, bob.ID)
	assert.True(t, models.IsConflict(err))

	// The failed attempt must not move counters a second time.
	assert.Equal(t, 1, e.getProfile(t, bob.ID).FollowerCount)
	assert.Equal(t, 1, e.getProfile(t, ada.ID).FollowingCount)
}

func TestGraphService_FollowPrivateIsPending(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	eve := e.createProfile(t, "eve", true)

	follow, err := e.graph.Follow(ctx, ada.ID, eve.ID)
	require.NoError(t, err)
	assert.False(t, follow.IsApproved)

	// Pending edges never count.
	assert.Equal(t, 0, e.getProfile(t, eve.ID).FollowerCount)
	assert.Equal(t, 0, e.getProfile(t, ada.ID).FollowingCount)

	got := e.notificationsFor(t, eve.ID)
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationFollowRequest, got[0].Type)
	assert.Equal(t, "@ada requested to follow you", got[0].Message)
}

func TestGraphService_FollowUnfollowRoundTrip(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	bob := e.createProfile(t, "bob", false)

	_, err := e.graph.Follow(ctx, ada.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, e.graph.Unfollow(ctx, ada.ID, bob.ID))

	assert.Equal(t, 0, e.getProfile(t, bob.ID).FollowerCount)
	assert.Equal(t, 0, e.getProfile(t, ada.ID).FollowingCount)

	// Unfollow without an edge is NotFound.
	err = e.graph.Unfollow(ctx, ada.ID, bob.ID)
	assert.True(t, models.IsNotFound(err))
}

func TestGraphService_UnfollowPendingLeavesCountersAlone(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	eve := e.createProfile(t, "eve", true)

	_, err := e.graph.Follow(ctx, ada.ID, eve.ID)
	require.NoError(t, err)
	require.NoError(t, e.graph.Unfollow(ctx, ada.ID, eve.ID))

	assert.Equal(t, 0, e.getProfile(t, eve.ID).FollowerCount)
	assert.Equal(t, 0, e.getProfile(t, ada.ID).FollowingCount)
}

func TestGraphService_LikeUnlikePost(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	bob := e.createProfile(t, "bob", false)

	post, err := e.content.CreatePost(ctx, CreatePostInput{AuthorID: bob.ID, Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, e.graph.Like(ctx, ada.ID, models.LikeTargetPost, post.ID))

	got, err := e.store.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikeCount)

	bobGot := e.notificationsFor(t, bob.ID)
	require.Len(t, bobGot, 1)
	assert.Equal(t, models.NotificationLike, bobGot[0].Type)
	assert.Equal(t, "@ada liked your post", bobGot[0].Message)

	// Double like is a conflict and leaves the counter alone.
	err = e.graph.Like(ctx, ada.ID, models.LikeTargetPost, post.ID)
	assert.True(t, models.IsConflict(err))
	got, err = e.store.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikeCount)

	require.NoError(t, e.graph.Unlike(ctx, ada.ID, models.LikeTargetPost, post.ID))
	got, err = e.store.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikeCount)

	// Unliking again is NotFound and the counter never goes negative.
	err = e.graph.Unlike(ctx, ada.ID, models.LikeTargetPost, post.ID)
	assert.True(t, models.IsNotFound(err))
	got, err = e.store.Posts().GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.LikeCount)
}

func TestGraphService_LikeOwnPostNoNotification(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	post, err := e.content.CreatePost(ctx, CreatePostInput{AuthorID: ada.ID, Content: "hello"})
	require.NoError(t, err)

	require.NoError(t, e.graph.Like(ctx, ada.ID, models.LikeTargetPost, post.ID))
	assert.Empty(t, e.notificationsFor(t, ada.ID))
}

func TestGraphService_LikeComment(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	ada := e.createProfile(t, "ada", false)
	bob := e.createProfile(t, "bob", false)

	post, err := e.content.CreatePost(ctx, CreatePostInput{AuthorID: ada.ID, Content: "hello"})
	require.NoError(t, err)
	comment, err := e.content.CreateComment(ctx, CreateCommentInput{PostID: post.ID, AuthorID: bob.ID, Content: "nice"})
	require.NoError(t, err)

	require.NoError(t, e.graph.Like(ctx, ada.ID, models.LikeTargetComment, comment.ID))

	got, err := e.store.Comments().GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikeCount)

	bobGot := e.notificationsFor(t, bob.ID)
	require.Len(t, bobGot, 1)
	assert.Equal(t, "@ada liked your comment", bobGot[0].Message)
}
