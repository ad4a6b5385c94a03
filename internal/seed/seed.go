package seed

import (
	"context"
	"log/slog"

	"loomline/internal/models"
	"loomline/internal/notifications"
	"loomline/internal/repository"
	"loomline/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumProfiles  int
	NumPosts     int
	FollowsEach  int
	LikesPerPost int
	ShouldClean  bool
}

// Run populates the database with a demo social mesh: profiles, a follow
// graph, posts with hashtags and mentions, comments, and likes. Everything
// goes through the service layer so counters and notifications come out the
// same as they would under real traffic.
func Run(ctx context.Context, db *gorm.DB, logger *slog.Logger, opts Options) error {
	if opts.NumProfiles <= 0 {
		opts.NumProfiles = 25
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 120
	}
	if opts.FollowsEach <= 0 {
		opts.FollowsEach = 5
	}
	if opts.LikesPerPost <= 0 {
		opts.LikesPerPost = 3
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return err
		}
	}

	store := repository.NewStore(db)
	fanout := notifications.NewFanout(store, notifications.NoopSink{}, logger, 0)
	profilesSvc := service.NewProfileService(store)
	graphSvc := service.NewGraphService(store, fanout)
	contentSvc := service.NewContentService(store, fanout)

	factory := NewFactory(store, profilesSvc, graphSvc, contentSvc)

	profiles := make([]*models.Profile, 0, opts.NumProfiles)
	for i := 0; i < opts.NumProfiles; i++ {
		p, err := factory.CreateProfile(ctx)
		if err != nil {
			return err
		}
		profiles = append(profiles, p)
	}
	logger.Info("seeded profiles", slog.Int("count", len(profiles)))

	for _, p := range profiles {
		for i := 0; i < opts.FollowsEach; i++ {
			target := profiles[gofakeit.Number(0, len(profiles)-1)]
			if target.ID == p.ID {
				continue
			}
			if _, err := graphSvc.Follow(ctx, p.ID, target.ID); err != nil {
				if models.IsConflict(err) {
					continue
				}
				return err
			}
		}
	}
	logger.Info("seeded follow graph")

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := profiles[gofakeit.Number(0, len(profiles)-1)]
		post, err := factory.CreatePost(ctx, author, profiles)
		if err != nil {
			return err
		}
		posts = append(posts, post)
	}
	logger.Info("seeded posts", slog.Int("count", len(posts)))

	for _, post := range posts {
		if gofakeit.Number(0, 1) == 0 {
			author := profiles[gofakeit.Number(0, len(profiles)-1)]
			if _, err := factory.CreateComment(ctx, author, post); err != nil {
				return err
			}
		}
		for i := 0; i < opts.LikesPerPost; i++ {
			liker := profiles[gofakeit.Number(0, len(profiles)-1)]
			if err := graphSvc.Like(ctx, liker.ID, models.LikeTargetPost, post.ID); err != nil {
				if models.IsConflict(err) {
					continue
				}
				return err
			}
		}
	}
	logger.Info("seeded comments and likes")

	return nil
}

func clean(db *gorm.DB) error {
	tables := []string{"notifications", "likes", "comments", "posts", "follows", "hashtags", "profiles"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
