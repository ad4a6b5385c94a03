// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"time"

	"loomline/internal/models"
	"loomline/internal/repository"
	"loomline/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Factory builds domain entities through the service layer so that every
// seeded mutation keeps counters, hashtags, and notifications consistent,
// exactly as production traffic would.
type Factory struct {
	store    repository.Store
	profiles *service.ProfileService
	graph    *service.GraphService
	content  *service.ContentService
}

// NewFactory creates a Factory bound to the given services.
func NewFactory(store repository.Store, profiles *service.ProfileService, graph *service.GraphService, content *service.ContentService) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{store: store, profiles: profiles, graph: graph, content: content}
}

// CreateProfile constructs and persists a sample profile. Optional override
// functions may modify the input before it is submitted.
func (f *Factory) CreateProfile(ctx context.Context, overrides ...func(*service.CreateProfileInput)) (*models.Profile, error) {
	in := service.CreateProfileInput{
		ExternalUserID: uuid.New(),
		Username:       fmt.Sprintf("%s_%d", gofakeit.Username(), gofakeit.Number(100, 999)),
		DisplayName:    gofakeit.Name(),
		Bio:            gofakeit.Sentence(10),
		AvatarURL:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsPrivate:      gofakeit.Number(0, 9) == 0,
	}
	for _, override := range overrides {
		override(&in)
	}
	return f.profiles.CreateProfile(ctx, in)
}

// CreatePost persists a sample post authored by the given profile. Roughly a
// third of generated posts carry a hashtag and a fifth mention another
// profile from the pool.
func (f *Factory) CreatePost(ctx context.Context, author *models.Profile, pool []*models.Profile) (*models.Post, error) {
	text := gofakeit.Sentence(gofakeit.Number(5, 20))
	if gofakeit.Number(0, 2) == 0 {
		text += " #" + gofakeit.BuzzWord()
	}
	if len(pool) > 0 && gofakeit.Number(0, 4) == 0 {
		other := pool[gofakeit.Number(0, len(pool)-1)]
		if other.ID != author.ID {
			text += " @" + other.Username
		}
	}
	return f.content.CreatePost(ctx, service.CreatePostInput{
		AuthorID: author.ID,
		Content:  text,
	})
}

// CreateComment persists a sample comment on the given post.
func (f *Factory) CreateComment(ctx context.Context, author *models.Profile, post *models.Post) (*models.Comment, error) {
	return f.content.CreateComment(ctx, service.CreateCommentInput{
		PostID:   post.ID,
		AuthorID: author.ID,
		Content:  gofakeit.Sentence(gofakeit.Number(3, 12)),
	})
}
