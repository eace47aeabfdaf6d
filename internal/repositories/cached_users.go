package repositories

import (
	"context"
	"time"

	"github.com/applyflow/applyflow/internal/entities"
	gocache "github.com/patrickmn/go-cache"
)

type userRepository interface {
	GetByID(ctx context.Context, id string) (*entities.User, error)
	Upsert(ctx context.Context, user entities.User) error
}

// CachedUsers memoizes the claims-driven upsert so authenticated requests
// hit the users table at most once per cache window per user.
type CachedUsers struct {
	repo  userRepository
	cache *gocache.Cache
}

func NewCachedUsers(repo userRepository) *CachedUsers {
	return &CachedUsers{repo: repo, cache: gocache.New(15*time.Minute, 30*time.Minute)}
}

func (c *CachedUsers) Ensure(ctx context.Context, user entities.User) error {
	if _, found := c.cache.Get(user.ID); found {
		return nil
	}

	if err := c.repo.Upsert(ctx, user); err != nil {
		return err
	}

	_ = c.cache.Add(user.ID, struct{}{}, gocache.DefaultExpiration)
	return nil
}

func (c *CachedUsers) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return c.repo.GetByID(ctx, id)
}
