package repositories

import (
	"context"
	gocache "github.com/patrickmn/go-cache"
	"slices"
	"time"

	"github.com/maxaizer/hirenearby/internal/domain/models"
)

// CachedUsers serves GetByID from memory; every authenticated request resolves its user through it.
type CachedUsers struct {
	*Users
	cache *gocache.Cache
}

func NewCachedUsers(repo *Users, ttl time.Duration) *CachedUsers {
	return &CachedUsers{Users: repo, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	if value, found := c.cache.Get(id); found {
		user := value.(models.User)
		user.Skills = slices.Clone(user.Skills)
		return &user, nil
	}

	user, err := c.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cached := *user
	cached.Skills = slices.Clone(user.Skills)
	c.cache.Set(id, cached, gocache.DefaultExpiration)
	return user, nil
}

func (c *CachedUsers) SetVerified(ctx context.Context, id string, verified bool) (*models.User, error) {
	defer c.cache.Delete(id)
	return c.Users.SetVerified(ctx, id, verified)
}

func (c *CachedUsers) UpdateProfile(ctx context.Context, user models.User) (*models.User, error) {
	defer c.cache.Delete(user.ID)
	return c.Users.UpdateProfile(ctx, user)
}
