package cached

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-api/internal/adapter/cache"
	domain "user-api/internal/domain/user"
	"user-api/internal/usecase/user"
)

// UserRepository decorates a persistent user.Repository with cache-aside
// reads by id. Writes go to the datastore first and then invalidate.
type UserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

var _ user.Repository = (*UserRepository)(nil)

// NewUserRepository wraps dbRepo with the given cache.
func NewUserRepository(dbRepo user.Repository, c cache.UserCache, log *zap.Logger) *UserRepository {
	return &UserRepository{
		dbRepo: dbRepo,
		cache:  c,
		log:    log,
	}
}

// Create delegates to the DB repository.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.dbRepo.Create(ctx, u)
}

// GetByID serves from cache when possible. Concurrent misses for the same id
// share one datastore read.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if u := r.fromCache(ctx, id); u != nil {
		return u, nil
	}

	result, err, _ := r.group.Do(cache.Key(id), func() (any, error) {
		if u := r.fromCache(ctx, id); u != nil {
			return u, nil
		}

		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := r.cache.Set(ctx, u); err != nil {
			r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

func (r *UserRepository) fromCache(ctx context.Context, id int64) *domain.User {
	u, err := r.cache.Get(ctx, id)
	if err != nil {
		r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
		return nil
	}
	return u
}

// GetByEmail delegates to the DB repository.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// Update updates the user in DB and invalidates the cache.
func (r *UserRepository) Update(ctx context.Context, id int64, p domain.Patch) (*domain.User, error) {
	u, err := r.dbRepo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return u, nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *UserRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	u, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return u, nil
}

func (r *UserRepository) invalidate(ctx context.Context, id int64) {
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cached user", zap.Int64("id", id), zap.Error(err))
	}
}

// List delegates to the DB repository.
func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.List(ctx)
}

// Ping delegates to the DB repository.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.dbRepo.Ping(ctx)
}
