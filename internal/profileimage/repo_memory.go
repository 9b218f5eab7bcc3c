package profileimage

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Image
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]Image),
	}
}

func (r *MemoryRepo) Save(ctx context.Context, img Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := img
	stored.Data = append([]byte(nil), img.Data...)
	r.data[img.UserID] = stored
	return nil
}

func (r *MemoryRepo) FindByUserID(ctx context.Context, userID string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	img, ok := r.data[userID]
	if !ok {
		return Image{}, ErrNotFound
	}
	out := img
	out.Data = append([]byte(nil), img.Data...)
	return out, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, userID)
	return nil
}
