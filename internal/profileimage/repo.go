package profileimage

import "context"

// Repo persists at most one image record per user id.
type Repo interface {
	FindByUserID(ctx context.Context, userID string) (Image, error)
	// Save upserts the record for img.UserID. Implementations must replace
	// atomically per key.
	Save(ctx context.Context, img Image) error
	// Delete removes the record; deleting an absent record is not an error.
	Delete(ctx context.Context, userID string) error
}
