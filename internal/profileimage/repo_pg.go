package profileimage

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres. The upsert is a single statement,
// so the one-record-per-user invariant holds without an explicit transaction.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Save(ctx context.Context, img Image) error {
	const query = `
INSERT INTO profile_images (user_id, image_data, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (user_id) DO UPDATE SET
  image_data = EXCLUDED.image_data,
  updated_at = now()`
	_, err := r.DB.ExecContext(ctx, query, img.UserID, img.Data)
	return err
}

func (r *PGRepo) FindByUserID(ctx context.Context, userID string) (Image, error) {
	const query = `
SELECT user_id, image_data, updated_at
FROM profile_images
WHERE user_id = $1
LIMIT 1`
	var img Image
	var updatedAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&img.UserID, &img.Data, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Image{}, ErrNotFound
		}
		return Image{}, err
	}
	if updatedAt.Valid {
		img.UpdatedAt = updatedAt.Time
	} else {
		img.UpdatedAt = time.Now().UTC()
	}
	return img, nil
}

func (r *PGRepo) Delete(ctx context.Context, userID string) error {
	const query = `DELETE FROM profile_images WHERE user_id = $1`
	_, err := r.DB.ExecContext(ctx, query, userID)
	return err
}
