package profileimage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// LocalStore implements Repo on the local filesystem, one file per user.
// Replacement is atomic: the payload is written to a temp file and renamed
// over the previous one.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a local store rooted at baseDir.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Save(ctx context.Context, img Image) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	tmpPath := filepath.Join(s.baseDir, uuid.NewString()+".tmp")
	if err := os.WriteFile(tmpPath, img.Data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.imagePath(img.UserID)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace image file: %w", err)
	}
	return nil
}

func (s *LocalStore) FindByUserID(ctx context.Context, userID string) (Image, error) {
	if err := ctx.Err(); err != nil {
		return Image{}, err
	}
	path := s.imagePath(userID)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Image{}, ErrNotFound
		}
		return Image{}, fmt.Errorf("read image file: %w", err)
	}
	updatedAt := time.Now().UTC()
	if info, err := os.Stat(path); err == nil {
		updatedAt = info.ModTime().UTC()
	}
	return Image{UserID: userID, Data: data, UpdatedAt: updatedAt}, nil
}

func (s *LocalStore) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.imagePath(userID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove image file: %w", err)
	}
	return nil
}

// imagePath hashes the user id so client-controlled identifiers never reach
// the filesystem as path segments.
func (s *LocalStore) imagePath(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return filepath.Join(s.baseDir, hex.EncodeToString(sum[:])+".jpg")
}
