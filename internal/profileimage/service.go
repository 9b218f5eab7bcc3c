package profileimage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"image"
	"image/jpeg"
	"strings"
	"sync"
	"time"

	// Decoders for the accepted upload formats. JPEG is imported directly
	// for re-encoding.
	_ "image/gif"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	// Stored images are normalized to a fixed square size.
	targetSize = 120
	// JPEG re-encode quality (out of 100).
	jpegQuality = 80
)

// Service ingests uploaded images and maintains one normalized, compressed
// copy per user.
type Service struct {
	Repo  Repo
	locks stripedMutex
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Save validates, transcodes, and upserts the user's profile image.
// Validation failures return ErrInvalidInput before any decode is attempted;
// undecodable payloads return ErrInvalidImage. The write is serialized per
// user id so concurrent uploads cannot interleave the lookup and the write.
func (s *Service) Save(ctx context.Context, userID string, data []byte, contentType string) (Image, error) {
	if s == nil || s.Repo == nil {
		return Image{}, errors.New("profile image service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Image{}, errors.New("user id is required")
	}
	if len(data) == 0 || !strings.HasPrefix(contentType, "image/") {
		return Image{}, ErrInvalidInput
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	compressed, err := transcode(src)
	if err != nil {
		return Image{}, fmt.Errorf("transcode profile image: %w", err)
	}

	unlock := s.locks.lock(userID)
	defer unlock()

	img := Image{
		UserID:    userID,
		Data:      compressed,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Repo.Save(ctx, img); err != nil {
		return Image{}, fmt.Errorf("save profile image: %w", err)
	}
	return img, nil
}

// Encoded returns the stored image as a standard Base64 string with no line
// wrapping. ErrNotFound distinguishes "never uploaded" from failure.
func (s *Service) Encoded(ctx context.Context, userID string) (string, error) {
	if s == nil || s.Repo == nil {
		return "", errors.New("profile image service not configured")
	}
	img, err := s.Repo.FindByUserID(ctx, userID)
	if err != nil {
		return "", err
	}
	return img.Base64(), nil
}

// Delete removes the user's image. Deleting when no record exists succeeds.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if s == nil || s.Repo == nil {
		return errors.New("profile image service not configured")
	}
	unlock := s.locks.lock(userID)
	defer unlock()

	if err := s.Repo.Delete(ctx, userID); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("delete profile image: %w", err)
	}
	return nil
}

func transcode(src image.Image) ([]byte, error) {
	dst := image.NewRGBA(image.Rect(0, 0, targetSize, targetSize))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// stripedMutex serializes operations per user id with a bounded number of
// mutexes. Two user ids may share a stripe; that only costs contention.
type stripedMutex struct {
	stripes [64]sync.Mutex
}

func (m *stripedMutex) lock(key string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	stripe := &m.stripes[h.Sum32()%uint32(len(m.stripes))]
	stripe.Lock()
	return stripe.Unlock
}
