package profileimage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store implements Repo against an S3 bucket, one object per user id.
// A PutObject replaces the whole object, so upserts are atomic per key.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store builds an S3-backed store using the default AWS credential chain.
func NewS3Store(ctx context.Context, region, bucket, prefix string) (*S3Store, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, errors.New("s3 bucket is required")
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &S3Store{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *S3Store) Save(ctx context.Context, img Image) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(img.UserID)),
		Body:        bytes.NewReader(img.Data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return fmt.Errorf("put image object: %w", err)
	}
	return nil
}

func (s *S3Store) FindByUserID(ctx context.Context, userID string) (Image, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(userID)),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return Image{}, ErrNotFound
		}
		return Image{}, fmt.Errorf("get image object: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return Image{}, fmt.Errorf("read image object: %w", err)
	}

	updatedAt := time.Now().UTC()
	if out.LastModified != nil {
		updatedAt = out.LastModified.UTC()
	}
	return Image{UserID: userID, Data: data, UpdatedAt: updatedAt}, nil
}

func (s *S3Store) Delete(ctx context.Context, userID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(userID)),
	})
	if err != nil {
		return fmt.Errorf("delete image object: %w", err)
	}
	return nil
}

func (s *S3Store) objectKey(userID string) string {
	return s.prefix + userID + ".jpg"
}
