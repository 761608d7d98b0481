package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rohits-web03/robofriends/internal/config"
	"github.com/rohits-web03/robofriends/internal/models"
)

var ErrSnapshotNotConfigured = errors.New("snapshot bucket is not configured")

// SnapshotStore writes JSON exports of the directory to an S3-compatible bucket.
type SnapshotStore struct {
	client *s3.Client
	bucket string
}

// SnapshotEndpoint resolves the bucket endpoint: R2 when an account id is set,
// otherwise the explicit endpoint (empty means AWS S3).
func SnapshotEndpoint(cfg config.SnapshotConfig) string {
	if cfg.AccountID != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	}
	return cfg.Endpoint
}

// NewSnapshotStore initializes the S3 client using static credentials and custom endpoint.
func NewSnapshotStore(cfg config.SnapshotConfig) (*SnapshotStore, error) {
	if cfg.Bucket == "" {
		return nil, ErrSnapshotNotConfigured
	}

	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}
	endpoint := SnapshotEndpoint(cfg)

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = true
	})

	return &SnapshotStore{client: client, bucket: cfg.Bucket}, nil
}

// SnapshotKey names a snapshot taken at t.
func SnapshotKey(t time.Time) string {
	return "snapshots/robots-" + t.UTC().Format("20060102T150405Z") + ".json"
}

// Put uploads robots as a JSON array under key.
func (s *SnapshotStore) Put(ctx context.Context, key string, robots []models.Robot) error {
	body, err := json.Marshal(robots)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload snapshot %s: %w", key, err)
	}
	return nil
}

// PresignGet creates a presigned URL for downloading a snapshot.
func (s *SnapshotStore) PresignGet(ctx context.Context, key string, expires time.Duration) (string, error) {
	presigner := s3.NewPresignClient(s.client)
	req, err := presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(expires))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

// Exists reports whether a snapshot is already stored under key. A missing
// object is not an error.
func (s *SnapshotStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nf *s3types.NotFound
		if errors.As(err, &nf) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

var ErrSnapshotExists = errors.New("snapshot already exists")

// RobotLister is the read side of the store that an export needs.
type RobotLister interface {
	List(ctx context.Context) ([]models.Robot, error)
}

// ExportResult describes a finished export.
type ExportResult struct {
	Key   string
	URL   string
	Count int
}

// Export uploads the current directory under key and returns a download URL
// valid for expires. An existing key is only replaced when overwrite is set.
func (s *SnapshotStore) Export(ctx context.Context, robots RobotLister, key string, overwrite bool, expires time.Duration) (ExportResult, error) {
	if !overwrite {
		exists, err := s.Exists(ctx, key)
		if err != nil {
			return ExportResult{}, fmt.Errorf("check snapshot %s: %w", key, err)
		}
		if exists {
			return ExportResult{}, fmt.Errorf("%w: %s", ErrSnapshotExists, key)
		}
	}

	list, err := robots.List(ctx)
	if err != nil {
		return ExportResult{}, fmt.Errorf("list robots: %w", err)
	}
	if err := s.Put(ctx, key, list); err != nil {
		return ExportResult{}, err
	}
	url, err := s.PresignGet(ctx, key, expires)
	if err != nil {
		return ExportResult{}, fmt.Errorf("presign snapshot %s: %w", key, err)
	}
	return ExportResult{Key: key, URL: url, Count: len(list)}, nil
}
