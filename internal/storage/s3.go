package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/seclens/seclens/pkg/types"
)

// S3Config configures the S3 result store.
type S3Config struct {
	Bucket   string `mapstructure:"bucket"`
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"` // for S3-compatible services (MinIO, etc.)
	Prefix   string `mapstructure:"prefix"`
	// Prefer IAM roles or environment credentials over setting these
	// directly. Never commit credentials to source control.
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// S3Store implements Store on S3 or an S3-compatible service
type S3Store struct {
	client *s3.Client
	config S3Config
}

// NewS3Store creates an S3-backed result store
func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return &S3Store{client: client, config: cfg}, nil
}

// SaveResult uploads a result document
func (s *S3Store) SaveResult(ctx context.Context, result *types.EvaluationResult) error {
	if result.SessionID == "" {
		return fmt.Errorf("result has no session id")
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.config.Bucket),
		Key:         aws.String(s.key(result.SessionID)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload result %s: %w", result.SessionID, err)
	}
	return nil
}

// LoadResult downloads a result by session id
func (s *S3Store) LoadResult(ctx context.Context, sessionID string) (*types.EvaluationResult, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.key(sessionID)),
	})
	if err != nil {
		var noKey *s3types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to download result %s: %w", sessionID, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read result %s: %w", sessionID, err)
	}

	var result types.EvaluationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse result %s: %w", sessionID, err)
	}
	return &result, nil
}

// ListResults lists stored results, newest first. Listing downloads
// each document to build its metadata; result counts are expected to
// stay small enough for that to be acceptable.
func (s *S3Store) ListResults(ctx context.Context) ([]ResultInfo, error) {
	var infos []ResultInfo

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.config.Bucket),
		Prefix: aws.String(s.keyPrefix()),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list results: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, ".json") {
				continue
			}
			sessionID := strings.TrimSuffix(path.Base(key), ".json")
			result, err := s.LoadResult(ctx, sessionID)
			if err != nil {
				continue
			}
			infos = append(infos, info(result))
		}
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos, nil
}

// DeleteResult removes a stored result
func (s *S3Store) DeleteResult(ctx context.Context, sessionID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.config.Bucket),
		Key:    aws.String(s.key(sessionID)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete result %s: %w", sessionID, err)
	}
	return nil
}

func (s *S3Store) keyPrefix() string {
	if s.config.Prefix == "" {
		return "sessions/"
	}
	return strings.TrimSuffix(s.config.Prefix, "/") + "/sessions/"
}

func (s *S3Store) key(sessionID string) string {
	return s.keyPrefix() + sessionID + ".json"
}
