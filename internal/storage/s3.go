package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectAPI is the subset of the S3 client used by S3Medium.
type ObjectAPI interface {
	manager.UploadAPIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Medium keeps the document as a single object in Amazon S3 (or compatible APIs).
type S3Medium struct {
	client   ObjectAPI
	uploader *manager.Uploader
	bucket   string
	key      string
}

var errBucketRequired = errors.New("storage bucket is required")

// S3Config locates the object holding the users document.
type S3Config struct {
	Bucket   string
	Key      string
	Region   string
	Endpoint string
	Profile  string
}

// OpenS3 resolves AWS credentials for cfg and returns a medium over its object.
// A custom Endpoint selects path-style addressing, as MinIO and similar servers expect.
func OpenS3(ctx context.Context, cfg S3Config) (*S3Medium, error) {
	if cfg.Bucket == "" {
		return nil, errBucketRequired
	}

	var loadOpts []func(*awscfg.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awscfg.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.Profile))
	}
	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, withEndpoint(cfg.Endpoint))
	return NewS3Medium(client, cfg.Bucket, cfg.Key)
}

func withEndpoint(endpoint string) func(*s3.Options) {
	return func(o *s3.Options) {
		if endpoint == "" {
			return
		}
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	}
}

func NewS3Medium(client ObjectAPI, bucket, key string) (*S3Medium, error) {
	if bucket == "" {
		return nil, errBucketRequired
	}
	key = strings.Trim(key, "/")
	if key == "" {
		key = DefaultFileName
	}
	return &S3Medium{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   bucket,
		key:      key,
	}, nil
}

func (m *S3Medium) String() string {
	return fmt.Sprintf("s3://%s/%s", m.bucket, m.key)
}

func (m *S3Medium) Read(ctx context.Context) ([]byte, error) {
	out, err := m.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(m.bucket),
		Key:    aws.String(m.key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("get object %s: %w", m, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object %s: %w", m, err)
	}
	return data, nil
}

func (m *S3Medium) Write(ctx context.Context, data []byte) error {
	_, err := m.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(m.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", m, err)
	}
	return nil
}

var _ Medium = (*S3Medium)(nil)
