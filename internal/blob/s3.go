package blob

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/dreamboard/dreamboard/internal/config"
)

const defaultS3Timeout = 30 * time.Second

// s3API is the part of the S3 client the store uses.
type s3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// S3Store keeps image bytes in an S3 compatible bucket (AWS S3, MinIO, R2, ...).
type S3Store struct {
	client  s3API
	bucket  string
	timeout time.Duration
}

// NewS3Store connects to the bucket and creates it when missing.
func NewS3Store(ctx context.Context, cfg config.S3) (*S3Store, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	store := newS3Store(client, cfg.Bucket, cfg.Timeout)
	if err = store.ensureBucket(ctx); err != nil {
		return nil, err
	}

	log.Info().Str("bucket", cfg.Bucket).Str("region", cfg.Region).Str("endpoint", cfg.Endpoint).
		Msg("s3 blob store initialized")

	return store, nil
}

func newS3Store(client s3API, bucket string, timeout time.Duration) *S3Store {
	if timeout <= 0 {
		timeout = defaultS3Timeout
	}

	return &S3Store{client: client, bucket: bucket, timeout: timeout}
}

// ensureBucket checks if the bucket exists and creates it if not.
func (s *S3Store) ensureBucket(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err == nil {
		return nil
	}

	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return errors.Wrapf(err, "bucket %q does not exist and could not be created", s.bucket)
	}

	log.Info().Str("bucket", s.bucket).Msg("created s3 bucket")

	return nil
}

// Put implements Store.
func (s *S3Store) Put(ctx context.Context, obj Object) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if obj.Filename == "" {
		obj.Filename = NewFilename(obj.ContentType)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(obj.Filename),
		Body:          bytes.NewReader(obj.Data),
		ContentType:   aws.String(normalizeContentType(obj.ContentType)),
		ContentLength: aws.Int64(int64(len(obj.Data))),
		CacheControl:  aws.String(CacheControl),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to upload to s3")
	}

	return obj.Filename, nil
}

// Get implements Store.
func (s *S3Store) Get(ctx context.Context, filename string) (*Object, error) {
	if filename == "" {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(filename),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to download from s3")
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read s3 object")
	}

	return &Object{
		Filename:    filename,
		ContentType: aws.ToString(out.ContentType),
		Data:        data,
	}, nil
}

// Delete implements Store. S3 deletes are idempotent, so the object is looked up first.
func (s *S3Store) Delete(ctx context.Context, filename string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(filename),
	})
	if err != nil {
		if isNotFound(err) {
			return ErrNotFound
		}
		return errors.Wrap(err, "failed to stat s3 object")
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(filename),
	})

	return errors.Wrap(err, "failed to delete from s3")
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	switch apiErr.ErrorCode() {
	case "NoSuchKey", "NotFound":
		return true
	}

	return false
}
