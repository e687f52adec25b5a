package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/onesignal/pkg/config"
)

// S3Client defines the S3 operations used by S3Sink.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Config contains the bucket settings for S3Sink. Endpoint and
// ForcePathStyle are for S3-compatible services such as MinIO.
type S3Config struct {
	Bucket         string `env:"EXPORT_S3_BUCKET"`
	Region         string `env:"EXPORT_S3_REGION"`
	AccessKeyID    string `env:"EXPORT_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"EXPORT_S3_SECRET_KEY"`
	Endpoint       string `env:"EXPORT_S3_ENDPOINT"`
	Prefix         string `env:"EXPORT_S3_PREFIX" envDefault:"onesignal/exports/"`
	ForcePathStyle bool   `env:"EXPORT_S3_FORCE_PATH_STYLE"`
}

// LoadS3Config reads S3Config from the environment after loading the given .env files.
func LoadS3Config(files ...string) (S3Config, error) {
	cfg, err := config.LoadFrom[S3Config](files...)
	if err != nil {
		return S3Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// S3Option configures S3Sink.
type S3Option func(*s3Settings)

type s3Settings struct {
	client     S3Client
	httpClient *http.Client
	loadOpts   []func(*awsconfig.LoadOptions) error
	clientOpts []func(*s3.Options)
}

// WithS3Client uploads through client instead of building one from S3Config.
// The remaining options are ignored.
func WithS3Client(client S3Client) S3Option {
	return func(s *s3Settings) { s.client = client }
}

// WithS3HTTPClient sets the HTTP client the SDK sends uploads with.
func WithS3HTTPClient(client *http.Client) S3Option {
	return func(s *s3Settings) { s.httpClient = client }
}

// WithS3ConfigOption adds an option applied when loading the AWS config.
func WithS3ConfigOption(option func(*awsconfig.LoadOptions) error) S3Option {
	return func(s *s3Settings) { s.loadOpts = append(s.loadOpts, option) }
}

// WithS3ClientOption adds an option applied to the S3 client after S3Config.
func WithS3ClientOption(option func(*s3.Options)) S3Option {
	return func(s *s3Settings) { s.clientOpts = append(s.clientOpts, option) }
}

// WithS3Profile loads credentials and settings from a shared config profile.
func WithS3Profile(profile string) S3Option {
	return WithS3ConfigOption(awsconfig.WithSharedConfigProfile(profile))
}

// WithS3Accelerate uploads through the bucket's transfer acceleration endpoint.
func WithS3Accelerate() S3Option {
	return WithS3ClientOption(func(o *s3.Options) { o.UseAccelerate = true })
}

// S3Sink uploads exports to an S3 bucket. It is safe for concurrent use.
type S3Sink struct {
	client S3Client
	bucket string
	prefix string
}

// NewS3Sink creates an S3Sink. Bucket and region are required.
func NewS3Sink(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Sink, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", ErrInvalidConfig)
	}

	settings := &s3Settings{}
	for _, opt := range opts {
		opt(settings)
	}

	client := settings.client
	if client == nil {
		var err error
		if client, err = newS3Client(ctx, cfg, settings); err != nil {
			return nil, err
		}
	}

	return &S3Sink{client: client, bucket: cfg.Bucket, prefix: cfg.Prefix}, nil
}

func newS3Client(ctx context.Context, cfg S3Config, settings *s3Settings) (*s3.Client, error) {
	load := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, "")
		load = append(load, awsconfig.WithCredentialsProvider(creds))
	}
	if settings.httpClient != nil {
		load = append(load, awsconfig.WithHTTPClient(settings.httpClient))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, append(load, settings.loadOpts...)...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
		for _, apply := range settings.clientOpts {
			apply(o)
		}
	}), nil
}

// Store uploads r under prefix+name and returns an s3:// location.
// Non-seekable readers are spooled to a temp file first so the SDK can sign the payload.
func (s *S3Sink) Store(ctx context.Context, name string, r io.Reader) (string, error) {
	name = strings.TrimLeft(path.Clean("/"+name), "/")
	if name == "" || name == "." {
		return "", fmt.Errorf("%w: empty name", ErrInvalidPath)
	}
	key := s.prefix + name

	body, cleanup, err := seekable(ctx, r)
	if err != nil {
		return "", err
	}
	defer cleanup()

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType(name)),
	})
	if err != nil {
		return "", classifyS3Error(err, "upload")
	}
	return "s3://" + s.bucket + "/" + key, nil
}

func seekable(ctx context.Context, r io.Reader) (io.ReadSeeker, func(), error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, func() {}, nil
	}

	f, err := os.CreateTemp("", "onesignal-upload-*")
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToCreateFile, err)
	}
	cleanup := func() {
		_ = f.Close()
		_ = os.Remove(f.Name())
	}
	if _, err := io.Copy(f, contextReader{ctx: ctx, r: r}); err != nil {
		cleanup()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrOperationCanceled, ctxErr)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("%w: %v", ErrFailedToWriteFile, err)
	}
	return f, cleanup, nil
}

func contentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".gz"):
		return "application/gzip"
	case strings.HasSuffix(name, ".csv"):
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// s3ErrorCodes maps S3 API error codes to sentinels.
var s3ErrorCodes = map[string]error{
	"AccessDenied":       ErrAccessDenied,
	"NoSuchBucket":       ErrBucketNotFound,
	"RequestTimeout":     ErrOperationTimeout,
	"SlowDown":           ErrServiceUnavailable,
	"ServiceUnavailable": ErrServiceUnavailable,
}

func classifyS3Error(err error, operation string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %s", ErrOperationTimeout, operation)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s", ErrOperationCanceled, operation)
	}

	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, operation)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if sentinel, ok := s3ErrorCodes[apiErr.ErrorCode()]; ok {
			return fmt.Errorf("%w: %s", sentinel, operation)
		}
		return fmt.Errorf("%w: %s (code %s): %v", ErrUploadFailed, operation, apiErr.ErrorCode(), err)
	}
	return fmt.Errorf("%w: %s: %v", ErrUploadFailed, operation, err)
}
