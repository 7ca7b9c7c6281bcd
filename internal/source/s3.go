package source

import (
	"context"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Config points at a bucket prefix holding the posts directory. Empty
// values fall back to the standard AWS configuration chain.
type S3Config struct {
	Bucket       string
	Prefix       string
	IndexFile    string
	Region       string
	Profile      string
	Endpoint     string
	UsePathStyle bool
}

type objectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the manifest and documents from S3 objects.
type S3Source struct {
	client    objectGetter
	bucket    string
	prefix    string
	indexFile string
}

var _ Source = (*S3Source)(nil)

// NewS3Source loads AWS configuration and builds the S3 client.
func NewS3Source(ctx context.Context, cfg S3Config) (*S3Source, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(cfg.Profile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return newS3Source(client, cfg), nil
}

func newS3Source(client objectGetter, cfg S3Config) *S3Source {
	indexFile := strings.TrimSpace(cfg.IndexFile)
	if indexFile == "" {
		indexFile = DefaultIndexFile
	}
	return &S3Source{
		client:    client,
		bucket:    cfg.Bucket,
		prefix:    strings.Trim(cfg.Prefix, "/"),
		indexFile: indexFile,
	}
}

// Manifest reads the index object.
func (s *S3Source) Manifest(ctx context.Context) ([]string, error) {
	data, err := s.read(ctx, s.indexFile)
	if err != nil {
		return nil, err
	}
	return DecodeManifest(data)
}

// Document reads the object for file below the configured prefix.
func (s *S3Source) Document(ctx context.Context, file string) ([]byte, error) {
	return s.read(ctx, file)
}

func (s *S3Source) key(name string) string {
	name = strings.TrimPrefix(name, "/")
	if s.prefix == "" {
		return name
	}
	return path.Join(s.prefix, name)
}

func (s *S3Source) read(ctx context.Context, name string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	})
	if err != nil {
		if isMissingObject(err) {
			return nil, notFoundError(name)
		}
		return nil, unavailableError(err, name)
	}
	defer out.Body.Close()

	return readDocument(out.Body, maxDocumentBytes, name)
}

func isMissingObject(err error) bool {
	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return true
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() == http.StatusNotFound {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}
	return false
}
