package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"research-tracker/internal/domain"
)

var _ BlobStore = (*S3Store)(nil)

// S3Options configures an S3-compatible blob store.
type S3Options struct {
	Endpoint string // host, e.g. "fsn1.your-objectstorage.com"; empty for AWS
	Region   string
	KeyID    string
	Secret   string
	Bucket   string
	Prefix   string // optional key prefix, e.g. "uploads/"
}

// S3Store stores blobs in an S3-compatible bucket. It is configured with
// path-style addressing so Hetzner/MinIO style endpoints work out of the box.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

func NewS3Store(opts S3Options) (*S3Store, error) {
	if opts.Region == "" || opts.KeyID == "" || opts.Secret == "" || opts.Bucket == "" {
		return nil, fmt.Errorf("s3 config is incomplete")
	}

	s3opts := s3.Options{
		Region: opts.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			opts.KeyID, opts.Secret, "",
		),
		UsePathStyle: true,
	}
	if opts.Endpoint != "" {
		s3opts.BaseEndpoint = aws.String(fmt.Sprintf("https://%s", opts.Endpoint))
	}

	return &S3Store{
		client: s3.New(s3opts),
		bucket: opts.Bucket,
		prefix: opts.Prefix,
	}, nil
}

func (s *S3Store) key(ref string) string {
	return s.prefix + ref
}

func (s *S3Store) Save(ctx context.Context, ref string, r io.Reader) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(ref)),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("put object %q: %w", ref, err)
	}
	return nil
}

func (s *S3Store) Open(ctx context.Context, ref string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(ref)),
	})
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil, domain.ErrNotFound("blob %s not found", ref)
	}
	if err != nil {
		return nil, fmt.Errorf("get object %q: %w", ref, err)
	}
	return out.Body, nil
}

func (s *S3Store) Delete(ctx context.Context, ref string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(ref)),
	})
	if err != nil {
		return fmt.Errorf("delete object %q: %w", ref, err)
	}
	return nil
}

func (s *S3Store) List(ctx context.Context) ([]string, error) {
	var refs []string
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			refs = append(refs, key[len(s.prefix):])
		}
	}
	return refs, nil
}
