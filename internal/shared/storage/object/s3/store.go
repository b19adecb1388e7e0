package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"photoshare-backend/internal/shared/storage/object"
)

// Store implements ContainerStore on Amazon S3. Each container is a bucket
// prefixed with a deployment-wide namespace.
type Store struct {
	client *s3.Client
	region string
	prefix string
}

// New creates a new S3-backed container store. prefix namespaces the buckets
// this deployment owns.
func New(ctx context.Context, region, prefix string) (object.ContainerStore, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &Store{
		client: s3.NewFromConfig(cfg),
		region: region,
		prefix: normalizePrefix(prefix),
	}, nil
}

// CreateContainer creates the bucket backing a container.
func (s *Store) CreateContainer(ctx context.Context, name string) error {
	input := &s3.CreateBucketInput{
		Bucket: aws.String(s.bucketName(name)),
	}
	// us-east-1 rejects an explicit location constraint.
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.region),
		}
	}

	if _, err := s.client.CreateBucket(ctx, input); err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return fmt.Errorf("s3 create bucket %s: %w", s.bucketName(name), err)
	}
	return nil
}

// ConfigureContainer marks the bucket world-readable.
func (s *Store) ConfigureContainer(ctx context.Context, name string) error {
	_, err := s.client.PutBucketAcl(ctx, &s3.PutBucketAclInput{
		Bucket: aws.String(s.bucketName(name)),
		ACL:    s3types.BucketCannedACLPublicRead,
	})
	if err != nil {
		return fmt.Errorf("s3 put bucket acl %s: %w", s.bucketName(name), err)
	}
	return nil
}

// HeadContainer checks that the bucket backing a container exists.
func (s *Store) HeadContainer(ctx context.Context, name string) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName(name)),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return object.ErrContainerNotFound
		}
		return fmt.Errorf("s3 head bucket %s: %w", s.bucketName(name), err)
	}
	return nil
}

// StoreObject uploads the reader contents into the container's bucket.
func (s *Store) StoreObject(ctx context.Context, container, name, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	counter := &countingReader{r: r}
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName(container)),
		Key:         aws.String(name),
		Body:        counter,
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return 0, fmt.Errorf("s3 put object bucket=%s key=%s: %w", s.bucketName(container), name, err)
	}
	return counter.n, nil
}

func (s *Store) bucketName(container string) string {
	if s.prefix == "" {
		return container
	}
	return s.prefix + "-" + container
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(prefix)), "-")
}

var _ object.ContainerStore = (*Store)(nil)
