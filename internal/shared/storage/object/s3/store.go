package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"jobassist-backend/internal/shared/storage/object"
)

// ErrNoBucket is returned by New when S3_BUCKET is unset.
var ErrNoBucket = errors.New("s3 bucket is required")

// api is the part of *s3.Client the store calls.
type api interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store keeps CVs and their text sidecars in one bucket under an optional
// key prefix. Every PUT is server-side encrypted: SSE-KMS when a key id is
// configured, AES256 otherwise.
type Store struct {
	client  api
	presign *s3.PresignClient
	bucket  string
	prefix  string
	kmsKey  string
	now     func() time.Time
}

func New(ctx context.Context, region, bucket, prefix, kmsKeyID string) (*Store, error) {
	if strings.TrimSpace(bucket) == "" {
		return nil, ErrNoBucket
	}
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithClient(s3.NewFromConfig(cfg), bucket, prefix, kmsKeyID), nil
}

func NewWithClient(client *s3.Client, bucket, prefix, kmsKeyID string) *Store {
	s := newStore(client, bucket, prefix, kmsKeyID)
	s.presign = s3.NewPresignClient(client)
	return s
}

func newStore(client api, bucket, prefix, kmsKeyID string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(strings.TrimSpace(prefix), "/"),
		kmsKey: strings.TrimSpace(kmsKeyID),
		now:    time.Now,
	}
}

// objectKey maps a storage key onto the bucket.
func (s *Store) objectKey(storageKey string) string {
	k := strings.TrimLeft(storageKey, "/")
	switch {
	case s.prefix == "":
		return k
	case k == "":
		return s.prefix
	default:
		return path.Join(s.prefix, k)
	}
}

func (s *Store) Save(ctx context.Context, userID string, fileName string, r io.Reader) (string, int64, string, error) {
	key, err := object.UserKey(userID, fileName, s.now())
	if err != nil {
		return "", 0, "", err
	}
	mime, body, err := object.Sniff(r)
	if err != nil {
		return "", 0, "", err
	}
	n, err := s.SaveWithKey(ctx, key, mime, body)
	if err != nil {
		return "", 0, "", err
	}
	return key, n, mime, nil
}

func (s *Store) SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	body := &counter{r: r}
	in := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(storageKey)),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	s.encrypt(in)
	if _, err := s.client.PutObject(ctx, in); err != nil {
		return 0, s.wrap("put", storageKey, err)
	}
	return body.n, nil
}

func (s *Store) encrypt(in *s3.PutObjectInput) {
	if s.kmsKey == "" {
		in.ServerSideEncryption = s3types.ServerSideEncryptionAes256
		return
	}
	in.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
	in.SSEKMSKeyId = aws.String(s.kmsKey)
}

func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(storageKey)),
	})
	if err != nil {
		return nil, s.wrap("get", storageKey, err)
	}
	return out.Body, nil
}

func (s *Store) Delete(ctx context.Context, storageKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.objectKey(storageKey)),
	})
	if err != nil {
		return s.wrap("delete", storageKey, err)
	}
	return nil
}

// PresignGet returns a time-limited download URL for a stored PDF.
func (s *Store) PresignGet(ctx context.Context, storageKey string, ttl time.Duration) (string, error) {
	if s.presign == nil {
		return "", object.ErrPresignUnsupported
	}
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:              aws.String(s.bucket),
		Key:                 aws.String(s.objectKey(storageKey)),
		ResponseContentType: aws.String("application/pdf"),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", s.wrap("presign", storageKey, err)
	}
	return req.URL, nil
}

func (s *Store) wrap(op, storageKey string, err error) error {
	return fmt.Errorf("s3 %s s3://%s/%s: %w", op, s.bucket, s.objectKey(storageKey), err)
}

type counter struct {
	r io.Reader
	n int64
}

func (c *counter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

var (
	_ object.ObjectStore = (*Store)(nil)
	_ object.Presigner   = (*Store)(nil)
	_ api                = (*s3.Client)(nil)
)
