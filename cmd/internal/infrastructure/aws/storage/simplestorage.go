package storage

import (
	"bytes"
	"context"
	"errors"
	"io"

	"eventmarket/cmd/internal/domain/recordstore"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const DefaultKeyPrefix = "collections/"

// ObjectAPI is the part of the S3 client the collection store needs.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func NewS3Client(ctx context.Context, region string) (*s3.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return s3.NewFromConfig(cfg), nil
}

// CollectionObject is a recordstore.Store keeping a collection as one S3 object.
// PutObject replaces the object atomically, so readers get the old or the new array.
type CollectionObject[T any] struct {
	client ObjectAPI
	bucket string
	key    string
	name   string
}

func NewCollectionObject[T any](client ObjectAPI, bucket, prefix, name string) *CollectionObject[T] {
	return &CollectionObject[T]{
		client: client,
		bucket: bucket,
		key:    prefix + name + ".json",
		name:   name,
	}
}

func (s *CollectionObject[T]) Name() string {
	return s.name
}

func (s *CollectionObject[T]) Read(ctx context.Context) ([]T, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})

	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return make([]T, 0), nil
	}

	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, err
	}
	return recordstore.Decode[T](data)
}

func (s *CollectionObject[T]) Write(ctx context.Context, records []T) error {
	data, err := recordstore.Encode(records)
	if err != nil {
		return err
	}

	contentType := "application/json"
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
	})
	return err
}
