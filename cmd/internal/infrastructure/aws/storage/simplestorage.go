package storage

import (
	"context"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectFetcher abstracts S3 object downloads so the registry source
// resolver can be tested without AWS.
type ObjectFetcher interface {
	FetchObject(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error)
}

type downloadClient struct {
	client *s3.Client
}

func NewDownloadClient() (ObjectFetcher, error) {
	region := os.Getenv("AWS_S3_REGION")
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &downloadClient{client: s3.NewFromConfig(cfg)}, nil
}

// FetchObject returns the object body and its size in bytes (0 when the
// size is unknown). The caller owns the returned reader.
func (d *downloadClient) FetchObject(ctx context.Context, bucket, key string) (io.ReadCloser, int64, error) {
	out, err := d.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, 0, err
	}

	var size int64
	if out.ContentLength != nil {
		size = *out.ContentLength
	}
	return out.Body, size, nil
}
