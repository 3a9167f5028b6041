package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/siddharthaBojanki/greenCart/config"
)

// s3Disk stores files on any S3-compatible object store. A custom endpoint
// switches the client to path-style addressing for MinIO and friends.
type s3Disk struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func newS3Disk() (*s3Disk, error) {
	bucket := config.StorageS3Bucket()
	region := config.StorageS3Region()
	endpoint := config.StorageS3Endpoint()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := []func(*awscfg.LoadOptions) error{awscfg.WithRegion(region)}
	if key := config.StorageS3Key(); key != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, config.StorageS3Secret(), ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := config.StorageS3URL()
	if baseURL == "" {
		if endpoint != "" {
			baseURL = fmt.Sprintf("%s/%s", strings.TrimRight(endpoint, "/"), bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
		}
	}

	return &s3Disk{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (d *s3Disk) key(storagePath string) string {
	return strings.TrimLeft(storagePath, "/")
}

func (d *s3Disk) Put(storagePath string, content []byte) error {
	return d.PutStream(storagePath, bytes.NewReader(content))
}

func (d *s3Disk) PutStream(storagePath string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(storagePath)),
		Body:   r,
	})
	if err != nil {
		return fmt.Errorf("storage: put %s: %w", storagePath, err)
	}
	return nil
}

func (d *s3Disk) Get(storagePath string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	out, err := d.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(storagePath)),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: get %s: %w", storagePath, err)
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (d *s3Disk) Exists(storagePath string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := d.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(storagePath)),
	})
	return err == nil
}

func (d *s3Disk) Delete(storagePath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := d.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(d.bucket),
		Key:    aws.String(d.key(storagePath)),
	})
	if err != nil {
		return fmt.Errorf("storage: delete %s: %w", storagePath, err)
	}
	return nil
}

func (d *s3Disk) URL(storagePath string) string {
	return d.baseURL + "/" + d.key(storagePath)
}
