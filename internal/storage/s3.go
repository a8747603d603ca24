package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/cinepedia/scraper/internal/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// NewS3Client builds an S3 client from environment configuration. The
// bucket holds the raw HTML archive: every scraped page is kept as
// fetched, so entities can be re-resolved later without re-scraping.
func NewS3Client(ctx context.Context) *s3.Client {
	region := util.GetEnv("AWS_REGION")
	endpoint := util.GetEnv("AWS_ENDPOINT")
	accessKey := util.GetEnv("AWS_ACCESS_KEY")
	secretKey := util.GetEnv("AWS_SECRET_KEY")

	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(region),
		config.WithBaseEndpoint(endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
	)
	if err != nil {
		return nil
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})
	return client
}

// ArchivePage stores the raw HTML of a scraped page under
// pages/<uid>.html and returns the object key.
func ArchivePage(ctx context.Context, client *s3.Client, uid string, rawHTML []byte) (string, error) {
	bucket := util.GetEnv("AWS_BUCKET")
	key := fmt.Sprintf("pages/%s.html", uid)

	_, err := client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(rawHTML),
		ContentType: aws.String("text/html; charset=utf-8"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive page: %w", err)
	}
	return key, nil
}

// GetArchivedPage fetches a previously archived page by uid.
func GetArchivedPage(ctx context.Context, client *s3.Client, uid string) ([]byte, error) {
	bucket := util.GetEnv("AWS_BUCKET")
	key := fmt.Sprintf("pages/%s.html", uid)

	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get archived page: %w", err)
	}
	defer result.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, result.Body); err != nil {
		return nil, fmt.Errorf("failed to read archived page: %w", err)
	}
	return buf.Bytes(), nil
}

// DeleteArchivedPage removes an archived page by uid.
func DeleteArchivedPage(ctx context.Context, client *s3.Client, uid string) error {
	bucket := util.GetEnv("AWS_BUCKET")
	key := fmt.Sprintf("pages/%s.html", uid)

	if _, err := client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("failed to delete archived page: %w", err)
	}
	return nil
}
