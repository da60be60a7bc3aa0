// Package storage publishes rendered invoices to an S3 bucket.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// Config selects the bucket. Endpoint is only needed for S3 compatible services.
type Config struct {
	Region   string
	Bucket   string
	Prefix   string
	Endpoint string
}

// S3 uploads PDFs with the s3manager uploader.
type S3 struct {
	uploader *s3manager.Uploader
	bucket   string
	prefix   string
}

// NewS3 creates a session for cfg. Credentials come from the default AWS chain.
func NewS3(cfg Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	awsCfg := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("create aws session: %w", err)
	}
	return &S3{
		uploader: s3manager.NewUploader(sess),
		bucket:   cfg.Bucket,
		prefix:   cfg.Prefix,
	}, nil
}

// Key returns a fresh object key for the invoice with the given id.
func (s *S3) Key(invoiceID int) string {
	return path.Join(s.prefix, fmt.Sprintf("invoice-%d-%s.pdf", invoiceID, uuid.NewString()))
}

// Publish uploads pdf and returns the object URL.
func (s *S3) Publish(ctx context.Context, invoiceID int, pdf []byte) (string, error) {
	key := s.Key(invoiceID)
	out, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(pdf),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s to s3: %w", key, err)
	}
	return out.Location, nil
}
