package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	appconfig "pairvote/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// S3GallerySource lists gallery images straight from the bucket the
// generated images are uploaded to
type S3GallerySource struct {
	s3Client   *s3.Client
	s3Bucket   string
	prefix     string
	presignTTL time.Duration
}

// NewS3GallerySource creates a gallery source for an S3-compatible bucket
func NewS3GallerySource(ctx context.Context, cfg appconfig.S3Config) (*S3GallerySource, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &S3GallerySource{
		s3Client:   s3Client,
		s3Bucket:   cfg.Bucket,
		prefix:     cfg.Prefix,
		presignTTL: ttl,
	}, nil
}

// ListImages returns presigned GET URLs for every image object, in key order
func (s *S3GallerySource) ListImages(ctx context.Context) ([]string, error) {
	presignClient := s3.NewPresignClient(s.s3Client)
	paginator := s3.NewListObjectsV2Paginator(s.s3Client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.s3Bucket),
		Prefix: aws.String(s.prefix),
	})

	urls := []string{}
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to list bucket %s: %w", ErrTransport, s.s3Bucket, err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !imageExtensions[strings.ToLower(path.Ext(key))] {
				continue
			}

			request, err := presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
				Bucket: aws.String(s.s3Bucket),
				Key:    aws.String(key),
			}, func(opts *s3.PresignOptions) {
				opts.Expires = s.presignTTL
			})
			if err != nil {
				return nil, fmt.Errorf("failed to presign %s: %w", key, err)
			}
			urls = append(urls, request.URL)
		}
	}

	log.Debug().
		Str("bucket", s.s3Bucket).
		Str("prefix", s.prefix).
		Int("images", len(urls)).
		Msg("Listed gallery bucket")

	return urls, nil
}
