// Package artifacts turns stored résumé locations into links a recruiter can download.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	defaultPresignTTL = 15 * time.Minute
	cloudinaryHost    = "res.cloudinary.com"
	uploadSegment     = "/upload/"
	attachmentSegment = "/upload/fl_attachment/"
)

// ErrPresignDisabled is returned for s3:// references when no object store is configured.
var ErrPresignDisabled = errors.New("object storage is not configured")

// Config describes the object store résumés are kept in. Setting AccountID
// targets Cloudflare R2; Endpoint overrides the endpoint for any S3-compatible store.
type Config struct {
	Bucket     string
	Region     string
	Endpoint   string
	AccountID  string
	AccessKey  string
	SecretKey  string
	PresignTTL time.Duration
}

// Enabled reports whether enough is configured to presign object links.
func (c Config) Enabled() bool {
	return c.Bucket != "" || c.AccessKey != "" || c.AccountID != ""
}

func (c Config) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if c.AccountID != "" {
		return fmt.Sprintf("https://%s.r2.cloudflarestorage.com", c.AccountID)
	}
	return ""
}

type presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Linker builds download links for résumé URLs.
type Linker struct {
	presigner     presigner
	defaultBucket string
	ttl           time.Duration
}

// New creates a Linker. When cfg is not Enabled the Linker still rewrites
// Cloudinary links but cannot presign s3:// references.
func New(ctx context.Context, cfg Config) (*Linker, error) {
	l := &Linker{defaultBucket: cfg.Bucket, ttl: cfg.PresignTTL}
	if l.ttl <= 0 {
		l.ttl = defaultPresignTTL
	}
	if !cfg.Enabled() {
		return l, nil
	}

	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	endpoint := cfg.endpoint()
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	l.presigner = s3.NewPresignClient(client)
	return l, nil
}

// DownloadURL returns a link that downloads the résumé rather than
// displaying it. s3://bucket/key references are presigned; Cloudinary
// delivery URLs get the attachment flag; anything else is returned as is.
func (l *Linker) DownloadURL(ctx context.Context, resumeURL string) (string, error) {
	resumeURL = strings.TrimSpace(resumeURL)
	if resumeURL == "" {
		return "", nil
	}

	if strings.HasPrefix(resumeURL, "s3://") {
		bucket, key, err := l.parseObjectRef(resumeURL)
		if err != nil {
			return "", err
		}
		return l.presign(ctx, bucket, key)
	}

	return AttachmentURL(resumeURL), nil
}

// AttachmentURL rewrites a Cloudinary delivery URL so the browser downloads the file.
func AttachmentURL(resumeURL string) string {
	if !strings.Contains(resumeURL, cloudinaryHost) || strings.Contains(resumeURL, attachmentSegment) {
		return resumeURL
	}
	return strings.Replace(resumeURL, uploadSegment, attachmentSegment, 1)
}

func (l *Linker) parseObjectRef(ref string) (string, string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse object reference %q: %w", ref, err)
	}
	bucket := u.Host
	if bucket == "" {
		bucket = l.defaultBucket
	}
	key := strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("incomplete object reference %q", ref)
	}
	return bucket, key, nil
}

func (l *Linker) presign(ctx context.Context, bucket, key string) (string, error) {
	if l.presigner == nil {
		return "", ErrPresignDisabled
	}

	req, err := l.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String("attachment"),
	}, s3.WithPresignExpires(l.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign %s/%s: %w", bucket, key, err)
	}
	return req.URL, nil
}
