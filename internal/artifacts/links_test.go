package artifacts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	bucket, key string
	err         error
}

func (f *fakePresigner) PresignGetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(params.Bucket)
	f.key = aws.ToString(params.Key)
	return &v4.PresignedHTTPRequest{URL: "https://signed.example/" + f.bucket + "/" + f.key}, nil
}

func TestAttachmentURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "cloudinary raw upload",
			in:   "https://res.cloudinary.com/demo/raw/upload/v17/resumes/ada.pdf",
			want: "https://res.cloudinary.com/demo/raw/upload/fl_attachment/v17/resumes/ada.pdf",
		},
		{
			name: "already an attachment",
			in:   "https://res.cloudinary.com/demo/raw/upload/fl_attachment/v17/ada.pdf",
			want: "https://res.cloudinary.com/demo/raw/upload/fl_attachment/v17/ada.pdf",
		},
		{
			name: "other host untouched",
			in:   "https://files.example.com/upload/ada.pdf",
			want: "https://files.example.com/upload/ada.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttachmentURL(tt.in))
		})
	}
}

func TestDownloadURL_Disabled(t *testing.T) {
	l, err := New(context.Background(), Config{})
	require.NoError(t, err)

	got, err := l.DownloadURL(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = l.DownloadURL(context.Background(), "https://res.cloudinary.com/x/image/upload/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://res.cloudinary.com/x/image/upload/fl_attachment/a.pdf", got)

	_, err = l.DownloadURL(context.Background(), "s3://resumes/ada.pdf")
	assert.ErrorIs(t, err, ErrPresignDisabled)
}

func TestDownloadURL_Presigned(t *testing.T) {
	fake := &fakePresigner{}
	l := &Linker{presigner: fake, defaultBucket: "fallback", ttl: time.Minute}

	got, err := l.DownloadURL(context.Background(), "s3://resumes/2025/ada.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/resumes/2025/ada.pdf", got)
	assert.Equal(t, "resumes", fake.bucket)
	assert.Equal(t, "2025/ada.pdf", fake.key)
}

func TestDownloadURL_DefaultBucket(t *testing.T) {
	fake := &fakePresigner{}
	l := &Linker{presigner: fake, defaultBucket: "fallback", ttl: time.Minute}

	_, err := l.DownloadURL(context.Background(), "s3:///ada.pdf")
	require.NoError(t, err)
	assert.Equal(t, "fallback", fake.bucket)
}

func TestDownloadURL_BadReference(t *testing.T) {
	l := &Linker{presigner: &fakePresigner{}, ttl: time.Minute}

	_, err := l.DownloadURL(context.Background(), "s3://bucket-only")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete object reference")
}

func TestDownloadURL_PresignError(t *testing.T) {
	l := &Linker{presigner: &fakePresigner{err: errors.New("boom")}, ttl: time.Minute}

	_, err := l.DownloadURL(context.Background(), "s3://b/k.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to presign b/k.pdf")
}

func TestPresignClient_R2Endpoint(t *testing.T) {
	client := s3.New(s3.Options{
		Region:       "auto",
		Credentials:  credentials.NewStaticCredentialsProvider("AKID", "SECRET", ""),
		BaseEndpoint: aws.String(Config{AccountID: "acct"}.endpoint()),
		UsePathStyle: true,
	})
	l := &Linker{presigner: s3.NewPresignClient(client), ttl: 5 * time.Minute}

	got, err := l.DownloadURL(context.Background(), "s3://resumes/ada.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "https://acct.r2.cloudflarestorage.com/resumes/ada.pdf?"), got)
	assert.Contains(t, got, "X-Amz-Signature=")
	assert.Contains(t, got, "X-Amz-Expires=300")
}

func TestConfig(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Bucket: "b"}.Enabled())
	assert.Equal(t, "https://minio.local:9000", Config{Endpoint: "https://minio.local:9000", AccountID: "x"}.endpoint())
	assert.Empty(t, Config{Bucket: "b"}.endpoint())
}
