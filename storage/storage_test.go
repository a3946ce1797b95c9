package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	body    string
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.puts = append(f.puts, in)
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{ETag: aws.String(`"abc123"`)}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func newTestUploader(t *testing.T, client s3API, base string) *cloudflareR2Uploader {
	t.Helper()
	u, err := url.Parse(base)
	require.NoError(t, err)
	return newCloudflareR2Uploader(client, "draws-bucket", u)
}

func TestCloudflareR2UploaderUpload(t *testing.T) {
	client := &fakeS3{}
	u := newTestUploader(t, client, "https://cdn.example.com/archive/")

	res, err := u.Upload(context.Background(), "draws/round-1.json", "application/json", strings.NewReader(`{"ok":true}`))
	require.NoError(t, err)

	assert.Equal(t, "draws/round-1.json", res.Key)
	assert.Equal(t, "abc123", res.ETag)
	assert.Equal(t, "https://cdn.example.com/archive/draws/round-1.json", res.Location)

	require.Len(t, client.puts, 1)
	assert.Equal(t, "draws-bucket", aws.ToString(client.puts[0].Bucket))
	assert.Equal(t, "application/json", aws.ToString(client.puts[0].ContentType))
	assert.Equal(t, `{"ok":true}`, client.body)
}

func TestCloudflareR2UploaderErrors(t *testing.T) {
	client := &fakeS3{err: errors.New("boom")}
	u := newTestUploader(t, client, "https://cdn.example.com")

	_, err := u.Upload(context.Background(), "k", "text/plain", strings.NewReader("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, client.err)
	assert.Contains(t, err.Error(), "key: k")

	err = u.Delete(context.Background(), "k")
	assert.ErrorIs(t, err, client.err)
}

func TestCloudflareR2UploaderDelete(t *testing.T) {
	client := &fakeS3{}
	u := newTestUploader(t, client, "https://cdn.example.com")

	require.NoError(t, u.Delete(context.Background(), "draws/round-2.json"))
	require.Len(t, client.deletes, 1)
	assert.Equal(t, "draws/round-2.json", aws.ToString(client.deletes[0].Key))
}

func TestGetPublicURL(t *testing.T) {
	tests := []struct {
		base string
		key  string
		want string
	}{
		{"https://cdn.example.com", "a/b.json", "https://cdn.example.com/a/b.json"},
		{"https://cdn.example.com/", "/a/b.json", "https://cdn.example.com/a/b.json"},
		{"https://cdn.example.com/files", "x.json", "https://cdn.example.com/files/x.json"},
		{"https://cdn.example.com", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.base+"|"+tt.key, func(t *testing.T) {
			u := newTestUploader(t, &fakeS3{}, tt.base)
			assert.Equal(t, tt.want, u.GetPublicURL(tt.key))
		})
	}
}

func TestNewUploader(t *testing.T) {
	up, err := NewUploader(context.Background(), CloudflareR2UploaderConfig{})
	require.NoError(t, err)
	assert.IsType(t, NopUploader{}, up)

	_, err = NewUploader(context.Background(), CloudflareR2UploaderConfig{AccountID: "acc"})
	assert.ErrorIs(t, err, ErrIncompleteR2Config)
}

func TestR2ConfigEndpoint(t *testing.T) {
	cfg := CloudflareR2UploaderConfig{AccountID: "acc"}
	assert.Equal(t, "https://acc.r2.cloudflarestorage.com", cfg.Endpoint())
	assert.False(t, cfg.Enabled())
}

func TestNopUploader(t *testing.T) {
	var up FileUploader = NopUploader{}
	res, err := up.Upload(context.Background(), "k", "text/plain", strings.NewReader("data"))
	require.NoError(t, err)
	assert.Equal(t, "k", res.Key)
	assert.NoError(t, up.Delete(context.Background(), "k"))
	assert.Empty(t, up.GetPublicURL("k"))
}
