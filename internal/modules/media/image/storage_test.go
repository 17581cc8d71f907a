package image

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zenith-gallery/core/internal/config"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewLocalStorage(dir, "http://localhost:3000/uploads/")
	require.NoError(t, err)

	url, err := s.Put(ctx, "abc.png", []byte("data"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/uploads/abc.png", url)

	got, err := s.Get(ctx, "abc.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got)

	require.NoError(t, s.Delete(ctx, "abc.png"))
	_, err = os.Stat(filepath.Join(dir, "abc.png"))
	assert.True(t, os.IsNotExist(err))

	_, err = s.Get(ctx, "abc.png")
	assert.ErrorIs(t, err, ErrBlobNotFound)
	assert.NoError(t, s.Delete(ctx, "abc.png"))
}

func TestLocalStorageRejectsUnsafeKeys(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://x/uploads")
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "..", []byte("x"), "")
	assert.Error(t, err)
	_, err = s.Put(context.Background(), "a b.png", []byte("x"), "")
	assert.Error(t, err)

	url, err := s.Put(context.Background(), "../../etc/evil.png", []byte("x"), "")
	require.NoError(t, err)
	assert.Equal(t, "http://x/uploads/evil.png", url)
}

func TestS3PublicURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com",
		s3PublicURL(config.S3Config{PublicURL: "https://cdn.example.com", Bucket: "b"}))
	assert.Equal(t, "http://minio:9000/walls",
		s3PublicURL(config.S3Config{Endpoint: "http://minio:9000/", Bucket: "walls"}))
	assert.Equal(t, "https://walls.s3.eu-west-1.amazonaws.com",
		s3PublicURL(config.S3Config{Bucket: "walls", Region: "eu-west-1"}))
}

func TestS3StorageObjectKey(t *testing.T) {
	s := NewS3Storage(config.S3Config{Bucket: "walls", Region: "auto", Prefix: "zenith", AccessKeyID: "k", SecretAccessKey: "s"})
	assert.Equal(t, "zenith/abc.jpg", s.objectKey("abc.jpg"))

	s = NewS3Storage(config.S3Config{Bucket: "walls", Region: "auto", AccessKeyID: "k", SecretAccessKey: "s"})
	assert.Equal(t, "abc.jpg", s.objectKey("abc.jpg"))
}
