package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicObjectURL(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio.local:9000")
	t.Setenv("MINIO_BUCKET", "marketplace")
	t.Setenv("MINIO_USE_SSL", "")

	assert.Equal(t, "http://minio.local:9000/marketplace/banners/1-a.png",
		PublicObjectURL("banners/1-a.png"))

	t.Setenv("MINIO_USE_SSL", "true")
	assert.Equal(t, "https://minio.local:9000/marketplace/banners/1-a.png",
		PublicObjectURL("banners/1-a.png"))
}

func TestObjectKeyFromURL(t *testing.T) {
	t.Setenv("MINIO_ENDPOINT", "minio.local:9000")
	t.Setenv("MINIO_BUCKET", "marketplace")
	t.Setenv("MINIO_USE_SSL", "")

	key := "products/1700000000-photo.jpg"
	assert.Equal(t, key, ObjectKeyFromURL(PublicObjectURL(key)))

	// A bare key passes through untouched.
	assert.Equal(t, key, ObjectKeyFromURL(key))

	// URLs from another host are left alone rather than mangled.
	foreign := "https://cdn.example.com/bucket/photo.jpg"
	assert.Equal(t, foreign, ObjectKeyFromURL(foreign))
}
