package services

import (
	"context"
	"net/url"
	"os"
	"time"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
)

// GenerateSignedURL returns a presigned GET URL for an object key or a
// stored public URL, valid for the given duration.
func GenerateSignedURL(ctx context.Context, keyOrURL string, duration time.Duration) (string, error) {
	reqParams := make(url.Values)

	presignedURL, err := database.MinIO.PresignedGetObject(
		ctx,
		os.Getenv("MINIO_BUCKET"),
		ObjectKeyFromURL(keyOrURL),
		duration,
		reqParams,
	)
	if err != nil {
		return "", err
	}

	return presignedURL.String(), nil
}
