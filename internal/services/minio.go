package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/Vivek8968/hyperlocal-marketplace-backend/internal/database"
)

// UploadImage stores an uploaded file under <folder>/<nanos>-<filename> in
// the configured bucket and returns the public URL together with the object
// key (the key is what delete and presign operate on).
func UploadImage(ctx context.Context, folder string, file *multipart.FileHeader) (url string, objectKey string, err error) {
	f, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	objectKey = fmt.Sprintf("%s/%d-%s", folder, time.Now().UnixNano(), file.Filename)
	_, err = database.MinIO.PutObject(
		ctx,
		os.Getenv("MINIO_BUCKET"),
		objectKey,
		f,
		file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")},
	)
	if err != nil {
		return "", "", err
	}

	return PublicObjectURL(objectKey), objectKey, nil
}

// PublicObjectURL builds the unsigned URL for an object key.
func PublicObjectURL(objectKey string) string {
	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), os.Getenv("MINIO_BUCKET"), objectKey)
}

// ObjectKeyFromURL strips the endpoint/bucket prefix from a stored URL.
func ObjectKeyFromURL(url string) string {
	for _, scheme := range []string{"http", "https"} {
		prefix := fmt.Sprintf("%s://%s/%s/", scheme, os.Getenv("MINIO_ENDPOINT"), os.Getenv("MINIO_BUCKET"))
		if len(url) > len(prefix) && url[:len(prefix)] == prefix {
			return url[len(prefix):]
		}
	}
	return url
}

// DeleteObject removes an object by key or stored URL. Missing objects are
// not an error; the caller is cleaning up.
func DeleteObject(ctx context.Context, keyOrURL string) error {
	return database.MinIO.RemoveObject(
		ctx,
		os.Getenv("MINIO_BUCKET"),
		ObjectKeyFromURL(keyOrURL),
		minio.RemoveObjectOptions{},
	)
}
