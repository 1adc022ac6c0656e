// internal/adapters/out/gcs/image_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	usecase "tradespace/internal/application/usecase"
)

// ImageRepositoryGCS is the GCS adapter for marketplace images.
//
// Object layout (single bucket):
// - tradespace thumbnails: tradespace-thumbnails/{millis}-{fileName}
// - listing images:        tradespaces/{tradespaceId}/listings/{sellerId}/{millis}-{safeName}
//
// Public access:
//   - The bucket is expected to grant "allUsers: Storage Object Viewer"
//     (uniform access), so uploaded objects are publicly readable without
//     per-object ACL changes.
type ImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string
	// Optional: if empty, uses https://storage.googleapis.com
	PublicBaseURL string
}

func NewImageRepositoryGCS(client *storage.Client, bucket string) *ImageRepositoryGCS {
	return &ImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: "https://storage.googleapis.com",
	}
}

// Compile-time check
var _ usecase.ImageStore = (*ImageRepositoryGCS)(nil)

var unsafeNameChars = regexp.MustCompile(`[^\w.-]+`)

// safeFileName keeps object names URL- and console-friendly.
func safeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload"
	}
	return unsafeNameChars.ReplaceAllString(name, "_")
}

func (r *ImageRepositoryGCS) UploadTradespaceThumbnail(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	objectPath := fmt.Sprintf("tradespace-thumbnails/%d-%s", time.Now().UnixMilli(), safeFileName(fileName))
	return r.upload(ctx, objectPath, data, contentType)
}

func (r *ImageRepositoryGCS) UploadListingImage(ctx context.Context, tradespaceID, sellerID, fileName string, data []byte, contentType string) (string, error) {
	tid := strings.TrimSpace(tradespaceID)
	sid := strings.TrimSpace(sellerID)
	if tid == "" || sid == "" {
		return "", errors.New("image_repository_gcs: tradespaceId/sellerId is empty")
	}

	objectPath := fmt.Sprintf("tradespaces/%s/listings/%s/%d-%s", tid, sid, time.Now().UnixMilli(), safeFileName(fileName))
	return r.upload(ctx, objectPath, data, contentType)
}

func (r *ImageRepositoryGCS) upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("image_repository_gcs: storage client is nil")
	}
	bucket := strings.TrimSpace(r.Bucket)
	if bucket == "" {
		return "", errors.New("image_repository_gcs: bucket is empty")
	}
	if len(data) == 0 {
		return "", errors.New("image_repository_gcs: empty upload")
	}

	w := r.Client.Bucket(bucket).Object(objectPath).NewWriter(ctx)
	if strings.TrimSpace(contentType) != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("image_repository_gcs: write %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("image_repository_gcs: close %s: %w", objectPath, err)
	}

	base := strings.TrimRight(r.PublicBaseURL, "/")
	if base == "" {
		base = "https://storage.googleapis.com"
	}
	url := fmt.Sprintf("%s/%s/%s", base, bucket, objectPath)
	log.Printf("[image_repo_gcs] upload ok object=%s bytes=%d", objectPath, len(data))
	return url, nil
}
