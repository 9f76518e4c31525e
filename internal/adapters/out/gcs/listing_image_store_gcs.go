// internal/adapters/out/gcs/listing_image_store_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
)

// ListingImageStoreGCS implements usecase.ListingImageStore on Google
// Cloud Storage. Objects live under "listings/<listingID>" in a bucket
// with public read access; the returned URL is the stable
// storage.googleapis.com form.
type ListingImageStoreGCS struct {
	Client *storage.Client
	Bucket string
}

func NewListingImageStoreGCS(client *storage.Client, bucket string) *ListingImageStoreGCS {
	return &ListingImageStoreGCS{
		Client: client,
		Bucket: strings.TrimSpace(bucket),
	}
}

func (s *ListingImageStoreGCS) UploadListingImage(ctx context.Context, listingID, contentType string, data []byte) (string, error) {
	if s == nil || s.Client == nil {
		return "", errors.New("listing_image_store_gcs: nil storage client")
	}
	bucket := strings.TrimSpace(s.Bucket)
	if bucket == "" {
		return "", errors.New("listing_image_store_gcs: bucket is empty")
	}

	listingID = strings.TrimSpace(listingID)
	if listingID == "" {
		return "", errors.New("listing_image_store_gcs: listingID is empty")
	}
	if len(data) == 0 {
		return "", errors.New("listing_image_store_gcs: image data is empty")
	}

	objName := "listings/" + listingID + imageExt(contentType)

	w := s.Client.Bucket(bucket).Object(objName).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "public, max-age=3600"

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("listing_image_store_gcs: write failed: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("listing_image_store_gcs: close failed: %w", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, objName), nil
}

// imageExt keeps the object name browsable in the console. Unknown
// types get no extension; content type on the object is authoritative.
func imageExt(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(contentType)) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
