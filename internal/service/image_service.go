package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/nareshwadi/market/market-backend/internal/repository/storage"
)

const (
	MaxImageSize   = 5 * 1024 * 1024 // 5MB
	MinImageWidth  = 50
	MinImageHeight = 50
	ThumbnailWidth = 200
	DisplayWidth   = 800
	JPEGQuality    = 85

	presignedURLExpiry = 15 * time.Minute
)

var (
	ErrImageTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidFormat             = errors.New("invalid format. Supported: JPEG, PNG")
	ErrImageTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidImageData          = errors.New("invalid image data")
	ErrImageStorageNotConfigured = errors.New("image storage not configured")
)

// AllowedExtensions maps extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ImageMetadata contains object paths for each generated image size.
type ImageMetadata struct {
	ID            string `json:"id"`
	ThumbnailPath string `json:"thumbnailPath"`
	DisplayPath   string `json:"displayPath"`
	OriginalPath  string `json:"originalPath"`
}

// ImageService processes product photos (resize to thumbnail/display sizes)
// and stores them for the farmer portal.
type ImageService struct {
	storage storage.ImageRepository
}

// NewImageService creates a new ImageService.
func NewImageService(storage storage.ImageRepository) *ImageService {
	return &ImageService{storage: storage}
}

// IsEnabled indicates whether uploads/deletes are supported (storage configured).
func (s *ImageService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// ValidateImage validates image format and size
func (s *ImageService) ValidateImage(data []byte, filename string) error {
	_, err := s.validateAndDecode(data, filename)
	return err
}

func (s *ImageService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinImageWidth || bounds.Dy() < MinImageHeight {
		return nil, ErrImageTooSmall
	}

	return img, nil
}

// ProcessAndUpload resizes a product photo and uploads all variants.
func (s *ImageService) ProcessAndUpload(ctx context.Context, sellerID uuid.UUID, productID string, data []byte, filename string) (*ImageMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	imageID := uuid.New().String()

	variants := []struct {
		name     string
		maxWidth int
	}{
		{"thumb", ThumbnailWidth},
		{"display", DisplayWidth},
		{"original", 0}, // 0 means keep original size
	}

	paths := make(map[string]string)

	for _, variant := range variants {
		var processed image.Image
		if variant.maxWidth > 0 && img.Bounds().Dx() > variant.maxWidth {
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		} else {
			processed = img
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := fmt.Sprintf("%s/products/%s/%s_%s.jpg", sellerID, productID, imageID, variant.name)

		uploaded, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
		if err != nil {
			s.cleanupVariants(ctx, paths)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}

		paths[variant.name] = uploaded
	}

	return &ImageMetadata{
		ID:            imageID,
		ThumbnailPath: paths["thumb"],
		DisplayPath:   paths["display"],
		OriginalPath:  paths["original"],
	}, nil
}

// cleanupVariants removes variants uploaded before a failed upload. Best effort.
func (s *ImageService) cleanupVariants(ctx context.Context, paths map[string]string) {
	for _, p := range paths {
		_ = s.storage.Delete(ctx, p)
	}
}

// DeleteAllVariants deletes every stored size of an image given any one path.
func (s *ImageService) DeleteAllVariants(ctx context.Context, objectPath string) error {
	if objectPath == "" {
		return nil
	}
	if !s.IsEnabled() {
		return ErrImageStorageNotConfigured
	}

	base := strings.TrimSuffix(objectPath, filepath.Ext(objectPath))
	if idx := strings.LastIndex(base, "_"); idx >= 0 {
		base = base[:idx]
	}

	for _, variant := range []string{"thumb", "display", "original"} {
		_ = s.storage.Delete(ctx, fmt.Sprintf("%s_%s.jpg", base, variant))
	}
	return nil
}

// PresignedURL generates a temporary download URL for a stored image.
func (s *ImageService) PresignedURL(ctx context.Context, objectPath string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrImageStorageNotConfigured
	}
	return s.storage.GeneratePresignedURL(ctx, objectPath, presignedURLExpiry)
}
