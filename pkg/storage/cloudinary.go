package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// downloadURLTTL bounds how long a signed download link stays usable.
const downloadURLTTL = 60 * time.Second

// FileStorage is the contract for the blob store backing documents.
// filePath is the opaque storage key returned by Upload; fileType is the
// portal's file type (model.FileTypeDocument or model.FileTypeImage), which
// decides the provider-side resource type.
type FileStorage interface {
	// Upload stores the blob and returns its storage key.
	Upload(ctx context.Context, r io.Reader, fileType, fileName string) (string, error)
	// SignedURL creates a short-lived download URL for a stored blob.
	SignedURL(ctx context.Context, filePath, fileType string) (string, error)
	// Delete removes a stored blob by its storage key.
	Delete(ctx context.Context, filePath, fileType string) error
}

type cloudinaryStorage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStorage creates a Cloudinary-backed FileStorage. It expects
// CLOUDINARY_URL or the individual CLOUDINARY_* variables in the environment.
func NewCloudinaryStorage() (FileStorage, error) {
	cld, err := cloudinary.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	cld.Config.URL.Secure = true

	if cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME"); cloudName != "" {
		cld.Config.Cloud.CloudName = cloudName
	}

	folder := os.Getenv("CLOUDINARY_UPLOAD_FOLDER")
	if folder == "" {
		folder = "judo_resources"
	}

	return &cloudinaryStorage{cld: cld, folder: folder}, nil
}

func (s *cloudinaryStorage) Upload(ctx context.Context, r io.Reader, fileType, fileName string) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary storage is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	publicID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeFileName(fileName))

	params := uploader.UploadParams{
		Folder:         s.folder,
		PublicID:       publicID,
		UseFilename:    api.Bool(false),
		UniqueFilename: api.Bool(false),
		Overwrite:      api.Bool(false),
		ResourceType:   resourceType(fileType),
		Type:           "authenticated",
	}

	resp, err := s.cld.Upload.Upload(ctx, r, params)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to cloudinary: %w", err)
	}

	if resp.PublicID == "" {
		return "", fmt.Errorf("cloudinary upload succeeded but public ID is empty")
	}

	return resp.PublicID, nil
}

func (s *cloudinaryStorage) SignedURL(ctx context.Context, filePath, fileType string) (string, error) {
	if s == nil || s.cld == nil {
		return "", fmt.Errorf("cloudinary storage is not initialized")
	}

	asset, err := s.cld.Image(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to build asset for %s: %w", filePath, err)
	}

	asset.AssetType = assetType(fileType)
	asset.DeliveryType = "authenticated"
	asset.Config.URL.SignURL = true
	asset.Config.AuthToken.StartTime = time.Now().Unix()
	asset.Config.AuthToken.Duration = 60 // seconds, matches downloadURLTTL

	url, err := asset.String()
	if err != nil {
		return "", fmt.Errorf("failed to sign download URL for %s: %w", filePath, err)
	}

	return url, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, filePath, fileType string) error {
	if s == nil || s.cld == nil {
		return fmt.Errorf("cloudinary storage is not initialized")
	}

	params := uploader.DestroyParams{
		PublicID:     filePath,
		ResourceType: resourceType(fileType),
		Type:         "authenticated",
		Invalidate:   api.Bool(true),
	}

	resp, err := s.cld.Upload.Destroy(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to delete file from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy returned result: %s", resp.Result)
	}

	return nil
}

// resourceType maps the portal file type onto Cloudinary's resource types.
// Non-image documents (PDFs and the like) are stored as raw assets.
func resourceType(fileType string) string {
	if fileType == "image" {
		return "image"
	}
	return "raw"
}

func assetType(fileType string) api.AssetType {
	if fileType == "image" {
		return api.Image
	}
	return api.File
}

func sanitizeFileName(fileName string) string {
	return strings.ReplaceAll(fileName, " ", "_")
}
