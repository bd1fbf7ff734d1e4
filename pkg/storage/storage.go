package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Client wraps the object store holding request evidence images. Keys look
// like "{actor_id}/{random_file_stem}.png".
type Client interface {
	Upload(ctx context.Context, key string, file io.Reader) error
	Delete(ctx context.Context, key string) error
}

type clientImpl struct {
	folder   string
	uploader *uploader.API
}

var invalidateTrue = true

func (c *clientImpl) Upload(ctx context.Context, key string, file io.Reader) error {
	_, err := c.uploader.Upload(ctx, file, uploader.UploadParams{
		Folder:   c.folder,
		PublicID: key,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}
	return nil
}

func (c *clientImpl) Delete(ctx context.Context, key string) error {
	publicID := key
	if c.folder != "" {
		publicID = c.folder + "/" + key
	}
	_, err := c.uploader.Destroy(ctx, uploader.DestroyParams{
		PublicID:   publicID,
		Invalidate: &invalidateTrue,
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret, folder string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{folder: folder, uploader: up}, nil
}
