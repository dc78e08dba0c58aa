package storage

import (
	"context"
	"io"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/devtrio/wanderswipe/config"
	"github.com/pkg/errors"
)

type Cloudinary struct {
	CLD *cloudinary.Cloudinary
}

// NewCloudinary never fails hard: without credentials profile photo uploads
// are rejected at call time while the rest of the server keeps working.
func NewCloudinary(cfg *config.Config) *Cloudinary {
	cld, err := cloudinary.NewFromParams(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
	if err != nil {
		log.Printf("Warning: failed to initialize Cloudinary, photo uploads disabled: %v", err)
		return &Cloudinary{}
	}

	return &Cloudinary{CLD: cld}
}

func (c *Cloudinary) UploadImage(ctx context.Context, file io.Reader, folder string) (string, error) {
	if c.CLD == nil {
		return "", errors.New("cloudinary is not configured")
	}
	resp, err := c.CLD.Upload.Upload(ctx, file, uploader.UploadParams{Folder: folder})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}
