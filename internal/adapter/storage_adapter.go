package adapter

import (
	"DonaTalkAPI/internal/config"
	"DonaTalkAPI/internal/helper"
	"DonaTalkAPI/internal/model"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrStorageDisabled = errors.New("s3 client is not initialized")

type StorageAdapter struct {
	client       *s3.Client
	bucket       string
	region       string
	publicDomain string
}

func NewStorageAdapter(cfg *config.AppConfig, s3Client *s3.Client) *StorageAdapter {
	return &StorageAdapter{
		client:       s3Client,
		bucket:       cfg.S3Bucket,
		region:       cfg.S3Region,
		publicDomain: cfg.S3PublicDomain,
	}
}

// Upload stores a multipart file under folder with a generated key.
func (s *StorageAdapter) Upload(ctx context.Context, file *multipart.FileHeader, folder string) (*model.StoredMedia, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}

	opened, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer opened.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if detected, err := helper.DetectFileContentType(opened); err == nil {
			contentType = detected
		}
	}

	key := path.Join(folder, helper.GenerateUniqueFileName(file.Filename))
	if err := s.StoreFromReader(ctx, opened, contentType, key); err != nil {
		return nil, err
	}

	return &model.StoredMedia{
		URL:         s.GetPublicURL(key),
		Key:         key,
		Format:      helper.FileFormat(file.Filename),
		Size:        file.Size,
		ContentType: contentType,
	}, nil
}

func (s *StorageAdapter) StoreFromReader(ctx context.Context, reader io.Reader, contentType string, key string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        reader,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

func (s *StorageAdapter) Delete(ctx context.Context, key string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

func (s *StorageAdapter) GetPublicURL(key string) string {
	if s.publicDomain != "" {
		return fmt.Sprintf("%s/%s", s.publicDomain, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}
