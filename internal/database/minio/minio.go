package minio

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"claim-service/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient wraps the MinIO client with claim service specific functionality
type MinioClient struct {
	client *minio.Client
	config config.MinioConfig
}

// Storage defines bucket names for different data types in claim service
var Storage = struct {
	DamagePhotos      string
	AssessmentReports string
	ClaimDocuments    string
}{
	DamagePhotos:      "damage-photos",
	AssessmentReports: "assessment-reports",
	ClaimDocuments:    "claim-documents",
}

var BucketNames = []string{
	Storage.DamagePhotos,
	Storage.AssessmentReports,
	Storage.ClaimDocuments,
}

// NewMinioClient connects to MinIO and makes sure every bucket exists.
func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	endpoint := strings.TrimPrefix(cfg.MinioURL, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	isSecure, err := strconv.ParseBool(cfg.MinioSecure)
	if err != nil {
		slog.Warn("Invalid value for MinIO secure flag, defaulting to false", "value", cfg.MinioSecure)
		isSecure = false
	}

	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: isSecure,
		Region: cfg.MinioLocation,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err = minioClient.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO server: %w", err)
	}

	slog.Info("Successfully connected to MinIO", "endpoint", cfg.MinioURL)

	mc := &MinioClient{
		client: minioClient,
		config: cfg,
	}

	for _, bucketName := range BucketNames {
		if err := mc.ensureBucket(ctx, bucketName); err != nil {
			return nil, fmt.Errorf("failed to ensure bucket %s: %w", bucketName, err)
		}
	}

	return mc, nil
}

func (mc *MinioClient) ensureBucket(ctx context.Context, bucketName string) error {
	exists, err := mc.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("error checking bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	err = mc.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{
		Region: mc.config.MinioLocation,
	})
	if err != nil {
		return fmt.Errorf("error creating bucket %s: %w", bucketName, err)
	}
	slog.Info("Created bucket", "bucket", bucketName)
	return nil
}

// UploadBytes uploads byte data to the specified bucket
func (mc *MinioClient) UploadBytes(ctx context.Context, bucketName, objectName string, data []byte, contentType string) error {
	_, err := mc.client.PutObject(ctx, bucketName, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("failed to upload bytes to %s in bucket %s: %w", objectName, bucketName, err)
	}

	slog.Debug("Uploaded object", "bucket", bucketName, "object", objectName, "size", len(data))
	return nil
}

// DeleteFile removes an object. Removing a missing object is not an error.
func (mc *MinioClient) DeleteFile(ctx context.Context, bucketName, objectName string) error {
	err := mc.client.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file %s from bucket %s: %w", objectName, bucketName, err)
	}
	return nil
}

// GetPresignedURL generates a presigned URL for temporary access to an object.
// A zero expiry uses the configured default.
func (mc *MinioClient) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	if expiry <= 0 {
		expiry = mc.config.PresignExpiry
	}
	presignedURL, err := mc.client.PresignedGetObject(ctx, bucketName, objectName, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL for %s in bucket %s: %w", objectName, bucketName, err)
	}

	return presignedURL.String(), nil
}

// Ping is used by the health check.
func (mc *MinioClient) Ping(ctx context.Context) error {
	_, err := mc.client.BucketExists(ctx, Storage.ClaimDocuments)
	return err
}
