package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/sync/errgroup"

	"mosque/internal/keys"
	"mosque/internal/models"
)

// S3Service is a client for S3-compatible storage.
type S3Service struct {
	client *minio.Client
}

// NewS3Service connects to MinIO with credentials from the environment.
func NewS3Service() (*S3Service, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("missing one or more required environment variables: MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY")
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	log.Println("Successfully connected to MinIO endpoint:", endpoint)
	return &S3Service{client: client}, nil
}

func (s *S3Service) CreateBucket(ctx context.Context, bucketName string, location string) (bool, error) {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return false, fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		err = s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: location})
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// GetMosques reads the collection stored under objectKey.
func (s *S3Service) GetMosques(ctx context.Context, bucketName, objectKey string) ([]models.Mosque, error) {
	object, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object from S3: %w", err)
	}
	defer object.Close()

	mosques, err := decodeMosques(object)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", objectKey, err)
	}
	log.Printf("Retrieved %d mosques from bucket '%s' with key '%s'", len(mosques), bucketName, objectKey)
	return mosques, nil
}

// StoreDataset writes the whole collection under keys.Dataset and one object
// per district under keys.District. Uploads run concurrently.
func (s *S3Service) StoreDataset(ctx context.Context, bucketName, dataset string, mosques []models.Mosque) error {
	byDistrict := make(map[string][]models.Mosque)
	for _, m := range mosques {
		d := m.DistrictOrOther()
		byDistrict[d] = append(byDistrict[d], m)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for district, list := range byDistrict {
		district, list := district, list
		g.Go(func() error {
			return s.putJSON(ctx, bucketName, keys.District(dataset, district), list)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// The full dataset goes last: its notification triggers reloads.
	if err := s.putJSON(ctx, bucketName, keys.Dataset(dataset), mosques); err != nil {
		return err
	}
	log.Printf("Stored %d mosques in %d districts under dataset '%s'", len(mosques), len(byDistrict), dataset)
	return nil
}

func (s *S3Service) putJSON(ctx context.Context, bucketName, objectKey string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", objectKey, err)
	}
	_, err = s.client.PutObject(
		ctx,
		bucketName,
		objectKey,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to store object %s in S3: %w", objectKey, err)
	}
	return nil
}

// S3Source loads one dataset object from a bucket.
type S3Source struct {
	Service *S3Service
	Bucket  string
	Key     string
}

func (s S3Source) Load(ctx context.Context) ([]models.Mosque, error) {
	return s.Service.GetMosques(ctx, s.Bucket, s.Key)
}
