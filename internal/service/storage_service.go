package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"sals_backend/internal/config"
	"sals_backend/internal/model"
	"sals_backend/internal/util"
	"sals_backend/pkg/logger"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

const reportContentType = "application/json"

// ReportStore keeps archived progress reports and says where to fetch them.
type ReportStore interface {
	Put(ctx context.Context, key string, body []byte) (string, error)
	URL(key string) string
}

// LocalReportStore writes below StorageConfig.LocalPath, which the router
// serves at /reports.
type LocalReportStore struct {
	Root string
}

func (s *LocalReportStore) Put(_ context.Context, key string, body []byte) (string, error) {
	dst := filepath.Join(s.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, body, 0644); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *LocalReportStore) URL(key string) string {
	return "/reports/" + key
}

// MinioReportStore creates its bucket on the first write.
type MinioReportStore struct {
	Bucket string
	Client *minio.Client

	once      sync.Once
	bucketErr error
}

func NewMinioReportStore(cfg *config.StorageConfig) (*MinioReportStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioReportStore{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (s *MinioReportStore) ensureBucket(ctx context.Context) error {
	s.once.Do(func() {
		exists, err := s.Client.BucketExists(ctx, s.Bucket)
		if err == nil && !exists {
			err = s.Client.MakeBucket(ctx, s.Bucket, minio.MakeBucketOptions{})
		}
		s.bucketErr = err
	})
	return s.bucketErr
}

func (s *MinioReportStore) Put(ctx context.Context, key string, body []byte) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", fmt.Errorf("minio bucket %s: %w", s.Bucket, err)
	}
	_, err := s.Client.PutObject(ctx, s.Bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: reportContentType,
	})
	if err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *MinioReportStore) URL(key string) string {
	return "/" + s.Bucket + "/" + key
}

type OSSReportStore struct {
	Endpoint string
	Bucket   *oss.Bucket
}

func NewOSSReportStore(cfg *config.StorageConfig) (*OSSReportStore, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSReportStore{Endpoint: cfg.OSSEndpoint, Bucket: bucket}, nil
}

func (s *OSSReportStore) Put(_ context.Context, key string, body []byte) (string, error) {
	if err := s.Bucket.PutObject(key, bytes.NewReader(body), oss.ContentType(reportContentType)); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *OSSReportStore) URL(key string) string {
	host := strings.TrimPrefix(strings.TrimPrefix(s.Endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.Bucket.BucketName, host, key)
}

// StorageService archives progress reports.
type StorageService struct {
	Store ReportStore
}

// NewStorageService picks the store named by cfg.Type and falls back to
// local disk when the remote client cannot be built.
func NewStorageService(cfg *config.StorageConfig) *StorageService {
	var (
		store ReportStore
		err   error
	)
	switch cfg.Type {
	case util.StorageMinio:
		store, err = NewMinioReportStore(cfg)
	case util.StorageOSS:
		store, err = NewOSSReportStore(cfg)
	}
	if err != nil {
		logger.Log.Warn("Remote report storage unavailable, using local disk",
			zap.String("type", cfg.Type),
			zap.Error(err))
		store = nil
	}

	if store == nil {
		store = &LocalReportStore{Root: cfg.LocalPath}
	}
	return &StorageService{Store: store}
}

// ArchiveReport stores v as a JSON object under progress/<topic>/ and returns its URL.
func (s *StorageService) ArchiveReport(ctx context.Context, topic string, v interface{}) (string, error) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("progress/%s/%s-%s.json",
		slug(topic), time.Now().UTC().Format("20060102T150405Z"), model.GenerateUUID())
	return s.Store.Put(ctx, key, body)
}

func slug(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	if len(fields) == 0 {
		return "topic"
	}
	return strings.Join(fields, "-")
}
