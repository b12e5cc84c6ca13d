package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"science_lms_backend/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// StorageService persists uploaded files (lesson videos and attachments,
// submission files) on local disk or MinIO depending on configuration.
type StorageService struct {
	cfg   *config.Config
	minio *minio.Client
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	s := &StorageService{cfg: cfg}
	if cfg.Storage.Type == "minio" {
		client, err := minio.New(cfg.Storage.MinioEndpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Storage.MinioAccessID, cfg.Storage.MinioSecret, ""),
			Secure: cfg.Storage.MinioUseSSL,
		})
		if err != nil {
			return nil, err
		}
		s.minio = client
	}
	return s, nil
}

// Save stores the upload under a timestamped name and returns the public URL
// path and, for local storage, the on-disk path.
func (s *StorageService) Save(ctx context.Context, file *multipart.FileHeader, subdir string) (url, localPath string, err error) {
	name := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(file.Filename))
	object := filepath.Join(subdir, name)

	src, err := file.Open()
	if err != nil {
		return "", "", err
	}
	defer src.Close()

	if s.minio != nil {
		_, err = s.minio.PutObject(ctx, s.cfg.Storage.MinioBucket, object, src, file.Size, minio.PutObjectOptions{
			ContentType: file.Header.Get("Content-Type"),
		})
		if err != nil {
			return "", "", err
		}
		return fmt.Sprintf("/%s/%s", s.cfg.Storage.MinioBucket, object), "", nil
	}

	localPath = filepath.Join(s.cfg.Storage.LocalPath, object)
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return "", "", err
	}
	dst, err := os.Create(localPath)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", "", err
	}
	return "/uploads/" + object, localPath, nil
}
