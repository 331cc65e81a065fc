package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/runcloud/runcloud_backend/internal/config"
	"github.com/runcloud/runcloud_backend/internal/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// cloudinaryStorage CloudinaryをバックエンドとするImageStorageの実装
type cloudinaryStorage struct {
	cld *cloudinary.Cloudinary
	cfg *config.Config
}

// NewCloudinaryStorage CloudinaryのImageStorageを作成
func NewCloudinaryStorage(cfg *config.Config) (ImageStorage, error) {
	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
	)
	if err != nil {
		return nil, err
	}

	return &cloudinaryStorage{
		cld: cld,
		cfg: cfg,
	}, nil
}

// Upload 画像をCloudinaryにアップロードして公開URLを返す
func (s *cloudinaryStorage) Upload(file multipart.File, fileName string) (string, error) {
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		return "", fmt.Errorf("ファイルの読み込みに失敗しました: %v", err)
	}

	// publicIDに拡張子は含めない
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	publicID := fmt.Sprintf("%d_%s_%s", time.Now().Unix(), utils.GenerateRandomString(8), base)

	result, err := s.cld.Upload.Upload(context.Background(), buf, uploader.UploadParams{
		Folder:       s.cfg.Cloudinary.Folder,
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("Cloudinaryへのアップロードに失敗しました: %v", err)
	}

	return result.SecureURL, nil
}
