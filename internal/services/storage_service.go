package services

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/runcloud/runcloud_backend/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

// ImageStorage 画像ストレージとの連携を管理するインターフェース
// アップロードに成功すると公開URLを返す
type ImageStorage interface {
	Upload(file multipart.File, fileName string) (string, error)
}

// s3Storage S3をバックエンドとするImageStorageの実装
type s3Storage struct {
	sess *session.Session
	cfg  *config.Config
}

// NewS3Storage S3のImageStorageを作成
func NewS3Storage(cfg *config.Config) (ImageStorage, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
	})
	if err != nil {
		return nil, err
	}

	return &s3Storage{
		sess: sess,
		cfg:  cfg,
	}, nil
}

// Upload 画像をS3にアップロードして公開URLを返す
func (s *s3Storage) Upload(file multipart.File, fileName string) (string, error) {
	// ファイルを最初の位置に戻す
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	key := fmt.Sprintf("posts/%s%s", uuid.New().String(), ext)

	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	svc := s3.New(s.sess)
	_, err = svc.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.AWS.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("S3へのアップロードに失敗しました: %v", err)
	}

	// CDNドメインが設定されていればCDN経由のURL、なければS3の標準URL
	if s.cfg.AWS.CDNDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cfg.AWS.CDNDomain, key), nil
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.AWS.S3Bucket, s.cfg.AWS.Region, key), nil
}
