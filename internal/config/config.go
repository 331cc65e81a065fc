package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config アプリケーション設定
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Storage    StorageConfig
	AWS        AWSConfig
	Cloudinary CloudinaryConfig
	Community  CommunityConfig
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig データベース設定
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

// AuthConfig 認証設定
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// StorageConfig 画像ストレージ設定
type StorageConfig struct {
	Provider      string // "s3" または "cloudinary"
	MaxUploadSize int64
	AllowedTypes  []string
}

// AWSConfig AWS設定（S3アップロード用）
type AWSConfig struct {
	Region    string
	S3Bucket  string
	CDNDomain string // 設定されている場合は https://{CDNDomain}/{key} を公開URLとする
}

// CloudinaryConfig Cloudinary設定
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// CommunityConfig 掲示板設定
type CommunityConfig struct {
	DefaultCategory string
	PageSize        int
	// コメント作成時に親投稿の存在を検証するか
	// （旧実装は検証していないため、デフォルトは無効）
	ValidateCommentParent bool
}

// Load 環境変数から設定をロード
func Load() (*Config, error) {
	// .env ファイルをロード (存在すれば)
	_ = godotenv.Load()

	// デフォルト値を設定
	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 10)) * time.Second,
			WriteTimeout: time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 10)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Username: getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "runcloud_db"),
		},
		Auth: AuthConfig{
			JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
			TokenExpiry: time.Duration(getEnvAsInt("TOKEN_EXPIRY", 24)) * time.Hour,
		},
		Storage: StorageConfig{
			Provider:      getEnv("STORAGE_PROVIDER", "s3"),
			MaxUploadSize: int64(getEnvAsInt("MAX_UPLOAD_SIZE", 10)) * 1024 * 1024, // MB to Bytes
			AllowedTypes:  []string{".png", ".jpg", ".jpeg", ".gif", ".webp"},
		},
		AWS: AWSConfig{
			Region:    getEnv("AWS_REGION", "ap-northeast-2"),
			S3Bucket:  getEnv("AWS_S3_BUCKET", "runcloud-uploads"),
			CDNDomain: getEnv("CDN_DOMAIN", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    getEnv("CLOUDINARY_API_KEY", ""),
			APISecret: getEnv("CLOUDINARY_API_SECRET", ""),
			Folder:    getEnv("CLOUDINARY_FOLDER", "runcloud"),
		},
		Community: CommunityConfig{
			DefaultCategory:       getEnv("COMMUNITY_DEFAULT_CATEGORY", "free"),
			PageSize:              getEnvAsInt("COMMUNITY_PAGE_SIZE", 10),
			ValidateCommentParent: getEnvAsBool("COMMUNITY_VALIDATE_COMMENT_PARENT", false),
		},
	}

	return config, nil
}

// getEnv 環境変数を取得、存在しない場合はデフォルト値を返す
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt 環境変数を整数として取得
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool 環境変数をboolとして取得
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
