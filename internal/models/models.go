package models

import (
	"time"
)

// KST 表示用のタイムゾーン（UTC+9）
// DBにはUTCで保存し、表示時のみこのオフセットを適用する
var KST = time.FixedZone("KST", 9*60*60)

// User ユーザーモデル
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// リレーション
	Runs     []Run     `json:"-"`
	Posts    []Post    `json:"-"`
	Comments []Comment `json:"-"`
}

// Run ランニング記録モデル
// 作成後は変更・削除されない（追記専用）
type Run struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Distance  float64   `json:"distance" gorm:"not null"` // km
	Duration  int       `json:"duration" gorm:"not null"` // 分
	CreatedAt time.Time `json:"created_at"`

	// リレーション
	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// Post 掲示板の投稿モデル
// 削除は is_deleted フラグによる論理削除のみ
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Category  string    `json:"category" gorm:"not null;default:'free';index"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	ImageURL  string    `json:"image_url"`
	Views     int       `json:"views" gorm:"default:0"`
	IsDeleted bool      `json:"-" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// リレーション
	User     *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-"`
}

// Comment コメントモデル
// 作成後は変更・削除されない。親投稿が論理削除されてもコメント行は残る
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	// リレーション
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Post Post  `json:"-"`
}
