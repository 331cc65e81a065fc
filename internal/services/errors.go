package services

import "errors"

// サービス層のエラー。コントローラーは errors.Is でHTTPステータスに変換する
var (
	// ErrUsernameTaken ユーザー名が既に登録されている
	ErrUsernameTaken = errors.New("このユーザー名は既に使用されています")

	// ErrEmailTaken メールアドレスが既に登録されている
	ErrEmailTaken = errors.New("このメールアドレスは既に使用されています")

	// ErrAuthentication 認証失敗
	// ユーザーが存在しない場合とパスワードが誤っている場合を区別しない
	ErrAuthentication = errors.New("ユーザー名またはパスワードが正しくありません")

	// ErrForbidden 所有者チェックに失敗した
	ErrForbidden = errors.New("この操作を行う権限がありません")

	// ErrNotFound 対象が存在しないか論理削除済み
	ErrNotFound = errors.New("投稿が見つかりません")

	// ErrUploadFailed 画像ストレージへのアップロードに失敗した
	ErrUploadFailed = errors.New("画像のアップロードに失敗しました")

	// ErrNotRanked ランキング内にユーザーが存在しない
	ErrNotRanked = errors.New("ランキングにユーザーが見つかりません")

	// ErrInvalidNumber 距離・時間が0以上の数値として解釈できない
	ErrInvalidNumber = errors.New("距離と時間は0以上の数値で入力してください")

	// ErrEmptyContent 本文が空
	ErrEmptyContent = errors.New("内容は必須です")
)
