package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/runcloud/runcloud_backend/internal/models"
	"github.com/runcloud/runcloud_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// CommunityController 掲示板に関するコントローラー
type CommunityController struct {
	communityService services.CommunityService
}

// NewCommunityController CommunityControllerを作成
func NewCommunityController(communityService services.CommunityService) *CommunityController {
	return &CommunityController{
		communityService: communityService,
	}
}

// EditPostRequest 投稿編集リクエスト
type EditPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// CommentRequest コメント作成リクエスト
type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create 新しい投稿を作成（multipart、画像は任意）
func (c *CommunityController) Create(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	// マルチパートフォームを解析
	if err := ctx.Request.ParseMultipartForm(32 << 20); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "マルチパートフォームの解析に失敗しました"})
		return
	}

	title := ctx.PostForm("title")
	content := ctx.PostForm("content")
	category := ctx.PostForm("category")

	// 画像は任意
	var image multipart.File
	var imageHeader *multipart.FileHeader
	if file, header, err := ctx.Request.FormFile("image"); err == nil {
		image = file
		imageHeader = header
		defer file.Close()
	}

	post, err := c.communityService.CreatePost(u.ID, category, title, content, image, imageHeader)
	if err != nil {
		if errors.Is(err, services.ErrUploadFailed) {
			ctx.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"post": post})
}

// List カテゴリの投稿一覧を取得
func (c *CommunityController) List(ctx *gin.Context) {
	category := ctx.Query("category")
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	if err != nil {
		limit = 0
	}

	posts, total, pages, err := c.communityService.ListPosts(category, page, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"posts": posts,
		"total": total,
		"pages": pages,
		"page":  page,
	})
}

// GetByID 投稿詳細を取得（閲覧数が増える）
func (c *CommunityController) GetByID(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "無効なIDです"})
		return
	}

	// 認証は任意。認証済みなら is_owner の判定に使う
	var callerID *uint
	if user, exists := ctx.Get("user"); exists {
		u := user.(*models.User)
		callerID = &u.ID
	}

	detail, err := c.communityService.GetPostDetail(uint(id), callerID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, detail)
}

// Update 投稿を編集（投稿者本人のみ）
func (c *CommunityController) Update(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "無効なIDです"})
		return
	}

	var req EditPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := c.communityService.EditPost(uint(id), u.ID, req.Title, req.Content)
	if err != nil {
		c.writeCommunityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"post": post})
}

// Delete 投稿を論理削除（投稿者本人のみ）
func (c *CommunityController) Delete(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "無効なIDです"})
		return
	}

	if err := c.communityService.DeletePost(uint(id), u.ID); err != nil {
		c.writeCommunityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "投稿を削除しました"})
}

// CreateComment 投稿にコメントを追加
func (c *CommunityController) CreateComment(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "無効なIDです"})
		return
	}

	var req CommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := c.communityService.AddComment(uint(id), u.ID, req.Content)
	if err != nil {
		c.writeCommunityError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// writeCommunityError サービス層のエラーをHTTPステータスに変換
func (c *CommunityController) writeCommunityError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyContent):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
