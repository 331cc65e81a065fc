package controllers

import (
	"errors"
	"net/http"

	"github.com/runcloud/runcloud_backend/internal/models"
	"github.com/runcloud/runcloud_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// RunController ランニング記録に関するコントローラー
type RunController struct {
	runService services.RunService
}

// NewRunController RunControllerを作成
func NewRunController(runService services.RunService) *RunController {
	return &RunController{
		runService: runService,
	}
}

// RecordRequest 記録作成リクエスト
// 距離・時間は文字列で受け取り、サービス側で数値として検証する
type RecordRequest struct {
	Distance string `json:"distance" binding:"required"`
	Duration string `json:"duration" binding:"required"`
}

// runResponse 記録レスポンス
// recorded_at は表示用にUTC+9へ変換した時刻
type runResponse struct {
	ID         uint    `json:"id"`
	Distance   float64 `json:"distance"`
	Duration   int     `json:"duration"`
	RecordedAt string  `json:"recorded_at"`
}

// Record 新しい記録を作成
func (c *RunController) Record(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	var req RecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	run, err := c.runService.Record(u.ID, req.Distance, req.Duration)
	if err != nil {
		if errors.Is(err, services.ErrInvalidNumber) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"run": toRunResponse(*run)})
}

// List 自分の記録一覧を新しい順に取得
func (c *RunController) List(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	runs, err := c.runService.ListByUser(u.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	responses := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, toRunResponse(run))
	}

	ctx.JSON(http.StatusOK, gin.H{"runs": responses})
}

// toRunResponse 記録をレスポンス形式に変換
func toRunResponse(run models.Run) runResponse {
	return runResponse{
		ID:         run.ID,
		Distance:   run.Distance,
		Duration:   run.Duration,
		RecordedAt: run.CreatedAt.In(models.KST).Format("2006-01-02 15:04:05"),
	}
}
