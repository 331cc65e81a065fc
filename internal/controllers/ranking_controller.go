package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/runcloud/runcloud_backend/internal/models"
	"github.com/runcloud/runcloud_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// RankingController ランキングと月別集計に関するコントローラー
type RankingController struct {
	rankingService services.RankingService
}

// NewRankingController RankingControllerを作成
func NewRankingController(rankingService services.RankingService) *RankingController {
	return &RankingController{
		rankingService: rankingService,
	}
}

// List 累計距離の上位ユーザーを取得
func (c *RankingController) List(ctx *gin.Context) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		limit = 10
	}

	totals, err := c.rankingService.TopN(limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"rankings": totals})
}

// Me 自分の順位と累計距離を取得
func (c *RankingController) Me(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	rank, total, err := c.rankingService.RankOf(u.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotRanked) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"rank":           rank,
		"total_distance": total,
	})
}

// Monthly 自分の月別累計距離を取得
func (c *RankingController) Monthly(ctx *gin.Context) {
	user, exists := ctx.Get("user")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "認証が必要です"})
		return
	}
	u := user.(*models.User)

	labels, totals, err := c.rankingService.MonthlySeries(u.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"labels": labels,
		"totals": totals,
	})
}
