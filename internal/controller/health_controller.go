package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaanoztekin99/3d-object-generation/internal/util"
)

// Pinger 可选依赖的连通性检查
type Pinger interface {
	Ping(ctx context.Context) error
}

// WritableChecker 结果目录是否可写
type WritableChecker interface {
	Writable() error
}

type HealthController struct {
	store WritableChecker
	db    Pinger
}

// NewHealthController db 可以为 nil
func NewHealthController(store WritableChecker, db Pinger) *HealthController {
	return &HealthController{store: store, db: db}
}

// @Summary 健康检查
// @Description 检查结果目录和数据库
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{}

	if err := c.store.Writable(); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Results directory not writable")
		return
	}
	components["csv"] = "up"

	if c.db != nil {
		if err := c.db.Ping(ctx.Request.Context()); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		components["database"] = "up"
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}
