package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kaanoztekin99/3d-object-generation/internal/service"
	"github.com/kaanoztekin99/3d-object-generation/internal/util"
	"github.com/kaanoztekin99/3d-object-generation/pkg/logger"
	"go.uber.org/zap"
)

type ResultsController struct {
	service       *service.ResultsService
	exportEnabled bool
}

func NewResultsController(s *service.ResultsService, exportEnabled bool) *ResultsController {
	return &ResultsController{service: s, exportEnabled: exportEnabled}
}

// SaveRequest 行是 7 个字符串或数字组成的数组
type SaveRequest struct {
	Rows json.RawMessage `json:"rows" swaggertype:"array,object"`
}

// Save godoc
// @Summary 追加评分行到结果 CSV
// @Description 文件不存在时先写表头, 然后按顺序追加所有行
// @Tags 结果
// @Accept json
// @Produce json
// @Param body body SaveRequest true "rows"
// @Success 200 {object} util.StatusResponse
// @Failure 400 {object} util.ErrorResponse "rows array missing; 或 invalid row (某行不是 7 个标量), detail 给出行号"
// @Failure 500 {object} util.ErrorResponse
// @Router /save [post]
func (c *ResultsController) Save(ctx *gin.Context) {
	var req SaveRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.Fail(ctx, http.StatusBadRequest, util.ErrRowsMissing.Error())
		return
	}

	n, err := c.service.Save(ctx.Request.Context(), req.Rows)
	if err != nil {
		var rowErr *service.RowError
		switch {
		case errors.Is(err, util.ErrRowsMissing):
			util.Fail(ctx, http.StatusBadRequest, util.ErrRowsMissing.Error())
		case errors.As(err, &rowErr):
			util.FailDetail(ctx, http.StatusBadRequest, util.ErrInvalidRow.Error(), rowErr.Error())
		default:
			util.Fail(ctx, http.StatusInternalServerError, util.ErrSaveFailed.Error())
		}
		return
	}

	logger.Log.Debug("rows saved", zap.Int("rows", n))
	util.StatusOK(ctx)
}

// Export godoc
// @Summary 下载结果 CSV
// @Tags 结果
// @Produce text/csv
// @Success 200 {file} file
// @Failure 404 {object} util.Response
// @Router /api/results/export [get]
func (c *ResultsController) Export(ctx *gin.Context) {
	if !c.exportEnabled {
		util.NotFound(ctx)
		return
	}

	f, size, err := c.service.Export()
	if err != nil {
		if errors.Is(err, util.ErrResultsNotFound) {
			util.Error(ctx, http.StatusNotFound, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	defer f.Close()

	ctx.Header("Content-Disposition", `attachment; filename="survey_results.csv"`)
	ctx.Header("Content-Length", strconv.FormatInt(size, 10))
	ctx.Status(http.StatusOK)
	ctx.Writer.Header().Set("Content-Type", util.MimeCSV)
	if _, err := io.Copy(ctx.Writer, io.LimitReader(f, size)); err != nil {
		logger.Log.Warn("export interrupted", zap.Error(err))
	}
}
