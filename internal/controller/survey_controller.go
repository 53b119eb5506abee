package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaanoztekin99/3d-object-generation/internal/service"
	"github.com/kaanoztekin99/3d-object-generation/internal/util"
)

// ratingScale Likert 1-5
var ratingScale = []int{1, 2, 3, 4, 5}

type SurveyController struct {
	service *service.SurveyService
	title   string
}

func NewSurveyController(s *service.SurveyService, title string) *SurveyController {
	return &SurveyController{service: s, title: title}
}

// Index 渲染问卷页面; 左右分配在这里抽取一次, 同时决定位置和字段名
func (c *SurveyController) Index(ctx *gin.Context) {
	ctx.Header("Cache-Control", "no-store")
	ctx.HTML(http.StatusOK, "survey.html", gin.H{
		"Title":       c.title,
		"Assignments": c.service.Assignments(),
		"Scale":       ratingScale,
	})
}

// Submit 表单提交: 构造行, 一次发送到保存接口, 渲染结果页
func (c *SurveyController) Submit(ctx *gin.Context) {
	if err := ctx.Request.ParseForm(); err != nil {
		ctx.HTML(http.StatusBadRequest, "result.html", gin.H{"Title": c.title, "OK": false})
		return
	}

	if _, err := c.service.SubmitForm(ctx.Request.Context(), ctx.Request.PostForm); err != nil {
		ctx.HTML(http.StatusBadGateway, "result.html", gin.H{"Title": c.title, "OK": false})
		return
	}

	ctx.HTML(http.StatusOK, "result.html", gin.H{"Title": c.title, "OK": true})
}

// Questions godoc
// @Summary 题目列表
// @Tags 问卷
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Question}
// @Router /api/questions [get]
func (c *SurveyController) Questions(ctx *gin.Context) {
	util.Success(ctx, c.service.Catalog().Questions)
}
