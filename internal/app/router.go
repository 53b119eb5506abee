package app

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kaanoztekin99/3d-object-generation/docs"
	"github.com/kaanoztekin99/3d-object-generation/internal/config"
	"github.com/kaanoztekin99/3d-object-generation/pkg/monitoring"
	"github.com/kaanoztekin99/3d-object-generation/web"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 问卷页面和表单
	router.GET("/", c.survey.Index)
	router.POST("/submit", c.survey.Submit)

	// 2. 结果写入
	router.POST("/save", c.results.Save)

	// 3. JSON 接口
	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
		api.GET("/questions", c.survey.Questions)
		api.GET("/results/export", c.results.Export)
	}

	// 4. 静态资源
	router.StaticFS("/static", http.FS(web.Static()))
	if info, err := os.Stat(cfg.Survey.AssetsDir); err == nil && info.IsDir() {
		router.Static("/assets", cfg.Survey.AssetsDir)
	}
}
