// @title 3D 模型对比问卷 API
// @version 1.0
// @description 问卷页面与评分结果追加服务

// @host localhost:3000
// @BasePath /

package main

import (
	"flag"
	"log"

	"github.com/kaanoztekin99/3d-object-generation/internal/app"
	"github.com/kaanoztekin99/3d-object-generation/internal/config"
	"github.com/kaanoztekin99/3d-object-generation/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer logger.Log.Sync()

	application.Run()
}
