package main

import (
	"context"
	"flag"
	"log"
	"os"

	"syntex_backend/internal/app"
	"syntex_backend/internal/config"
	"syntex_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// 命令行参数
	configDir := flag.String("config", "configs", "config.yaml 所在目录")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	createSuperuser := flag.Bool("create-superuser", false, "创建超级管理员，需要同时指定 -email 和 -password")
	email := flag.String("email", "", "超级管理员 email")
	password := flag.String("password", "", "超级管理员密码")
	listUsers := flag.Bool("list-users", false, "按 email 排序列出全部用户")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.MigrateOnly = *migrateOnly

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	// 迁移在 NewApp 中完成
	if cfg.MigrateOnly {
		logger.Log.Info("数据库迁移完成，退出程序")
		return
	}

	ctx := context.Background()

	if *createSuperuser {
		user, err := application.Services.User.CreateSuperuser(ctx, *email, *password)
		if err != nil {
			logger.Log.Error("创建超级管理员失败", zap.Error(err))
			application.Close()
			os.Exit(1)
		}
		logger.Log.Info("超级管理员已创建", zap.String("email", user.Email))
	}

	if *listUsers {
		if err := application.ListUsers(ctx, os.Stdout); err != nil {
			logger.Log.Error("列出用户失败", zap.Error(err))
			application.Close()
			os.Exit(1)
		}
	}
}
