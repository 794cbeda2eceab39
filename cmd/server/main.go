package main

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/furniro/storefront/internal/app"
	"github.com/furniro/storefront/internal/config"
	"github.com/furniro/storefront/internal/logger"
	"github.com/furniro/storefront/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiDim    = "\033[2m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
)

func main() {
	// 解析命令行参数
	modeFlag := pflag.StringP("mode", "m", app.ModeAll, "启动模式: all (默认), api, worker")
	pflag.Parse()
	mode, err := app.ParseMode(*modeFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	printStartupBanner()

	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.UserJWT.SecretKey) {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
	} else if isWeakSecret(cfg.UserJWT.SecretKey) {
		stdLog.Printf("警告: JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	// 初始化数据库
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		Verbose:                cfg.Server.Mode == "debug",
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	// 自动迁移数据库表
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// 初始化默认管理员账号（角色在容器初始化时同步）
	defaultAdminEmail := os.Getenv("FN_DEFAULT_ADMIN_EMAIL")
	defaultAdminPass := os.Getenv("FN_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("警告: 未设置 FN_DEFAULT_ADMIN_PASSWORD，已跳过默认管理员初始化")
	} else if _, err := models.InitDefaultAdmin(defaultAdminEmail, defaultAdminPass); err != nil {
		stdLog.Printf("警告: 初始化默认管理员失败: %v", err)
	}

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiYellow + "███████╗██╗   ██╗██████╗ ███╗   ██╗██╗██████╗  ██████╗ " + ansiReset)
	fmt.Println(ansiYellow + "██╔════╝██║   ██║██╔══██╗████╗  ██║██║██╔══██╗██╔═══██╗" + ansiReset)
	fmt.Println(ansiYellow + "█████╗  ██║   ██║██████╔╝██╔██╗ ██║██║██████╔╝██║   ██║" + ansiReset)
	fmt.Println(ansiYellow + "██╔══╝  ██║   ██║██╔══██╗██║╚██╗██║██║██╔══██╗██║   ██║" + ansiReset)
	fmt.Println(ansiYellow + "██║     ╚██████╔╝██║  ██║██║ ╚████║██║██║  ██║╚██████╔╝" + ansiReset)
	fmt.Println(ansiYellow + "╚═╝      ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═══╝╚═╝╚═╝  ╚═╝ ╚═════╝ " + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Furniro Storefront API" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	return strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key")
}
