package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marktplatz_dev_v1/internal/controller"
	"marktplatz_dev_v1/internal/model"
	"marktplatz_dev_v1/internal/repository"
	"marktplatz_dev_v1/internal/router"
	"marktplatz_dev_v1/internal/service"
	"marktplatz_dev_v1/internal/task"
	"marktplatz_dev_v1/pkg/database"
	"marktplatz_dev_v1/pkg/livingapps"
)

func main() {
	// 1. 初始化数据库 (只用于扫描日志, 可选)
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 5. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Store       *livingapps.Client
	Services    *Services
	Controllers *router.Controllers
}

// Services 服务集合
type Services struct {
	Artikel *service.ArtikelService
	AI      *service.AIService
	Storage service.StorageProvider
}

// initDatabase 初始化扫描日志数据库
// 没配 DSN 就不落库, 扫描功能照常工作
func initDatabase() *gorm.DB {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Println("未配置 DATABASE_DSN, 扫描日志不落库")
		return nil
	}
	return database.InitDB(dsn, &model.ScanLog{})
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- records 后端客户端 --------
	store := livingapps.NewClient(&livingapps.Config{
		BaseURL:  getEnv("LIVINGAPPS_BASE_URL", "https://my.living-apps.de"),
		AppID:    getEnv("LIVINGAPPS_APP_ID", ""),
		APIToken: getEnv("LIVINGAPPS_API_TOKEN", ""),
	})

	// -------- Repository 层 --------
	var scanLogRepo repository.ScanLogRepository
	if db != nil {
		scanLogRepo = repository.NewScanLogRepository(db)
	}

	// -------- Service 层 --------
	services := &Services{}
	services.AI = service.NewAIService(&service.AIConfig{
		ApiKey: getEnv("GEMINI_API_KEY", ""),
		Model:  getEnv("GEMINI_MODEL", ""),
	}, scanLogRepo)
	services.Artikel = service.NewArtikelService(store)
	services.Storage = initStorageProvider()

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Artikel: controller.NewArtikelController(services.Artikel, services.AI, services.Storage),
	}
	if scanLogRepo != nil {
		controllers.ScanLog = controller.NewScanLogController(scanLogRepo)
	}

	return &Dependencies{
		DB:          db,
		Store:       store,
		Services:    services,
		Controllers: controllers,
	}
}

// initStorageProvider 初始化照片存储
func initStorageProvider() service.StorageProvider {
	provider := getEnv("STORAGE_PROVIDER", "")
	if provider == "" {
		log.Println("未配置 STORAGE_PROVIDER, 扫描照片不上传")
		return nil
	}

	storage, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  provider,
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", ""),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "marktplatz"),
		BaseURL:   getEnv("STORAGE_BASE_URL", ""),
	})
	if err != nil {
		log.Printf("警告: 存储服务初始化失败: %v", err)
		return nil
	}
	return storage
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	refreshTask := task.NewRefreshTask(
		deps.Services.Artikel,
		getEnv("CACHE_REFRESH_SPEC", ""),
	)
	refreshTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭, 最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
