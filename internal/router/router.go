package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"marktplatz_dev_v1/internal/controller"
	"marktplatz_dev_v1/internal/middleware"

	_ "marktplatz_dev_v1/docs"
)

// Controllers 控制器集合
// ScanLog 在没配数据库时为 nil, 对应路由不注册
type Controllers struct {
	Artikel *controller.ArtikelController
	ScanLog *controller.ScanLogController
}

// SetupRouter 注册所有路由
func SetupRouter(ctls *Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API 路由组
	api := r.Group("/api")
	{
		// artikel Inserat 管理
		artikel := api.Group("/artikel")
		{
			// GET /api/artikel?q=&kategorie=
			artikel.GET("", ctls.Artikel.GetArtikel)
			// GET /api/artikel/stats
			artikel.GET("/stats", ctls.Artikel.GetStats)
			// POST /api/artikel
			artikel.POST("", ctls.Artikel.CreateArtikel)
			// PUT /api/artikel/:record_id
			artikel.PUT("/:record_id", ctls.Artikel.UpdateArtikel)
			// DELETE /api/artikel/:record_id
			artikel.DELETE("/:record_id", ctls.Artikel.DeleteArtikel)

			// POST /api/artikel/scan
			// 每次扫描都是付费 AI 调用, 按 IP 做冷却
			artikel.POST("/scan", middleware.ScanRateLimit(5*time.Second), ctls.Artikel.ScanFoto)
		}

		// scans 扫描日志查询 (需要数据库)
		if ctls.ScanLog != nil {
			scans := api.Group("/scans")
			{
				// GET /api/scans?limit=
				scans.GET("", ctls.ScanLog.GetScanLogs)
				// GET /api/scans/usage?start=&end=
				scans.GET("/usage", ctls.ScanLog.GetScanUsage)
				// GET /api/scans/:id
				scans.GET("/:id", ctls.ScanLog.GetScanLog)
			}
		}
	}

	return r
}
