package controller

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"marktplatz_dev_v1/internal/repository"
)

// ScanLogController 扫描日志查询接口
// 只在配置了数据库时才会被注册, 给运营排查识别失败率和 AI 成本用
type ScanLogController struct {
	scanLogRepo repository.ScanLogRepository
}

func NewScanLogController(scanLogRepo repository.ScanLogRepository) *ScanLogController {
	return &ScanLogController{scanLogRepo: scanLogRepo}
}

// GetScanLogs 获取最近的扫描日志
// @Summary 按时间倒序获取最近的 Foto 扫描日志
// @Tags ScanLog
// @Param limit query int false "返回条数" default(50)
// @Success 200 {object} map[string]interface{}
// @Router /api/scans [get]
func (ctrl *ScanLogController) GetScanLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	logs, err := ctrl.scanLogRepo.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "查询扫描日志失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    logs,
		"total":   len(logs),
	})
}

// GetScanLog 获取单条扫描日志详情
// @Summary 按 ID 获取一条扫描日志 (含模型原始返回)
// @Tags ScanLog
// @Param id path int true "日志ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/scans/{id} [get]
func (ctrl *ScanLogController) GetScanLog(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "无效的日志ID"})
		return
	}

	entry, err := ctrl.scanLogRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"code": 404, "message": "扫描日志不存在"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "查询扫描日志失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": entry})
}

// GetScanUsage 获取扫描用量统计
// @Summary 统计时间段内的扫描次数/成功率/平均耗时/图片总量
// @Tags ScanLog
// @Param start query string false "开始时间 (RFC3339)"
// @Param end query string false "结束时间 (RFC3339)"
// @Success 200 {object} map[string]interface{}
// @Router /api/scans/usage [get]
func (ctrl *ScanLogController) GetScanUsage(c *gin.Context) {
	start, err := parseTimeParam(c.Query("start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "start 时间格式错误, 需要 RFC3339"})
		return
	}
	end, err := parseTimeParam(c.Query("end"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "message": "end 时间格式错误, 需要 RFC3339"})
		return
	}

	stats, err := ctrl.scanLogRepo.GetUsage(c.Request.Context(), start, end)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "message": "统计查询失败: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": stats})
}

// parseTimeParam 解析时间查询参数, 未传返回零值 (表示不限制)
func parseTimeParam(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, raw)
}
