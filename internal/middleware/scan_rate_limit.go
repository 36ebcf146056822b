package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== ScanRateLimiter 扫描限流器 ====================

// ScanRateLimiter Foto 扫描限流器
// 每次扫描都是一次付费的 AI 调用, 防止用户连点把账单刷爆
type ScanRateLimiter struct {
	locks sync.Map // key -> *lockEntry
}

// lockEntry 锁条目
type lockEntry struct {
	lastTime time.Time
	mu       sync.Mutex
}

// 全局限流器实例
var globalLimiter = &ScanRateLimiter{}

// GetLimiter 获取全局限流器
func GetLimiter() *ScanRateLimiter {
	return globalLimiter
}

// ==================== 限流检查 ====================

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 检查是否允许执行
// key: 限流键, 如 "scan:1.2.3.4"
// interval: 冷却间隔
func (r *ScanRateLimiter) Check(key string, interval time.Duration) CheckResult {
	actual, _ := r.locks.LoadOrStore(key, &lockEntry{})
	entry := actual.(*lockEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(entry.lastTime)

	if elapsed < interval {
		return CheckResult{
			Allowed:    false,
			RetryAfter: interval - elapsed,
		}
	}

	entry.lastTime = now
	return CheckResult{Allowed: true}
}

// Reset 清除某个键的冷却 (测试用)
func (r *ScanRateLimiter) Reset(key string) {
	r.locks.Delete(key)
}

// ==================== Gin 中间件 ====================

// ScanRateLimit 按客户端 IP 给扫描接口限流
func ScanRateLimit(interval time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "scan:" + c.ClientIP()
		result := GetLimiter().Check(key, interval)

		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": fmt.Sprintf("扫描太频繁, 请 %.0f 秒后再试", result.RetryAfter.Seconds()),
			})
			return
		}

		c.Next()
	}
}
