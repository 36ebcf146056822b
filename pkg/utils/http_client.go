package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewAPIClient 创建一个配置好超时和 UA 的 Resty 客户端
// 它是全系统统一的网络请求入口
// 注意: 不配置 resty 的自动重试 —— 对 records 后端的每个用户动作只尝试一次,
// 失败直接上抛, 是否重试由前端用户决定
func NewAPIClient(timeout time.Duration) *resty.Client {
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Marktplatz-Go-App/1.0").
		SetHeader("Content-Type", "application/json")

	return client
}
