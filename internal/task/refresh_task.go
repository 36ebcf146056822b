package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"marktplatz_dev_v1/internal/service"
)

// ==================== RefreshTask 记录缓存刷新任务 ====================

// RefreshTask 记录缓存定时刷新任务
// 本服务触发的变更会立刻全量重载, 但别的渠道 (比如直接在 LivingApps 后台改数据)
// 产生的变更只能靠周期拉取发现
type RefreshTask struct {
	artikelSvc *service.ArtikelService
	cron       *cron.Cron
	spec       string
	timeout    time.Duration
}

// NewRefreshTask 创建刷新任务, spec 为空时默认每 5 分钟
func NewRefreshTask(artikelSvc *service.ArtikelService, spec string) *RefreshTask {
	if spec == "" {
		spec = "0 */5 * * * *"
	}

	return &RefreshTask{
		artikelSvc: artikelSvc,
		cron:       cron.New(cron.WithSeconds()),
		spec:       spec,
		timeout:    30 * time.Second,
	}
}

// Start 注册并启动定时任务
func (t *RefreshTask) Start() {
	if _, err := t.cron.AddFunc(t.spec, t.run); err != nil {
		log.Printf("缓存刷新任务注册失败: %v", err)
		return
	}

	t.cron.Start()
	log.Printf("缓存刷新任务已启动 (spec: %s)", t.spec)
}

// Stop 停止定时任务
func (t *RefreshTask) Stop() {
	t.cron.Stop()
}

func (t *RefreshTask) run() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if err := t.artikelSvc.Refresh(ctx); err != nil {
		log.Printf("定时刷新失败: %v", err)
		return
	}
	log.Println("记录缓存已刷新")
}
