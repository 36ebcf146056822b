package service

import (
	"context"
	"log"
	"sync"

	"marktplatz_dev_v1/internal/model"
)

// ==================== 远端依赖 ====================

// RecordStore 远端 records 后端的抽象
// 四个操作各自独立失败, 本层不做重试
type RecordStore interface {
	List(ctx context.Context) ([]model.ArtikelEinstellen, error)
	Create(ctx context.Context, fields model.Felder) (*model.ArtikelEinstellen, error)
	Update(ctx context.Context, recordID string, fields model.Felder) (*model.ArtikelEinstellen, error)
	Delete(ctx context.Context, recordID string) error
}

// ==================== 服务 ====================

// ArtikelService Inserat 业务编排
// 内存中的记录集合只是远端状态的缓存: 读取时整体取快照, 更新时整体替换,
// 每次变更成功后全量重载 —— 不做增量打补丁, 避免本地和远端悄悄分叉
type ArtikelService struct {
	store RecordStore

	mu     sync.RWMutex
	cache  []model.ArtikelEinstellen
	loaded bool
}

// NewArtikelService 创建 Inserat 服务
func NewArtikelService(store RecordStore) *ArtikelService {
	return &ArtikelService{store: store}
}

// ==================== 读取 ====================

// Refresh 从远端全量拉取并整体替换缓存
func (s *ArtikelService) Refresh(ctx context.Context) error {
	records, err := s.store.List(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = records
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// GetAll 返回当前缓存快照, 首次访问时惰性拉取
// 返回的切片不会被本服务修改 (缓存只做整体替换), 调用方可以放心遍历
func (s *ArtikelService) GetAll(ctx context.Context) ([]model.ArtikelEinstellen, error) {
	s.mu.RLock()
	if s.loaded {
		snapshot := s.cache
		s.mu.RUnlock()
		return snapshot, nil
	}
	s.mu.RUnlock()

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache, nil
}

// Search 可见子集: 搜索词 + 分类筛选
func (s *ArtikelService) Search(ctx context.Context, query, kategorie string) ([]model.ArtikelEinstellen, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterArtikel(all, query, kategorie), nil
}

// Stats 聚合统计
func (s *ArtikelService) Stats(ctx context.Context) (Statistik, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return Statistik{}, err
	}
	return ComputeStatistik(all), nil
}

// ==================== 变更 ====================

// Create 创建一条 Inserat, 成功后全量重载缓存
func (s *ArtikelService) Create(ctx context.Context, fields model.Felder) (*model.ArtikelEinstellen, error) {
	rec, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	s.reloadAfterMutation(ctx, "create")
	return rec, nil
}

// Update 整体提交字段集
// recordID 为空说明调用方时序有 bug (没有选中记录就点了保存), 按无操作处理
func (s *ArtikelService) Update(ctx context.Context, recordID string, fields model.Felder) (*model.ArtikelEinstellen, error) {
	if recordID == "" {
		return nil, nil
	}

	rec, err := s.store.Update(ctx, recordID, fields)
	if err != nil {
		return nil, err
	}

	s.reloadAfterMutation(ctx, "update")
	return rec, nil
}

// Delete 按 record_id 删除
// 只有在远端确认之后才从本地缓存移除该条记录, 之后照例全量重载
func (s *ArtikelService) Delete(ctx context.Context, recordID string) error {
	if recordID == "" {
		return nil
	}

	if err := s.store.Delete(ctx, recordID); err != nil {
		return err
	}

	s.removeFromCache(recordID)
	s.reloadAfterMutation(ctx, "delete")
	return nil
}

// ==================== 内部辅助 ====================

// removeFromCache 从缓存中精确移除一条, 其余记录顺序和内容保持不变
// 仍然遵守整体替换纪律: 构造新切片后一次性换入
func (s *ArtikelService) removeFromCache(recordID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.ArtikelEinstellen, 0, len(s.cache))
	for _, a := range s.cache {
		if a.RecordID != recordID {
			next = append(next, a)
		}
	}
	s.cache = next
}

// reloadAfterMutation 变更后的全量重载
// 重载失败不影响已成功的变更本身, 只记日志; 下一次读取或定时刷新会再试
func (s *ArtikelService) reloadAfterMutation(ctx context.Context, op string) {
	if err := s.Refresh(ctx); err != nil {
		log.Printf("%s 后全量重载失败: %v", op, err)
	}
}
