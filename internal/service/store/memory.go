package store

import (
	"errors"
	"sync"
	"time"

	"sintascope/internal/model"
)

// 数据集未加载
var (
	ErrClusterNotLoaded = errors.New("cluster dataset not loaded")
	ErrMetricsNotLoaded = errors.New("metrics dataset not loaded")
)

// slot 单类数据集的生效状态
// issued 为已发放的最大序号，active 为当前数据集对应的序号
type slot struct {
	at     time.Time
	issued uint64
	active uint64
}

func (s *slot) begin() uint64 {
	s.issued++
	return s.issued
}

// commit 序号不早于当前数据集时生效
func (s *slot) commit(ticket uint64) bool {
	if ticket < s.active {
		return false
	}
	s.active = ticket
	s.at = time.Now()
	return true
}

// reset 清空后，清空前发放的序号均不再生效
func (s *slot) reset() {
	s.at = time.Time{}
	s.active = s.issued + 1
	s.issued = s.active
}

// MemoryStore 当前生效的数据集（只保存指针，数据集本身加载后只读）
// 并发替换时以最后发起（Begin）的一次为准
type MemoryStore struct {
	cluster     *model.ClusterDataset
	metrics     *model.MetricsDataset
	clusterSlot slot
	metricsSlot slot
	mu          sync.RWMutex
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// BeginCluster 登记一次 cluster 替换，返回其序号
func (s *MemoryStore) BeginCluster() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clusterSlot.begin()
}

// CommitCluster 用 BeginCluster 的序号替换 cluster 数据集；已被更晚的替换覆盖时返回 false
func (s *MemoryStore) CommitCluster(ticket uint64, ds *model.ClusterDataset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.clusterSlot.commit(ticket) {
		return false
	}
	s.cluster = ds
	return true
}

// SetCluster 直接替换当前 cluster 数据集
func (s *MemoryStore) SetCluster(ds *model.ClusterDataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clusterSlot.commit(s.clusterSlot.begin())
	s.cluster = ds
}

// BeginMetrics 登记一次 metrics 替换，返回其序号
func (s *MemoryStore) BeginMetrics() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metricsSlot.begin()
}

// CommitMetrics 用 BeginMetrics 的序号替换 metrics 数据集；已被更晚的替换覆盖时返回 false
func (s *MemoryStore) CommitMetrics(ticket uint64, ds *model.MetricsDataset) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.metricsSlot.commit(ticket) {
		return false
	}
	s.metrics = ds
	return true
}

// SetMetrics 直接替换当前 metrics 数据集
func (s *MemoryStore) SetMetrics(ds *model.MetricsDataset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metricsSlot.commit(s.metricsSlot.begin())
	s.metrics = ds
}

// Cluster 获取当前 cluster 数据集
func (s *MemoryStore) Cluster() (*model.ClusterDataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cluster == nil {
		return nil, ErrClusterNotLoaded
	}
	return s.cluster, nil
}

// Metrics 获取当前 metrics 数据集
func (s *MemoryStore) Metrics() (*model.MetricsDataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.metrics == nil {
		return nil, ErrMetricsNotLoaded
	}
	return s.metrics, nil
}

// Snapshot 状态快照
type Snapshot struct {
	Cluster   *model.ClusterDataset
	Metrics   *model.MetricsDataset
	ClusterAt time.Time
	MetricsAt time.Time
}

// Snapshot 一次性读取两个数据集
func (s *MemoryStore) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Cluster:   s.cluster,
		Metrics:   s.metrics,
		ClusterAt: s.clusterSlot.at,
		MetricsAt: s.metricsSlot.at,
	}
}

// ClearCluster 卸载 cluster 数据集
func (s *MemoryStore) ClearCluster() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cluster = nil
	s.clusterSlot.reset()
}

// ClearMetrics 卸载 metrics 数据集
func (s *MemoryStore) ClearMetrics() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = nil
	s.metricsSlot.reset()
}

// Clear 清空
func (s *MemoryStore) Clear() {
	s.ClearCluster()
	s.ClearMetrics()
}
