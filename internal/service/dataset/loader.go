// Package dataset 工作簿加载与缓存
// 同一内容只解析一次；每种数据集只保留最近一次发起的加载结果
package dataset

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"sintascope/internal/logging"
	"sintascope/internal/metrics"
	"sintascope/internal/model"
	"sintascope/internal/parser"
	"sintascope/internal/service/analytics"
)

// Kind 数据集类型
type Kind string

const (
	KindCluster Kind = "cluster"
	KindMetrics Kind = "metrics"
)

// Loader 数据集加载器，可并发使用
type Loader struct {
	cache  *cache.Cache
	group  singleflight.Group
	mu     sync.Mutex
	seq    uint64
	latest map[Kind]cacheEntry

	logger  logging.Logger
	metrics *metrics.Metrics
}

// NewLoader 创建加载器；m 可为 nil
func NewLoader(logger logging.Logger, m *metrics.Metrics) *Loader {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Loader{
		cache:   cache.New(cache.NoExpiration, 0),
		latest:  make(map[Kind]cacheEntry),
		logger:  logger.Named("dataset"),
		metrics: m,
	}
}

// cacheEntry 某类型当前缓存的内容及其加载序号
type cacheEntry struct {
	identity string
	seq      uint64
}

func cacheKey(kind Kind, identity string) string {
	return string(kind) + ":" + identity
}

// LoadCluster 加载 cluster 工作簿：解析、排名、分类汇总
func (l *Loader) LoadCluster(ctx context.Context, src Source) (*model.ClusterDataset, error) {
	v, err := l.load(ctx, KindCluster, src, func() (interface{}, error) {
		return parseCluster(src)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.ClusterDataset), nil
}

// LoadMetrics 加载 metrics detail 工作簿
func (l *Loader) LoadMetrics(ctx context.Context, src Source) (*model.MetricsDataset, error) {
	v, err := l.load(ctx, KindMetrics, src, func() (interface{}, error) {
		return parseMetrics(src)
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.MetricsDataset), nil
}

func (l *Loader) load(ctx context.Context, kind Kind, src Source, parse func() (interface{}, error)) (interface{}, error) {
	identity := src.Identity()
	key := cacheKey(kind, identity)
	seq := l.nextSeq()

	if v, ok := l.cache.Get(key); ok {
		l.touch(kind, identity, seq)
		l.metrics.CacheHit(string(kind))
		l.logger.Debug("dataset cache hit", logging.String("kind", string(kind)), logging.String("source", src.Name))
		return v, nil
	}

	ch := l.group.DoChan(key, func() (interface{}, error) {
		// 等待期间可能已被其他调用写入
		if v, ok := l.cache.Get(key); ok {
			return v, nil
		}

		start := time.Now()
		v, err := parse()
		elapsed := time.Since(start)
		l.metrics.ObserveLoad(string(kind), err, elapsed)
		if err != nil {
			l.logger.Warn("dataset load failed",
				logging.String("kind", string(kind)),
				logging.String("source", src.Name),
				logging.Err(err))
			return nil, err
		}

		if !l.store(kind, identity, v, seq) {
			l.logger.Info("dataset superseded by a newer load, not cached",
				logging.String("kind", string(kind)),
				logging.String("source", src.Name))
			return v, nil
		}
		l.logger.Info("dataset loaded",
			logging.String("kind", string(kind)),
			logging.String("source", src.Name),
			logging.String("id", src.ShortID()),
			logging.Duration("elapsed", elapsed))
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

func (l *Loader) nextSeq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	return l.seq
}

// store 写入缓存并淘汰同类型的旧内容
// 序号早于当前缓存的结果不写入，返回 false
func (l *Loader) store(kind Kind, identity string, v interface{}, seq uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.latest[kind]
	if ok && prev.identity != identity {
		if prev.seq > seq {
			return false
		}
		l.cache.Delete(cacheKey(kind, prev.identity))
	}
	if ok && prev.seq > seq {
		seq = prev.seq
	}
	l.latest[kind] = cacheEntry{identity: identity, seq: seq}
	l.cache.Set(cacheKey(kind, identity), v, cache.NoExpiration)
	return true
}

// touch 缓存命中时更新序号
func (l *Loader) touch(kind Kind, identity string, seq uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.latest[kind]; ok && prev.identity == identity && prev.seq < seq {
		l.latest[kind] = cacheEntry{identity: identity, seq: seq}
	}
}

// Invalidate 丢弃某类型的缓存
func (l *Loader) Invalidate(kind Kind) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.latest[kind]; ok {
		l.cache.Delete(cacheKey(kind, prev.identity))
		delete(l.latest, kind)
	}
}

// Purge 清空全部缓存
func (l *Loader) Purge() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.cache.Flush()
	l.latest = make(map[Kind]cacheEntry)
}

// Cached 某类型当前缓存的内容哈希
func (l *Loader) Cached(kind Kind) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.latest[kind]
	return e.identity, ok
}

func parseCluster(src Source) (*model.ClusterDataset, error) {
	f, err := parser.OpenWorkbookBytes(src.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to open cluster workbook %s: %w", src.Name, err)
	}
	defer f.Close()

	tables, err := parser.NewClusterParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse cluster workbook %s: %w", src.Name, err)
	}

	ranked, threshold := analytics.RankAffiliations(tables.Affiliations)
	ds := &model.ClusterDataset{
		ID:             src.ShortID(),
		SourceName:     src.Name,
		Affiliations:   ranked,
		Details:        tables.Details,
		Top10Threshold: threshold,
		Matrix:         analytics.AggregateCategories(tables.Details),
		Report:         tables.Report,
	}
	ds.IndexAffiliations()
	return ds, nil
}

func parseMetrics(src Source) (*model.MetricsDataset, error) {
	f, err := parser.OpenWorkbookBytes(src.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to open metrics workbook %s: %w", src.Name, err)
	}
	defer f.Close()

	ds, err := parser.NewMetricsParser(f).Parse()
	if err != nil {
		return nil, fmt.Errorf("failed to parse metrics workbook %s: %w", src.Name, err)
	}
	ds.ID = src.ShortID()
	ds.SourceName = src.Name
	return ds, nil
}
