package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"sintascope/internal/config"
	"sintascope/internal/logging"
	"sintascope/internal/metrics"
	"sintascope/internal/server"
	"sintascope/internal/service/dataset"
	"sintascope/internal/service/store"
	"sintascope/internal/util"
)

var (
	port        = flag.Int("port", 0, "服务端口 (config.toml 优先；仅当未显式配置 port 时生效)")
	devMode     = flag.Bool("dev", false, "开发模式")
	dataDir     = flag.String("dataDir", "", "数据目录 (覆盖配置文件)")
	clusterFile = flag.String("cluster", "", "cluster 工作簿路径 (覆盖配置文件)")
	metricsFile = flag.String("metrics", "", "metrics detail 工作簿路径 (覆盖配置文件)")
	initConfig  = flag.Bool("initConfig", false, "将当前生效配置写入 config.toml 后退出 (文件已存在时不覆盖)")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  SintaScope - SINTA 指标分析工具")
	fmt.Println("==========================================")

	// 加载配置
	cfg, info, err := config.LoadConfigWithInfo()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败，使用默认配置: %v\n", err)
		cfg = config.DefaultConfig()
		info = config.LoadConfigInfo{}
	}

	// 命令行参数覆盖配置
	if *port > 0 && !info.PortSpecified {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}
	if *dataDir != "" {
		cfg.Data.DataDir = *dataDir
	}
	if *clusterFile != "" {
		cfg.Data.ClusterFile = *clusterFile
	}
	if *metricsFile != "" {
		cfg.Data.MetricsFiles = []string{*metricsFile}
	}

	if *initConfig {
		if err := writeInitialConfig(config.ConfigPath(), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		fmt.Printf("配置已写入 %s\n", config.ConfigPath())
		return
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// 确保数据目录存在
	dir, err := config.EnsureDataDir(cfg)
	if err != nil {
		logger.Warn("failed to create data dir", logging.Err(err))
		dir = cfg.Data.DataDir
	}
	logger.Info("data dir", logging.String("path", dir), logging.Bool("config_file", info.FileFound))

	m := metrics.New()
	st := store.NewMemoryStore()
	loader := dataset.NewLoader(logger, m)

	preload(logger, cfg, dir, loader, st)

	srv := server.NewServer(cfg, server.Deps{
		Store:   st,
		Loader:  loader,
		Metrics: m,
		Logger:  logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", logging.Int("port", cfg.Server.Port))
		errCh <- srv.Run(addr)
	}()

	// 打开浏览器
	if cfg.Server.OpenBrowser && !cfg.Server.DevMode {
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("无法自动打开浏览器，请手动访问: %s\n", url)
		}
	} else {
		fmt.Printf("请访问 %s\n", url)
	}

	fmt.Println("\n按 Ctrl+C 停止服务...")

	// 等待信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server stopped", logging.Err(err))
			os.Exit(1)
		}
	case <-quit:
		fmt.Println("\n正在关闭服务...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("shutdown failed", logging.Err(err))
		}
	}
}

// preload 启动时并发加载默认工作簿；文件缺失不影响启动
// writeInitialConfig 写出配置文件，已存在时报错
func writeInitialConfig(path string, cfg *config.AppConfig) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	return config.SaveConfig(path, cfg)
}

func preload(logger logging.Logger, cfg *config.AppConfig, dir string, loader *dataset.Loader, st *store.MemoryStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// 两个数据集互不影响：任一加载失败只记录日志，不取消另一个
	var g errgroup.Group

	g.Go(func() error {
		src, err := dataset.FirstAvailable(cfg.ClusterCandidates(dir)...)
		if err != nil {
			logger.Warn("cluster workbook not found, upload it via /api/datasets/cluster", logging.Err(err))
			return nil
		}
		ds, err := loader.LoadCluster(ctx, src)
		if err != nil {
			logger.Error("cluster preload failed", logging.String("source", src.Name), logging.Err(err))
			return nil
		}
		st.SetCluster(ds)
		return nil
	})

	g.Go(func() error {
		src, err := dataset.FirstAvailable(cfg.MetricsCandidates(dir)...)
		if err != nil {
			logger.Warn("metrics workbook not found, upload it via /api/datasets/metrics", logging.Err(err))
			return nil
		}
		ds, err := loader.LoadMetrics(ctx, src)
		if err != nil {
			logger.Error("metrics preload failed", logging.String("source", src.Name), logging.Err(err))
			return nil
		}
		st.SetMetrics(ds)
		return nil
	})

	_ = g.Wait()
}
