package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// 环境变量
const (
	EnvClusterFile = "SINTASCOPE_CLUSTER_FILE"
	EnvMetricsFile = "SINTASCOPE_METRICS_FILE"
	EnvLogLevel    = "SINTASCOPE_LOG_LEVEL"
)

// ConfigFileName 配置文件名，位于可执行文件同目录
const ConfigFileName = "config.toml"

// AppConfig 应用配置
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Data     DataConfig     `toml:"data"`
	Analysis AnalysisConfig `toml:"analysis"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port        int     `toml:"port"`
	DevMode     bool    `toml:"dev_mode"`
	OpenBrowser bool    `toml:"open_browser"`
	UploadRate  float64 `toml:"upload_rate"`  // 每秒允许的上传次数，<=0 不限制
	UploadBurst int     `toml:"upload_burst"` // 突发上传次数
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir      string   `toml:"data_dir"`
	ClusterFile  string   `toml:"cluster_file"`
	MetricsFiles []string `toml:"metrics_files"` // 按顺序取第一个存在的文件
}

// AnalysisConfig 分析默认参数
type AnalysisConfig struct {
	DefaultAffiliation string  `toml:"default_affiliation"`
	LeverageTopK       int     `toml:"leverage_top_k"`
	OverviewTopN       int     `toml:"overview_top_n"`
	RankingTopN        int     `toml:"ranking_top_n"`
	CategoryTopN       int     `toml:"category_top_n"`
	CompareTopN        int     `toml:"compare_top_n"`
	MetricsTopN        int     `toml:"metrics_top_n"`
	SimulationDelta    float64 `toml:"simulation_delta"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	Path          string
	FileFound     bool
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20262,
			DevMode:     false,
			OpenBrowser: true,
			UploadRate:  1,
			UploadBurst: 4,
		},
		Data: DataConfig{
			DataDir:      "data",
			ClusterFile:  "Sinta Metric Cluster.xlsx",
			MetricsFiles: []string{"Sinta Metrics Detail v2.xlsx", "Sinta Metrics Detail.xlsx"},
		},
		Analysis: AnalysisConfig{
			DefaultAffiliation: "Universitas Bina Nusantara",
			LeverageTopK:       30,
			OverviewTopN:       15,
			RankingTopN:        20,
			CategoryTopN:       20,
			CompareTopN:        30,
			MetricsTopN:        15,
			SimulationDelta:    0.1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverMap, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func baseDir() string {
	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		return "."
	}
	return exeDir
}

// ConfigPath 可执行文件同目录的 config.toml
func ConfigPath() string {
	return filepath.Join(baseDir(), ConfigFileName)
}

// LoadConfigWithInfo 从可执行文件同目录的 config.toml 加载配置
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadFile(ConfigPath())
}

// LoadFile 从指定路径加载配置；文件不存在时使用默认配置，随后应用环境变量覆盖
func LoadFile(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// 配置文件不存在，使用默认配置
	case err != nil:
		return nil, info, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		info.FileFound = true
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, info, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	applyEnv(config)
	config.normalize()
	return config, info, nil
}

// 环境变量覆盖（用于本地运行 / 容器）
func applyEnv(config *AppConfig) {
	if v := os.Getenv(EnvClusterFile); v != "" {
		config.Data.ClusterFile = v
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		config.Data.MetricsFiles = []string{v}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		config.Log.Level = v
	}
}

// normalize 非法值回退为默认值
func (c *AppConfig) normalize() {
	def := DefaultConfig()
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		c.Server.Port = def.Server.Port
	}
	if c.Server.UploadBurst <= 0 {
		c.Server.UploadBurst = def.Server.UploadBurst
	}
	if c.Data.DataDir == "" {
		c.Data.DataDir = def.Data.DataDir
	}
	a := &c.Analysis
	for _, p := range []struct {
		v   *int
		def int
	}{
		{&a.LeverageTopK, def.Analysis.LeverageTopK},
		{&a.OverviewTopN, def.Analysis.OverviewTopN},
		{&a.RankingTopN, def.Analysis.RankingTopN},
		{&a.CategoryTopN, def.Analysis.CategoryTopN},
		{&a.CompareTopN, def.Analysis.CompareTopN},
		{&a.MetricsTopN, def.Analysis.MetricsTopN},
	} {
		if *p.v <= 0 {
			*p.v = p.def
		}
	}
	if a.SimulationDelta < 0 {
		a.SimulationDelta = def.Analysis.SimulationDelta
	}
}

// SaveConfig 保存配置到指定路径
func SaveConfig(path string, config *AppConfig) error {
	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

// EnsureDataDir 确保数据目录存在，返回其绝对路径
// 相对路径基于可执行文件所在目录
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		dataDir = filepath.Join(baseDir(), dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create data dir: %w", err)
	}
	return dataDir, nil
}

// ResolveDataPath 相对文件名基于数据目录解析，绝对路径原样返回
func ResolveDataPath(dataDir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dataDir, name)
}

// ClusterCandidates cluster 工作簿候选路径
func (c *AppConfig) ClusterCandidates(dataDir string) []string {
	return []string{ResolveDataPath(dataDir, c.Data.ClusterFile)}
}

// MetricsCandidates metrics detail 工作簿候选路径（按优先级）
func (c *AppConfig) MetricsCandidates(dataDir string) []string {
	out := make([]string, 0, len(c.Data.MetricsFiles))
	for _, name := range c.Data.MetricsFiles {
		out = append(out, ResolveDataPath(dataDir, name))
	}
	return out
}
