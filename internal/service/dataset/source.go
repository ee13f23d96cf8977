package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrNoSource 候选文件均不存在
var ErrNoSource = errors.New("no workbook found")

// Source 工作簿内容，以内容哈希作为身份
type Source struct {
	Name    string
	Content []byte
}

// Identity 内容的 SHA-256（十六进制）
func (s Source) Identity() string {
	sum := sha256.Sum256(s.Content)
	return hex.EncodeToString(sum[:])
}

// ShortID 用作数据集 ID 的哈希前缀
func (s Source) ShortID() string {
	return s.Identity()[:16]
}

// SourceFromReader 读取上传内容
func SourceFromReader(name string, r io.Reader) (Source, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return Source{Name: name, Content: content}, nil
}

// SourceFromFile 读取本地文件
func SourceFromFile(path string) (Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Source{Name: filepath.Base(path), Content: content}, nil
}

// FirstAvailable 按顺序尝试候选路径，返回第一个存在的文件
func FirstAvailable(paths ...string) (Source, error) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		return SourceFromFile(p)
	}
	return Source{}, fmt.Errorf("%w (tried: %v)", ErrNoSource, paths)
}
