package precision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultFile 默认的精度元数据文件
const DefaultFile = "config/symbol_precision.json"

// Source 只读的精度元数据源
type Source interface {
	Name() string
	Load(ctx context.Context) (Table, error)
}

// Load 从 src 加载精度表. 加载失败不会返回错误, 记录日志后返回空表, 所有查询使用默认值.
func Load(ctx context.Context, src Source, logger *zap.Logger) Table {
	if logger == nil {
		logger = zap.NewNop()
	}
	table, err := src.Load(ctx)
	switch {
	case err == nil:
		logger.Info("loaded symbol precision",
			zap.String("source", src.Name()),
			zap.Int("symbols", table.Len()))
		return table
	case errors.Is(err, ErrSourceNotFound):
		logger.Warn("symbol precision source not found, using defaults",
			zap.String("source", src.Name()),
			zap.Error(err))
	default:
		logger.Error("failed to load symbol precision, using defaults",
			zap.String("source", src.Name()),
			zap.Error(err))
	}
	return Table{}
}

// Open 加载精度表并构建 Normalizer
func Open(ctx context.Context, src Source, logger *zap.Logger) *Normalizer {
	return NewNormalizer(Load(ctx, src, logger), logger)
}

var _ Source = (*FileSource)(nil)

// FileSource JSON 或 YAML 文件, 按扩展名选择格式
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultFile
	}
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Load(ctx context.Context) (Table, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, fmt.Errorf("%w: %s", ErrSourceNotFound, s.path)
	}
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrSourceCorrupt, err)
	}

	var entries map[string]Entry
	if isYAML(s.path) {
		entries, err = decodeYAML(data)
	} else {
		entries, err = decodeJSON(data)
	}
	if err != nil {
		return Table{}, fmt.Errorf("%w: %s: %w", ErrSourceCorrupt, s.path, err)
	}
	return NewTable(entries), nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// decodeJSON 顶层必须是对象; 单个交易对的数据不是对象时保留为空条目, 查询时使用默认值
func decodeJSON(data []byte) (map[string]Entry, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	entries := make(map[string]Entry, len(raw))
	for symbol, msg := range raw {
		var e Entry
		if err := json.Unmarshal(msg, &e); err != nil {
			e = Entry{}
		}
		entries[symbol] = e
	}
	return entries, nil
}

func decodeYAML(data []byte) (map[string]Entry, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	entries := make(map[string]Entry, len(raw))
	for symbol, node := range raw {
		var e Entry
		if err := node.Decode(&e); err != nil {
			e = Entry{}
		}
		entries[symbol] = e
	}
	return entries, nil
}

// WriteFile 将精度表写成 JSON 或 YAML 快照, 供 FileSource 读取
func WriteFile(path string, table Table) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err = enc.Encode(table.entries); err == nil {
			err = enc.Close()
		}
		data = buf.Bytes()
	} else {
		data, err = json.MarshalIndent(table.entries, "", "  ")
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
