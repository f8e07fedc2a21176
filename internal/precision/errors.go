package precision

import "errors"

var (
	// ErrSourceNotFound 精度元数据源不存在, 可恢复, 使用默认值
	ErrSourceNotFound = errors.New("precision: metadata source not found")
	// ErrSourceCorrupt 元数据源存在但无法解析
	ErrSourceCorrupt = errors.New("precision: metadata source corrupt")
	// ErrSourceUnavailable 远程元数据源请求失败
	ErrSourceUnavailable = errors.New("precision: metadata source unavailable")
	// ErrFieldType 单个交易对的某个字段格式不符
	ErrFieldType = errors.New("precision: malformed field")
	// ErrArithmetic 调用时的十进制运算失败
	ErrArithmetic = errors.New("precision: arithmetic failure")
)
