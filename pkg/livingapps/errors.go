package livingapps

import "fmt"

// 三类错误上层都不做本地恢复, 原样抛给展示层决定提示和重试

// TransportError 网络层/HTTP 层失败 (连接不通, 超时, 5xx 等)
// StatusCode 为 0 表示请求根本没有到达服务端
type TransportError struct {
	Op         string // list / create / update / delete
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("livingapps %s 失败 [%d]: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("livingapps %s 请求失败: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// NotFoundError record_id 在远端已不存在 (典型场景: 别处已删除)
type NotFoundError struct {
	RecordID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("记录不存在: %s", e.RecordID)
}

// ValidationError 服务端 schema 校验拒绝了提交的字段值
type ValidationError struct {
	StatusCode int
	Message    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("字段校验失败 [%d]: %s", e.StatusCode, e.Message)
}
