package services

import (
	"context"
	"errors"
	"fmt"
)

// 业务错误哨兵，控制层据此映射为 Kratos 错误码。
var (
	// ErrInvalidArgument 表示入参非法，在访问任何存储之前即被拒绝。
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrItemNotFound 表示互动引用的条目不存在。
	ErrItemNotFound = errors.New("item not found")
	// ErrProfileNotFound 表示用户尚无偏好档案。
	ErrProfileNotFound = errors.New("affinity profile not found")
	// ErrDependencyUnavailable 表示目录或偏好存储超时/不可用，可重试。
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrUpdateConflict 表示偏好档案乐观锁冲突且重试耗尽。
	ErrUpdateConflict = errors.New("update conflict")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// dependencyError 将底层错误包装为 ErrDependencyUnavailable，保留原始错误链。
func dependencyError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDependencyUnavailable) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, ErrDependencyUnavailable, err)
}
