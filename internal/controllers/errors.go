package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/bionicotaku/lingo-services-ranking/internal/services"
	kerrors "github.com/go-kratos/kratos/v2/errors"
)

// 错误原因码，随 Kratos 错误体返回给调用方。
const (
	ReasonInvalidArgument       = "INVALID_ARGUMENT"
	ReasonItemNotFound          = "ITEM_NOT_FOUND"
	ReasonProfileNotFound       = "PROFILE_NOT_FOUND"
	ReasonDependencyUnavailable = "DEPENDENCY_UNAVAILABLE"
	ReasonUpdateConflict        = "UPDATE_CONFLICT"
	ReasonTimeout               = "TIMEOUT"
	ReasonInternal              = "INTERNAL"
)

func badRequest(format string, args ...any) error {
	return kerrors.BadRequest(ReasonInvalidArgument, fmt.Sprintf(format, args...))
}

// mapServiceError 将服务层哨兵错误映射为 Kratos 错误。
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}
	var kerr *kerrors.Error
	if errors.As(err, &kerr) {
		return kerr
	}
	switch {
	case errors.Is(err, services.ErrInvalidArgument):
		return kerrors.BadRequest(ReasonInvalidArgument, err.Error())
	case errors.Is(err, services.ErrItemNotFound):
		return kerrors.NotFound(ReasonItemNotFound, err.Error())
	case errors.Is(err, services.ErrProfileNotFound):
		return kerrors.NotFound(ReasonProfileNotFound, err.Error())
	case errors.Is(err, services.ErrUpdateConflict):
		return kerrors.Conflict(ReasonUpdateConflict, err.Error())
	case errors.Is(err, services.ErrDependencyUnavailable):
		return kerrors.ServiceUnavailable(ReasonDependencyUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return kerrors.GatewayTimeout(ReasonTimeout, err.Error())
	default:
		return kerrors.InternalServer(ReasonInternal, err.Error())
	}
}
