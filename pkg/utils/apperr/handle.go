package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
)

// Handle reports an application error through the context logger. goerr
// values attached to the error are expanded by the logger's attr hook.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	ctxlog.From(ctx).Error("application error", "error", err)
}
