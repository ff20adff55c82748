package domain

import (
	"context"

	"github.com/kolstage/backend/pkg/errorx"
	"github.com/kolstage/backend/pkg/xcontext"
)

// checkPagination normalizes the limit of list requests against the api
// server configuration.
func checkPagination(ctx context.Context, offset, limit int) (int, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if offset < 0 {
		return 0, errorx.New(errorx.BadRequest, "Offset must not be negative")
	}

	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	if limit < 0 {
		return 0, errorx.New(errorx.BadRequest, "Limit must be positive")
	}

	if limit > apiCfg.MaxLimit {
		return 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return limit, nil
}
