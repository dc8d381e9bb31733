package memory

import (
	"context"

	"github.com/Adarsh-P-A/retrievo-backend/internal/errs"
)

func unavailable(err error) error {
	return errs.Unavailable("memory store", err)
}

func checkCtx(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return unavailable(err)
	}
	return nil
}
