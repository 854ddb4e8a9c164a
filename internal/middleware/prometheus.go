package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/giftgroup/backend/internal/common"
	"github.com/giftgroup/backend/pkg/errorx"
	"github.com/giftgroup/backend/pkg/router"
	"github.com/giftgroup/backend/pkg/xcontext"
)

type startTimeKey struct{}

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return context.WithValue(ctx, startTimeKey{}, time.Now()), nil
	}
}

func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		code := 0
		if err := router.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = -1
			}
		}

		label := []string{req.Method + " " + req.URL.Path, fmt.Sprint(code)}
		common.PromCounters[common.HTTPRequestTotal].WithLabelValues(label...).Inc()

		if startTime, ok := ctx.Value(startTimeKey{}).(time.Time); ok {
			common.PromHistograms[common.HTTPRequestDurationSeconds].
				WithLabelValues(label...).Observe(time.Since(startTime).Seconds())
		}
	}
}
