package router

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giftgroup/backend/pkg/errorx"
	"github.com/giftgroup/backend/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := router.newContext(c)

		var resp *Response
		ctx, err := router.runBefores(ctx)
		if err == nil {
			var req Request
			if err = bind(c, method, &req); err == nil {
				resp, err = handler(ctx, &req)
			}
		}

		if err != nil {
			writeError(ctx, c, err)
		} else {
			c.JSON(http.StatusOK, newResponse(resp))
		}

		ctx = withResult(ctx, resp, err)
		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}

func (r *Router) newContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	ctx = xcontext.WithHTTPRequest(ctx, c.Request)
	ctx = xcontext.WithConfigs(ctx, r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	if r.db != nil {
		ctx = xcontext.WithDB(ctx, r.db)
	}

	return ctx
}

func (r *Router) runBefores(ctx context.Context) (context.Context, error) {
	for _, m := range r.befores {
		next, err := m(ctx)
		if err != nil {
			return ctx, err
		}

		// A middleware which does not change the context may return nil.
		if next != nil {
			ctx = next
		}
	}

	return ctx, nil
}

func bind(c *gin.Context, method string, req any) error {
	var err error
	switch method {
	case http.MethodGet:
		err = c.ShouldBindQuery(req)
	case http.MethodPost:
		err = c.ShouldBindJSON(req)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	default:
		return errorx.New(errorx.BadRequest, "Unsupported method")
	}

	if err != nil {
		return errorx.New(errorx.BadRequest, "Invalid request: %v", err)
	}

	return nil
}

func writeError(ctx context.Context, c *gin.Context, err error) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		xcontext.Logger(ctx).Errorf("Unexpected error on %s: %v", c.Request.URL.Path, err)
	}

	resp := newErrorResponse(err)
	c.JSON(errorx.HTTPStatus(errorx.Code(resp.Code)), resp)
}
