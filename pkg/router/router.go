package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/giftgroup/backend/config"
	"github.com/giftgroup/backend/pkg/logger"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. A non-nil error stops the chain and
// is written as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response is written, the handler result is
// available through Response and Error.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	db     *gorm.DB
	cfg    config.Configs
	logger logger.Logger

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{
		engine: engine,
		inner:  engine,
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// Branch returns a router sharing the same routes table, middlewares added to
// the branch do not affect the parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc(nil), r.befores...)
	clone.closers = append([]CloserFunc(nil), r.closers...)
	return &clone
}

func (r *Router) Before(m MiddlewareFunc) {
	r.befores = append(r.befores, m)
}

func (r *Router) AddCloser(c CloserFunc) {
	r.closers = append(r.closers, c)
}

// Handle mounts a plain http.Handler, bypassing middlewares.
func (r *Router) Handle(method, pattern string, h http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(h))
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	}).Handler(r.engine)
}
