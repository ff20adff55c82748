package router

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/kolstage/backend/config"
	"github.com/kolstage/backend/pkg/authenticator"
	"github.com/kolstage/backend/pkg/crypto"
	"github.com/kolstage/backend/pkg/logger"
	"github.com/kolstage/backend/pkg/xcontext"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc can replace the request context by returning a non-nil
// context. Returning an error stops the chain and responds with that error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response was written, no matter the handler
// succeeded or not.
type CloserFunc func(ctx Context)

type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, l logger.Logger) *Router {
	node, err := snowflake.NewNode(int64(crypto.RandIntn(1024)))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	ctx = xcontext.WithDB(ctx, db)
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, l)
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine(cfg.Auth.TokenSecret))
	ctx = xcontext.WithSnowFlake(ctx, node)

	return &Router{
		mux:     http.NewServeMux(),
		baseCtx: ctx,
	}
}

// Branch returns a router sharing the same underlying mux but with an
// independent middleware chain. Routes registered on the branch still serve
// from the root handler.
func (r *Router) Branch() *Router {
	branch := &Router{
		mux:     r.mux,
		baseCtx: r.baseCtx,
	}

	branch.befores = append(branch.befores, r.befores...)
	branch.afters = append(branch.afters, r.afters...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler() http.Handler {
	cfg := xcontext.Configs(r.baseCtx)
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Authorization"},
		AllowCredentials: true,
	})

	return c.Handler(r.mux)
}
