package router

import (
	"context"
	"net/http"

	"github.com/kolstage/backend/pkg/logger"
	"github.com/kolstage/backend/pkg/xcontext"
)

// Context is the read-only view of a finished request given to closers.
type Context interface {
	context.Context

	// Request returns the *http.Request.
	Request() *http.Request

	// Writer returns the http.ResponseWriter.
	Writer() http.ResponseWriter

	// Error returns the error the request ended with, if any.
	Error() error

	// Response returns the object the handler responded, if any.
	Response() any

	// Logger returns the logger.
	Logger() logger.Logger
}

type requestContext struct {
	context.Context
}

func (ctx *requestContext) Request() *http.Request {
	return xcontext.HTTPRequest(ctx.Context)
}

func (ctx *requestContext) Writer() http.ResponseWriter {
	return xcontext.HTTPWriter(ctx.Context)
}

func (ctx *requestContext) Error() error {
	return xcontext.GetError(ctx.Context)
}

func (ctx *requestContext) Response() any {
	return xcontext.GetResponse(ctx.Context)
}

func (ctx *requestContext) Logger() logger.Logger {
	return xcontext.Logger(ctx.Context)
}
