package xcontext

import "context"

type responseHolderKey struct{}

// responseHolder is mutable so the router and middlewares can record the
// handler outcome after the context was built.
type responseHolder struct {
	response any
	err      error
}

// WithResponseHolder prepares the context of a request for SetResponse and
// SetError calls. The router installs it before running any middleware.
func WithResponseHolder(ctx context.Context) context.Context {
	return context.WithValue(ctx, responseHolderKey{}, &responseHolder{})
}

func SetResponse(ctx context.Context, resp any) {
	if holder, ok := ctx.Value(responseHolderKey{}).(*responseHolder); ok {
		holder.response = resp
	}
}

// GetResponse returns the object the handler responded. It is only non-nil
// in after middlewares and closers.
func GetResponse(ctx context.Context) any {
	if holder, ok := ctx.Value(responseHolderKey{}).(*responseHolder); ok {
		return holder.response
	}

	return nil
}

func SetError(ctx context.Context, err error) {
	if holder, ok := ctx.Value(responseHolderKey{}).(*responseHolder); ok {
		holder.err = err
	}
}

func GetError(ctx context.Context) error {
	if holder, ok := ctx.Value(responseHolderKey{}).(*responseHolder); ok {
		return holder.err
	}

	return nil
}
