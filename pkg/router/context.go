package router

import "context"

type (
	responseKey struct{}
	errorKey    struct{}
)

func withResult(ctx context.Context, resp any, err error) context.Context {
	ctx = context.WithValue(ctx, responseKey{}, resp)
	return context.WithValue(ctx, errorKey{}, err)
}

// Response returns the handler response, it is only set for closers.
func Response(ctx context.Context) any {
	return ctx.Value(responseKey{})
}

// Error returns the error of the request, it is only set for closers.
func Error(ctx context.Context) error {
	err, _ := ctx.Value(errorKey{}).(error)
	return err
}
