package moderation

import "context"

type RequestMeta struct {
	CallerID  string
	IPAddress string
	UserAgent string
}

type metaKey struct{}

// WithRequestMeta attaches caller metadata recorded on every audit row.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

func requestMetaFrom(ctx context.Context) RequestMeta {
	if meta, ok := ctx.Value(metaKey{}).(RequestMeta); ok {
		return meta
	}
	return RequestMeta{}
}
