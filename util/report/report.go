// Package report sends unexpected failures to sentry, using the hub bound
// to the request context when there is one.
package report

import (
	"context"

	"github.com/getsentry/sentry-go"
)

// HubFromContext returns the hub stored in ctx, or the current hub.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}

	return sentry.CurrentHub()
}

// CaptureException reports err on the hub of ctx.
func CaptureException(ctx context.Context, err error) {
	HubFromContext(ctx).CaptureException(err)
}

// Recover reports a recovered panic value on the hub of ctx.
func Recover(ctx context.Context, rec any) {
	HubFromContext(ctx).RecoverWithContext(ctx, rec)
}
