package notification

import (
	"context"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// LogGateway is a Gateway that logs messages instead of delivering them.
// Used for local development and whenever SMTP is disabled in config.
type LogGateway struct{}

var _ Gateway = LogGateway{}

// Send logs the message at Info level and reports success.
func (LogGateway) Send(ctx context.Context, msg Message) error {
	zctx.From(ctx).Info("notification suppressed (log gateway)",
		zap.Strings("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.Body)),
	)
	return nil
}
