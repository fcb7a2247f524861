package notify

import (
	"context"
	"log/slog"
)

// LogSMSSender implements ports.SMSSender by logging the message.
type LogSMSSender struct {
	logger *slog.Logger
}

// NewLogSMSSender creates the logging SMS sender.
func NewLogSMSSender(logger *slog.Logger) *LogSMSSender {
	return &LogSMSSender{logger: logger.With("component", "sms_sender")}
}

// Send logs the text message instead of delivering it.
func (s *LogSMSSender) Send(
	ctx context.Context, to, templateKind string, params map[string]string,
) error {
	s.logger.InfoContext(ctx, "SMS queued",
		"to", to,
		"template", templateKind,
		"params", len(params))
	return nil
}
