package providers

import (
	"context"

	"ordergrab/logging"
)

type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, text string) error {
	logging.Logger.Info("🔔 " + text)
	return nil
}

func init() {
	RegisterNotifier("log", LogNotifier{})
}
