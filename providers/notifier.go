package providers

import (
	"context"
	"sort"
	"strings"
	"sync"

	"ordergrab/logging"

	"go.uber.org/zap"
)

// Notifier delivers an admin-facing message over one channel.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

var (
	mu        sync.RWMutex
	notifiers = map[string]Notifier{}
)

func RegisterNotifier(name string, n Notifier) {
	mu.Lock()
	defer mu.Unlock()
	notifiers[strings.ToLower(name)] = n
}

func GetNotifier(name string) Notifier {
	mu.RLock()
	defer mu.RUnlock()
	return notifiers[strings.ToLower(name)]
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(notifiers))
	for name := range notifiers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Broadcast sends text to every registered notifier. Failures are logged and skipped.
func Broadcast(ctx context.Context, text string) {
	for _, name := range Names() {
		n := GetNotifier(name)
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, text); err != nil {
			logging.Logger.Warn("⚠️ notifier failed", zap.String("notifier", name), zap.Error(err))
		}
	}
}
