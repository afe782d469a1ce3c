package service

import (
	"context"
	"log"
	"sort"
	"strings"
)

// AdminNotifier delivers diagnostics to system operators. Fire-and-forget:
// delivery failures are not part of the correctness guarantee and are never
// escalated.
type AdminNotifier interface {
	NotifyAdmin(ctx context.Context, subject string, fields map[string]string)
}

// LogAdminNotifier writes admin notifications to the process log. A real
// deployment would plug in the platform's messaging here (email, Slack);
// the engine only depends on the interface.
type LogAdminNotifier struct {
	siteName string
}

// NewLogAdminNotifier creates a new LogAdminNotifier.
func NewLogAdminNotifier(siteName string) *LogAdminNotifier {
	return &LogAdminNotifier{siteName: siteName}
}

// NotifyAdmin logs the subject and the full structured context. Every field
// of the notification is included to aid manual investigation.
func (n *LogAdminNotifier) NotifyAdmin(ctx context.Context, subject string, fields map[string]string) {
	var b strings.Builder
	b.WriteString(n.siteName)
	b.WriteString(": Transaction failed. ")
	b.WriteString(subject)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" | ")
		b.WriteString(k)
		b.WriteString(" => ")
		b.WriteString(fields[k])
	}

	log.Printf("[PAYSTACK PAYMENT ERROR] %s", b.String())
}
