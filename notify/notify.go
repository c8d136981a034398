package notify

import (
	"context"
	"log/slog"
	"sync"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notifier delivers the human-readable outcome of an operation to whatever
// is showing the UI. Every domain operation reports, success or failure.
type Notifier interface {
	Notify(ctx context.Context, level Level, message string)
}

type Entry struct {
	Level   Level
	Message string
}

// MemoryNotifier records notifications in order. Tests assert on it.
type MemoryNotifier struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryNotifier() *MemoryNotifier {
	return &MemoryNotifier{}
}

func (n *MemoryNotifier) Notify(ctx context.Context, level Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, Entry{Level: level, Message: message})
}

func (n *MemoryNotifier) Entries() []Entry {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Entry(nil), n.entries...)
}

func (n *MemoryNotifier) Last() (Entry, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.entries) == 0 {
		return Entry{}, false
	}
	return n.entries[len(n.entries)-1], true
}

// LogNotifier is the fallback when no push channel is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, level Level, message string) {
	slog.Info("notification", "level", string(level), "message", message)
}
