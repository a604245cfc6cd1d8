package prefs

import "sync"

// Database is the storage backend for Preferences. Backends store values as given; policy (defaults, deduplication,
// capping) is applied by Preferences.
type Database interface {
	// GetTheme returns the stored theme, or "" if none has been stored.
	GetTheme() (string, error)
	SetTheme(theme string) error
	// ListRecentURLs returns the stored list in order, or nil if none has been stored.
	ListRecentURLs() ([]string, error)
	// WriteRecentURLs replaces the stored list.
	WriteRecentURLs(urls []string) error
}

// MemoryDatabase keeps preferences for the lifetime of the process only.
type MemoryDatabase struct {
	mu         sync.Mutex
	theme      string
	recentURLs []string
}

func (d *MemoryDatabase) GetTheme() (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.theme, nil
}

func (d *MemoryDatabase) SetTheme(theme string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.theme = theme
	return nil
}

func (d *MemoryDatabase) ListRecentURLs() ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.recentURLs...), nil
}

func (d *MemoryDatabase) WriteRecentURLs(urls []string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.recentURLs = append([]string(nil), urls...)
	return nil
}
