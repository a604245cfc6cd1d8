// Package prefs holds the user's persistent preferences: the display theme and a short history of looked-up URLs.
package prefs

import (
	"fmt"
	"sync"
)

// MaxRecentURLs is how many URLs the recent history keeps.
const MaxRecentURLs = 5

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts exactly "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

// Toggled returns the other theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// State is a snapshot of all preferences.
type State struct {
	Theme      Theme    `diff:"theme"`
	RecentURLs []string `diff:"recent_urls"`
}

// Preferences applies the preference policy on top of a Database. Read-modify-write operations are serialised, so a
// Preferences can be shared between goroutines as long as it is the only writer to its Database.
type Preferences struct {
	mu sync.Mutex
	db Database
}

func New(db Database) *Preferences {
	return &Preferences{db: db}
}

// Theme returns the stored theme; anything other than dark, including nothing at all, is light.
func (p *Preferences) Theme() (Theme, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.theme()
}

func (p *Preferences) theme() (Theme, error) {
	stored, err := p.db.GetTheme()
	if err != nil {
		return ThemeLight, fmt.Errorf("failed to read theme: %w", err)
	}
	if Theme(stored) == ThemeDark {
		return ThemeDark, nil
	}
	return ThemeLight, nil
}

func (p *Preferences) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.db.SetTheme(string(theme)); err != nil {
		return fmt.Errorf("failed to write theme: %w", err)
	}
	return nil
}

// ToggleTheme switches between light and dark, returning the new theme.
func (p *Preferences) ToggleTheme() (Theme, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	current, err := p.theme()
	if err != nil {
		return current, err
	}
	next := current.Toggled()
	if err := p.db.SetTheme(string(next)); err != nil {
		return current, fmt.Errorf("failed to write theme: %w", err)
	}
	return next, nil
}

// RecentURLs returns the history, most recent first.
func (p *Preferences) RecentURLs() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.recentURLs()
}

func (p *Preferences) recentURLs() ([]string, error) {
	urls, err := p.db.ListRecentURLs()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent URLs: %w", err)
	}
	return urls, nil
}

// AddRecentURL moves (or inserts) u to the front of the history, returning the updated history.
func (p *Preferences) AddRecentURL(u string) ([]string, error) {
	return p.updateRecentURLs(func(urls []string) []string {
		return PushRecent(urls, u, MaxRecentURLs)
	})
}

// RemoveRecentURL removes u from the history, returning the updated history.
func (p *Preferences) RemoveRecentURL(u string) ([]string, error) {
	return p.updateRecentURLs(func(urls []string) []string {
		return without(urls, u)
	})
}

func (p *Preferences) ClearRecentURLs() error {
	_, err := p.updateRecentURLs(func([]string) []string { return []string{} })
	return err
}

func (p *Preferences) updateRecentURLs(f func([]string) []string) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	urls, err := p.recentURLs()
	if err != nil {
		return nil, err
	}
	urls = f(urls)
	if err := p.db.WriteRecentURLs(urls); err != nil {
		return nil, fmt.Errorf("failed to write recent URLs: %w", err)
	}
	return urls, nil
}

// State returns a snapshot of all preferences.
func (p *Preferences) State() (State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	theme, err := p.theme()
	if err != nil {
		return State{}, err
	}
	urls, err := p.recentURLs()
	if err != nil {
		return State{}, err
	}
	return State{Theme: theme, RecentURLs: urls}, nil
}

// PushRecent returns a new list with u at the front, any earlier occurrence of u removed, and at most max entries.
// A max below zero is treated as zero.
func PushRecent(urls []string, u string, max int) []string {
	if max < 0 {
		max = 0
	}
	result := make([]string, 0, len(urls)+1)
	result = append(result, u)
	result = append(result, without(urls, u)...)
	if len(result) > max {
		result = result[:max]
	}
	return result
}

func without(urls []string, u string) []string {
	result := make([]string, 0, len(urls))
	for _, existing := range urls {
		if existing != u {
			result = append(result, existing)
		}
	}
	return result
}
