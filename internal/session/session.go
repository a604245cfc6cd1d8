// Package session holds the state of one user's interaction with the tool: the preferences in use, and the video
// most recently looked up.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/r3labs/diff/v3"
	"go.uber.org/zap"

	"github.com/alanbriolat/yt-thumbnail"
	"github.com/alanbriolat/yt-thumbnail/generic"
	"github.com/alanbriolat/yt-thumbnail/internal/prefs"
	"github.com/alanbriolat/yt-thumbnail/metadata"
	"github.com/alanbriolat/yt-thumbnail/videoid"
)

var ErrEmptyInput = errors.New("empty input")

type Config struct {
	Preferences *prefs.Preferences
	Titles      metadata.TitleLookup
	Thumbnails  yt_thumbnail.ThumbnailConfig
	Chain       *videoid.Chain
}

// DefaultConfig keeps preferences in memory and does not look up titles.
func DefaultConfig() Config {
	return Config{
		Preferences: prefs.New(&prefs.MemoryDatabase{}),
		Titles:      metadata.Nil{},
		Thumbnails:  yt_thumbnail.NewThumbnailConfig(),
		Chain:       &videoid.DefaultChain,
	}
}

type LookupID string

func NewLookupID() LookupID {
	return LookupID(generic.Unwrap(uuid.NewRandom()).String())
}

// A Lookup is everything known about a video after a successful Session.Lookup.
type Lookup struct {
	ID         LookupID
	URL        string
	VideoID    videoid.VideoID
	Thumbnails []yt_thumbnail.Thumbnail
	Primary    yt_thumbnail.Thumbnail
	// Title is empty if it could not be resolved.
	Title string
	Share yt_thumbnail.ShareLinks
}

// Heading is the line describing the video: its title if known, otherwise its ID.
func (l *Lookup) Heading() string {
	if l.Title != "" {
		return "Title: " + l.Title
	}
	return "Video ID: " + string(l.VideoID)
}

type Session struct {
	config Config
	log    *zap.SugaredLogger

	mu          sync.Mutex
	lastVideoID generic.Option[videoid.VideoID]
	lastURL     string
}

func New(config Config) *Session {
	defaults := DefaultConfig()
	if config.Preferences == nil {
		config.Preferences = defaults.Preferences
	}
	if config.Titles == nil {
		config.Titles = defaults.Titles
	}
	if config.Thumbnails.FileTemplate == nil {
		config.Thumbnails = defaults.Thumbnails
	}
	if config.Chain == nil {
		config.Chain = defaults.Chain
	}
	return &Session{
		config: config,
		log:    zap.S().Named("session"),
	}
}

func (s *Session) Preferences() *prefs.Preferences {
	return s.config.Preferences
}

func (s *Session) Thumbnails() yt_thumbnail.ThumbnailConfig {
	return s.config.Thumbnails
}

// Lookup extracts the video ID from raw (after trimming whitespace) and gathers everything else about the video.
// Invalid input is an error wrapping ErrEmptyInput or videoid.ErrNotFound, and leaves the Session unchanged. On
// success the URL is added to the recent history and the title is resolved; failures of either are not errors.
func (s *Session) Lookup(ctx context.Context, raw string) (*Lookup, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return nil, ErrEmptyInput
	}
	id, err := s.config.Chain.Extract(u)
	if err != nil {
		s.log.Debugw("extraction failed", "url", u, "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.lastVideoID = generic.Some(id)
	s.lastURL = u
	s.mu.Unlock()

	l := &Lookup{
		ID:         NewLookupID(),
		URL:        u,
		VideoID:    id,
		Thumbnails: s.config.Thumbnails.Thumbnails(id),
		Primary:    s.config.Thumbnails.Primary(id),
	}
	log := s.log.With("lookup_id", l.ID, "video_id", id)
	log.Debugw("extracted video ID", "url", u)

	if _, err := s.updatePreferences(func(p *prefs.Preferences) error {
		_, err := p.AddRecentURL(u)
		return err
	}); err != nil {
		log.Warnf("failed to save recent URL: %v", err)
	}

	l.Title = s.config.Titles.Title(ctx, u)
	l.Share = yt_thumbnail.NewShareLinks(u, l.Title)
	return l, nil
}

// LastVideoID is the video ID of the most recent successful Lookup, if any.
func (s *Session) LastVideoID() generic.Option[videoid.VideoID] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastVideoID
}

// LastURL is the URL of the most recent successful Lookup, or "".
func (s *Session) LastURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastURL
}

func (s *Session) SetTheme(theme prefs.Theme) error {
	_, err := s.updatePreferences(func(p *prefs.Preferences) error {
		return p.SetTheme(theme)
	})
	return err
}

func (s *Session) ToggleTheme() (theme prefs.Theme, err error) {
	_, err = s.updatePreferences(func(p *prefs.Preferences) error {
		theme, err = p.ToggleTheme()
		return err
	})
	return theme, err
}

func (s *Session) RemoveRecentURL(u string) error {
	_, err := s.updatePreferences(func(p *prefs.Preferences) error {
		_, err := p.RemoveRecentURL(u)
		return err
	})
	return err
}

func (s *Session) ClearRecentURLs() error {
	_, err := s.updatePreferences(func(p *prefs.Preferences) error {
		return p.ClearRecentURLs()
	})
	return err
}

// updatePreferences runs f and logs what it changed. The changelog is nil if either snapshot could not be read.
func (s *Session) updatePreferences(f func(p *prefs.Preferences) error) (diff.Changelog, error) {
	p := s.config.Preferences
	before, beforeErr := p.State()
	if err := f(p); err != nil {
		return nil, err
	}
	after, afterErr := p.State()
	if beforeErr != nil || afterErr != nil {
		return nil, nil
	}
	changes, err := diff.Diff(before, after)
	if err != nil {
		s.log.Errorf("failed to diff old and new preferences: %v", err)
		return nil, nil
	}
	for _, change := range changes {
		s.log.Debugf("preference %v: %#v -> %#v", change.Path, change.From, change.To)
	}
	return changes, nil
}
