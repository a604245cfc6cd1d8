package session

import (
	"context"
	"errors"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanbriolat/yt-thumbnail/internal/prefs"
	"github.com/alanbriolat/yt-thumbnail/videoid"
)

type titleFunc func(ctx context.Context, videoURL string) string

func (f titleFunc) Title(ctx context.Context, videoURL string) string {
	return f(ctx, videoURL)
}

type brokenDatabase struct {
	prefs.MemoryDatabase
}

func (*brokenDatabase) WriteRecentURLs([]string) error {
	return errors.New("disk full")
}

func newTestSession(title string) *Session {
	config := DefaultConfig()
	config.Titles = titleFunc(func(context.Context, string) string { return title })
	return New(config)
}

func TestSession_Lookup(t *testing.T) {
	assert := assert_.New(t)
	s := newTestSession("Never Gonna Give You Up")

	l, err := s.Lookup(context.Background(), "  https://youtu.be/dQw4w9WgXcQ \n")
	require.NoError(t, err)
	assert.Equal("https://youtu.be/dQw4w9WgXcQ", l.URL)
	assert.Equal(videoid.VideoID("dQw4w9WgXcQ"), l.VideoID)
	assert.NotEmpty(l.ID)
	assert.Len(l.Thumbnails, 4)
	assert.Equal("https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg", l.Primary.URL)
	assert.Equal("Title: Never Gonna Give You Up", l.Heading())
	assert.Equal(
		"https://www.facebook.com/sharer/sharer.php?u=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ",
		l.Share.Facebook,
	)

	last := s.LastVideoID()
	assert.True(last.IsSome())
	assert.Equal(videoid.VideoID("dQw4w9WgXcQ"), last.Value)
	assert.Equal("https://youtu.be/dQw4w9WgXcQ", s.LastURL())

	urls, err := s.Preferences().RecentURLs()
	require.NoError(t, err)
	assert.Equal([]string{"https://youtu.be/dQw4w9WgXcQ"}, urls)
}

func TestSession_LookupWithoutTitle(t *testing.T) {
	assert := assert_.New(t)
	s := newTestSession("")

	l, err := s.Lookup(context.Background(), "https://www.youtube.com/shorts/abcdefghijk")
	require.NoError(t, err)
	assert.Equal("Video ID: abcdefghijk", l.Heading())
	assert.Contains(l.Share.Twitter, "&text=YouTube%20Thumbnail%20%C2%B7%20Thumbnail%20Downloader")
}

func TestSession_LookupInvalid(t *testing.T) {
	assert := assert_.New(t)
	s := newTestSession("")

	_, err := s.Lookup(context.Background(), "   ")
	assert.ErrorIs(err, ErrEmptyInput)
	_, err = s.Lookup(context.Background(), "https://example.com/watch")
	assert.ErrorIs(err, videoid.ErrNotFound)

	last := s.LastVideoID()
	assert.True(last.IsNone())
	assert.Equal("", s.LastURL())

	_, err = s.Lookup(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	require.NoError(t, err)
	_, err = s.Lookup(context.Background(), "not a url")
	assert.ErrorIs(err, videoid.ErrNotFound)
	last = s.LastVideoID()
	assert.Equal(videoid.VideoID("dQw4w9WgXcQ"), last.Value)
	assert.Equal("https://www.youtube.com/watch?v=dQw4w9WgXcQ", s.LastURL())

	urls, err := s.Preferences().RecentURLs()
	require.NoError(t, err)
	assert.Len(urls, 1)
}

func TestSession_LookupSurvivesBrokenStore(t *testing.T) {
	assert := assert_.New(t)
	config := DefaultConfig()
	config.Preferences = prefs.New(&brokenDatabase{})
	s := New(config)

	l, err := s.Lookup(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(videoid.VideoID("dQw4w9WgXcQ"), l.VideoID)
	assert.Error(s.ClearRecentURLs())
}

func TestSession_Preferences(t *testing.T) {
	assert := assert_.New(t)
	s := newTestSession("")

	theme, err := s.ToggleTheme()
	require.NoError(t, err)
	assert.Equal(prefs.ThemeDark, theme)
	require.NoError(t, s.SetTheme(prefs.ThemeLight))
	theme, err = s.Preferences().Theme()
	require.NoError(t, err)
	assert.Equal(prefs.ThemeLight, theme)

	for _, u := range []string{"https://youtu.be/aaaaa", "https://youtu.be/bbbbb"} {
		_, err := s.Lookup(context.Background(), u)
		require.NoError(t, err)
	}
	require.NoError(t, s.RemoveRecentURL("https://youtu.be/aaaaa"))
	urls, err := s.Preferences().RecentURLs()
	require.NoError(t, err)
	assert.Equal([]string{"https://youtu.be/bbbbb"}, urls)
	require.NoError(t, s.ClearRecentURLs())
	urls, err = s.Preferences().RecentURLs()
	require.NoError(t, err)
	assert.Empty(urls)
}

func TestSession_updatePreferences(t *testing.T) {
	assert := assert_.New(t)
	s := newTestSession("")

	changes, err := s.updatePreferences(func(p *prefs.Preferences) error {
		_, err := p.ToggleTheme()
		return err
	})
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal([]string{"theme"}, changes[0].Path)
	assert.Equal(prefs.ThemeLight, changes[0].From)
	assert.Equal(prefs.ThemeDark, changes[0].To)

	changes, err = s.updatePreferences(func(p *prefs.Preferences) error {
		return p.SetTheme(prefs.ThemeDark)
	})
	require.NoError(t, err)
	assert.Empty(changes)

	_, err = s.updatePreferences(func(*prefs.Preferences) error {
		return errors.New("nope")
	})
	assert.EqualError(err, "nope")
}
