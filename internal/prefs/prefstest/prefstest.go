// Package prefstest provides a shared test suite for prefs.Database backends.
package prefstest

import (
	"testing"

	assert_ "github.com/stretchr/testify/assert"

	"github.com/alanbriolat/yt-thumbnail/internal/prefs"
)

// RunDatabaseTests checks the Preferences policy against a fresh, empty Database backend.
func RunDatabaseTests(t *testing.T, db prefs.Database) {
	assert := assert_.New(t)
	p := prefs.New(db)

	theme, err := p.Theme()
	assert.NoError(err)
	assert.Equal(prefs.ThemeLight, theme)
	assert.NoError(p.SetTheme(prefs.ThemeDark))
	theme, err = p.Theme()
	assert.NoError(err)
	assert.Equal(prefs.ThemeDark, theme)
	theme, err = p.ToggleTheme()
	assert.NoError(err)
	assert.Equal(prefs.ThemeLight, theme)
	assert.Error(p.SetTheme("sepia"))

	urls, err := p.RecentURLs()
	assert.NoError(err)
	assert.Empty(urls)
	for _, u := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u3"} {
		_, err := p.AddRecentURL(u)
		assert.NoError(err)
	}
	urls, err = p.RecentURLs()
	assert.NoError(err)
	assert.Equal([]string{"u3", "u6", "u5", "u4", "u2"}, urls)

	urls, err = p.RemoveRecentURL("u5")
	assert.NoError(err)
	assert.Equal([]string{"u3", "u6", "u4", "u2"}, urls)
	urls, err = p.RemoveRecentURL("missing")
	assert.NoError(err)
	assert.Equal([]string{"u3", "u6", "u4", "u2"}, urls)

	state, err := p.State()
	assert.NoError(err)
	assert.Equal(prefs.State{Theme: prefs.ThemeLight, RecentURLs: []string{"u3", "u6", "u4", "u2"}}, state)

	assert.NoError(p.ClearRecentURLs())
	urls, err = p.RecentURLs()
	assert.NoError(err)
	assert.Empty(urls)
}

