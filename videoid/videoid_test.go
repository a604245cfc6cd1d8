package videoid

import (
	"errors"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	cases := []struct {
		name  string
		input string
		id    VideoID
		stage string
	}{
		{"watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", StageWatch},
		{"watch extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&feature=share", "dQw4w9WgXcQ", StageWatch},
		{"watch list", "https://www.youtube.com/watch?v=abc123&list=xyz", "abc123", StageWatch},
		{"watch no scheme", "youtube.com/watch?v=abc123", "abc123", StageWatch},
		{"watch http", "http://youtube.com/watch?v=a_b-C9", "a_b-C9", StageWatch},
		{"watch mobile host", "https://m.youtube.com/watch?v=abc123", "abc123", StageWatch},
		{"embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", StageWatch},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", StageWatch},
		{"short link timestamp", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ", StageWatch},
		{"embedded in text", "look at https://youtu.be/abc123 please", "abc123", StageWatch},
		{"ends at no-break space", "https://youtu.be/abc123\u00a0please", "abc123", StageWatch},
		{"ends at ideographic space", "look https://youtu.be/abc123\u3000next", "abc123", StageWatch},
		{"ends at vertical tab", "https://www.youtube.com/watch?v=abc123\vjunk", "abc123", StageWatch},
		{"ends at line separator", "https://youtu.be/abc123\u2028junk", "abc123", StageWatch},
		{"ends at byte order mark", "https://youtu.be/abc123\ufeffjunk", "abc123", StageWatch},
		{"ends at narrow no-break space", "https://youtu.be/abc123\u202fjunk", "abc123", StageWatch},
		{"shorts", "https://www.youtube.com/shorts/abcde", "abcde", StageShorts},
		{"shorts share", "https://youtube.com/shorts/Xy_z-12345?feature=share", "Xy_z-12345", StageShorts},
		{"query not first", "https://www.youtube.com/watch?feature=share&v=abc123", "abc123", StageQuery},
		{"query any host", "https://example.com/watch?v=abc123", "abc123", StageQuery},
		{"query malformed escape", "https://example.com/?v=ab%zz", "abzz", StageQuery},
		{"query escaped key", "https://example.com/?%76=abc123", "abc123", StageQuery},
		{"short host upper case", "https://YOUTU.BE/abc123", "abc123", StageShortHost},
		{"short host www", "https://WWW.YOUTU.BE/abc123", "abc123", StageShortHost},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert := assert_.New(t)
			id, err := Extract(c.input)
			assert.NoError(err)
			assert.Equal(c.id, id)
			assert.True(IsValid(c.input))
			m, err := DefaultChain.Match(c.input)
			if assert.NoError(err) {
				assert.Equal(c.stage, m.StageName)
			}
		})
	}
}

func TestExtract_NotFound(t *testing.T) {
	inputs := []string{
		"",
		"not a url",
		"https://www.youtube.com/shorts/abcd",
		"https://www.youtube.com/",
		"https://vimeo.com/12345",
		"https://www.youtube.com/watch?list=xyz",
		// The first stage wins, even though its candidate cleans down to nothing
		"https://www.youtube.com/watch?v=%%%",
		"https://youtu.be/",
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert := assert_.New(t)
			id, err := Extract(input)
			assert.ErrorIs(err, ErrNotFound)
			assert.Equal(VideoID(""), id)
			assert.False(IsValid(input))
		})
	}
}

func TestExtract_ReportsStageReasons(t *testing.T) {
	assert := assert_.New(t)
	_, err := Extract("https://www.youtube.com/shorts/abcd")
	assert.True(errors.Is(err, ErrNotFound))
	for _, name := range DefaultChain.List() {
		assert.Contains(err.Error(), "["+name+"]")
	}
}

func TestExtract_Property(t *testing.T) {
	assert := assert_.New(t)
	ids := []string{"a", "abc123", "dQw4w9WgXcQ", "___--", "Z-9_z", "0123456789abcdefghij"}
	for _, x := range ids {
		for _, tmpl := range []string{
			"https://www.youtube.com/watch?v=%s",
			"https://www.youtube.com/watch?v=%s&list=PL123&index=2",
			"https://youtu.be/%s",
			"https://www.youtube.com/embed/%s",
		} {
			input := sprintf(tmpl, x)
			id, err := Extract(input)
			assert.NoError(err, input)
			assert.Equal(VideoID(x), id, input)
		}
		shorts := "https://www.youtube.com/shorts/" + x
		id, err := Extract(shorts)
		if len(x) >= 5 {
			assert.NoError(err, shorts)
			assert.Equal(VideoID(x), id, shorts)
		} else {
			assert.ErrorIs(err, ErrNotFound, shorts)
		}
	}
}

func TestClean(t *testing.T) {
	assert := assert_.New(t)
	assert.Equal(VideoID("dQw4w9WgXcQ"), Clean("dQw4w9WgXcQ"))
	assert.Equal(VideoID("abc"), Clean("abc?t=10"))
	assert.Equal(VideoID("abc"), Clean("abc&list=x"))
	assert.Equal(VideoID("abc"), Clean("a!b c/"))
	assert.Equal(VideoID(""), Clean("?abc"))
	assert.Equal(VideoID(""), Clean("%%%"))
	for _, s := range []string{"dQw4w9WgXcQ", "x y?z", "é_ü-1", "a/b&c"} {
		once := Clean(s)
		assert.Equal(once, Clean(string(once)), "Clean should be idempotent for %q", s)
	}
}
