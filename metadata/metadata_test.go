package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	assert_ "github.com/stretchr/testify/assert"
)

func TestOEmbed_Title(t *testing.T) {
	assert := assert_.New(t)
	var gotURL, gotFormat string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL.Query().Get("url")
		gotFormat = r.URL.Query().Get("format")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title": "Never Gonna Give You Up", "author_name": "Rick Astley"}`))
	}))
	defer server.Close()

	o := &OEmbed{Endpoint: server.URL, HTTPClient: server.Client()}
	videoURL := "https://www.youtube.com/watch?v=dQw4w9WgXcQ&feature=share"
	assert.Equal("Never Gonna Give You Up", o.Title(context.Background(), videoURL))
	assert.Equal(videoURL, gotURL)
	assert.Equal("json", gotFormat)
}

func TestOEmbed_AnySuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNonAuthoritativeInfo)
		_, _ = w.Write([]byte(`{"title": "Cached Title"}`))
	}))
	defer server.Close()

	o := &OEmbed{Endpoint: server.URL, HTTPClient: server.Client()}
	assert_.Equal(t, "Cached Title", o.Title(context.Background(), "https://youtu.be/abc123"))
}

func TestOEmbed_Failures(t *testing.T) {
	handlers := map[string]http.HandlerFunc{
		"not found": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Not Found", http.StatusNotFound)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"title":`))
		},
		"redirect loop": func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.String(), http.StatusFound)
		},
		"not modified": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotModified)
		},
		"no title": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		},
	}
	for name, handler := range handlers {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(handler)
			defer server.Close()
			o := &OEmbed{Endpoint: server.URL, HTTPClient: server.Client()}
			assert_.Equal(t, "", o.Title(context.Background(), "https://youtu.be/abc123"))
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		endpoint := server.URL
		server.Close()
		o := &OEmbed{Endpoint: endpoint}
		assert_.Equal(t, "", o.Title(context.Background(), "https://youtu.be/abc123"))
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert_.Equal(t, "", NewOEmbed().Title(ctx, "https://youtu.be/abc123"))
	})
}

func TestNew(t *testing.T) {
	assert := assert_.New(t)
	lookup, err := New("")
	assert.NoError(err)
	assert.IsType(&OEmbed{}, lookup)
	lookup, err = New(SourceYouTube)
	assert.NoError(err)
	assert.IsType(&YouTubeClient{}, lookup)
	lookup, err = New(SourceNone)
	assert.NoError(err)
	assert.Equal("", lookup.Title(context.Background(), "https://youtu.be/abc123"))
	_, err = New("bing")
	assert.Error(err)
}
