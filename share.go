package yt_thumbnail

import (
	"net/url"
	"strings"
)

const defaultShareTitle = "YouTube Thumbnail"

// ShareLinks are pre-filled "share this" links for social sites.
type ShareLinks struct {
	Facebook string
	Twitter  string
	WhatsApp string
}

// NewShareLinks builds share links for the page at videoURL; an empty title falls back to a generic one.
func NewShareLinks(videoURL string, title string) ShareLinks {
	if title == "" {
		title = defaultShareTitle
	}
	text := escapeComponent(title + " · Thumbnail Downloader")
	u := escapeComponent(videoURL)
	return ShareLinks{
		Facebook: "https://www.facebook.com/sharer/sharer.php?u=" + u,
		Twitter:  "https://twitter.com/intent/tweet?url=" + u + "&text=" + text,
		WhatsApp: "https://api.whatsapp.com/send?text=" + text + "%20" + u,
	}
}

// escapeComponent escapes s for use inside a query value, encoding spaces as %20 rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
