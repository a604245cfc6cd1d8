// Package metadata resolves human-readable information about a video. Lookups are best-effort: any failure yields
// an empty result, which callers treat as "unknown".
package metadata

import (
	"context"
	"fmt"
)

// A TitleLookup resolves the title of the video at a URL, or "" if it cannot.
type TitleLookup interface {
	Title(ctx context.Context, videoURL string) string
}

const (
	SourceOEmbed  = "oembed"
	SourceYouTube = "youtube"
	SourceNone    = "none"
)

// New returns the TitleLookup for a named source.
func New(source string) (TitleLookup, error) {
	switch source {
	case SourceOEmbed, "":
		return NewOEmbed(), nil
	case SourceYouTube:
		return NewYouTubeClient(), nil
	case SourceNone:
		return Nil{}, nil
	default:
		return nil, fmt.Errorf("unknown title source %q", source)
	}
}

// Nil never knows the title.
type Nil struct{}

func (Nil) Title(context.Context, string) string {
	return ""
}
