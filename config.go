package yt_thumbnail

import (
	"strings"
	"text/template"

	"github.com/alanbriolat/yt-thumbnail/videoid"
)

const (
	DefaultThumbnailBaseURL = "https://img.youtube.com/vi"
	DefaultFileTemplate     = "{{.ID}}-{{.Tier}}.jpg"
)

// ThumbnailConfig controls where thumbnails are found and what they are saved as.
type ThumbnailConfig struct {
	BaseURL      string
	FileTemplate *template.Template
}

func NewThumbnailConfig() ThumbnailConfig {
	return ThumbnailConfig{
		BaseURL:      DefaultThumbnailBaseURL,
		FileTemplate: template.Must(ParseFileTemplate(DefaultFileTemplate)),
	}
}

// ParseFileTemplate parses a saved-file name template; it can refer to {{.ID}} and {{.Tier}}.
func ParseFileTemplate(s string) (*template.Template, error) {
	return template.New("target_file").Option("missingkey=error").Parse(s)
}

// Thumbnail gives the location of one tier of the video's thumbnail.
func (c ThumbnailConfig) Thumbnail(id videoid.VideoID, tier Tier) Thumbnail {
	return Thumbnail{
		VideoID: id,
		Tier:    tier,
		URL:     strings.TrimRight(c.BaseURL, "/") + "/" + string(id) + "/" + string(tier) + ".jpg",
	}
}

// Thumbnails gives the locations of every tier, highest resolution first.
func (c ThumbnailConfig) Thumbnails(id videoid.VideoID) []Thumbnail {
	thumbnails := make([]Thumbnail, 0, len(Tiers))
	for _, tier := range Tiers {
		thumbnails = append(thumbnails, c.Thumbnail(id, tier))
	}
	return thumbnails
}

// Primary is the thumbnail used to represent the video, e.g. as a preview image.
func (c ThumbnailConfig) Primary(id videoid.VideoID) Thumbnail {
	return c.Thumbnail(id, TierMaxRes)
}

func (c ThumbnailConfig) Filename(t Thumbnail) (string, error) {
	args := fileTemplateArgs{
		ID:   string(t.VideoID),
		Tier: string(t.Tier),
	}
	builder := strings.Builder{}
	if err := c.FileTemplate.Execute(&builder, &args); err != nil {
		return "", err
	} else {
		return builder.String(), nil
	}
}

type fileTemplateArgs struct {
	ID   string
	Tier string
}
