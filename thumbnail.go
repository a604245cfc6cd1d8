package yt_thumbnail

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alanbriolat/yt-thumbnail/generic"
	"github.com/alanbriolat/yt-thumbnail/videoid"
)

var ErrUnknownTier = errors.New("unknown thumbnail tier")

// Tier is a thumbnail resolution, named after the image file YouTube serves for it.
type Tier string

const (
	TierMaxRes   Tier = "maxresdefault"
	TierStandard Tier = "sddefault"
	TierMedium   Tier = "mqdefault"
	TierDefault  Tier = "default"
)

// Tiers lists every Tier from highest to lowest resolution.
var Tiers = []Tier{TierMaxRes, TierStandard, TierMedium, TierDefault}

var tierNames = generic.NewSet(string(TierMaxRes), string(TierStandard), string(TierMedium), string(TierDefault))

func (t Tier) String() string {
	return string(t)
}

// ParseTier accepts a tier name, case-insensitively.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if !tierNames.Contains(name) {
		return "", fmt.Errorf("%w %q (expected one of %s)", ErrUnknownTier, s, strings.Join(generic.SortedStrings(tierNames), ", "))
	}
	return Tier(name), nil
}

// A Thumbnail is the location of one resolution of a video's thumbnail image.
type Thumbnail struct {
	VideoID videoid.VideoID
	Tier    Tier
	URL     string
}

func (t Thumbnail) String() string {
	return fmt.Sprintf("%s: %s", t.Tier, t.URL)
}
