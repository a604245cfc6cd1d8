package metadata

import (
	"context"
	"net/http"
	"time"

	"github.com/kkdai/youtube/v2"
	"go.uber.org/zap"
)

// YouTubeClient looks up titles through the YouTube player API.
type YouTubeClient struct {
	Client youtube.Client
}

func NewYouTubeClient() *YouTubeClient {
	return &YouTubeClient{
		Client: youtube.Client{HTTPClient: &http.Client{Timeout: 30 * time.Second}},
	}
}

func (y *YouTubeClient) Title(ctx context.Context, videoURL string) string {
	video, err := y.Client.GetVideoContext(ctx, videoURL)
	if err != nil {
		zap.S().Named("youtube").Debugw("failed to get video info", "url", videoURL, "error", err)
		return ""
	}
	return video.Title
}
