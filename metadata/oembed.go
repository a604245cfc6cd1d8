package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

const DefaultOEmbedEndpoint = "https://www.youtube.com/oembed"

// OEmbed looks up titles with YouTube's oEmbed endpoint.
type OEmbed struct {
	Endpoint   string
	HTTPClient *http.Client
}

func NewOEmbed() *OEmbed {
	return &OEmbed{
		Endpoint:   DefaultOEmbedEndpoint,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type oEmbedResponse struct {
	Title string `json:"title"`
}

func (o *OEmbed) Title(ctx context.Context, videoURL string) string {
	title, err := o.fetch(ctx, videoURL)
	if err != nil {
		zap.S().Named("oembed").Debugw("title lookup failed", "url", videoURL, "error", err)
		return ""
	}
	return title
}

func (o *OEmbed) fetch(ctx context.Context, videoURL string) (string, error) {
	query := url.Values{}
	query.Set("url", videoURL)
	query.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.Endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	client := o.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}
	var body oEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	return body.Title, nil
}
