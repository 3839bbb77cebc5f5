package api

import (
	"context"
	"net/http"
	"time"
)

type importRequest struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Recording is one entry in the server's transcription listing.
type Recording struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportYouTube submits a validated URL for server-side download and
// transcription. A blank title is omitted so the backend derives one from
// the video metadata.
func (c *Client) ImportYouTube(ctx context.Context, url, title string) error {
	return c.doJSON(ctx, http.MethodPost, "/transcription/youtube", importRequest{
		URL:   url,
		Title: title,
	}, nil)
}

// ListRecordings fetches the transcription listing for the content screen.
func (c *Client) ListRecordings(ctx context.Context) ([]Recording, error) {
	var recordings []Recording
	if err := c.doJSON(ctx, http.MethodGet, "/transcription", nil, &recordings); err != nil {
		return nil, err
	}
	return recordings, nil
}
