package youtube

import "time"

// SearchResponse is the envelope returned by GET /search
type SearchResponse struct {
	Kind          string       `json:"kind,omitempty"`
	NextPageToken string       `json:"nextPageToken,omitempty"`
	Items         []SearchItem `json:"items" validate:"required,dive"`
}

// SearchItem is a single search hit
type SearchItem struct {
	ID      ItemID  `json:"id" validate:"required"`
	Snippet Snippet `json:"snippet"`
}

// ItemID identifies the resource behind a search hit
type ItemID struct {
	Kind    string `json:"kind,omitempty"`
	VideoID string `json:"videoId" validate:"required"`
}

// Snippet holds the display metadata of a hit
type Snippet struct {
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	ChannelTitle string     `json:"channelTitle,omitempty"`
	PublishedAt  time.Time  `json:"publishedAt,omitempty"`
	Thumbnails   Thumbnails `json:"thumbnails,omitempty"`
}

// Thumbnails lists the preview images by size
type Thumbnails struct {
	Default Thumbnail `json:"default,omitempty"`
	Medium  Thumbnail `json:"medium,omitempty"`
	High    Thumbnail `json:"high,omitempty"`
}

// Thumbnail is one preview image
type Thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Video is the flattened form of a search hit used by callers
type Video struct {
	ID           string
	Title        string
	ChannelTitle string
	PublishedAt  time.Time
	ThumbnailURL string
}

// WatchURL returns the public watch page for the video
func (v Video) WatchURL() string {
	return "https://www.youtube.com/watch?v=" + v.ID
}

// EmbedURL returns the embeddable player URL for the video
func (v Video) EmbedURL() string {
	return "https://www.youtube.com/embed/" + v.ID
}

func (item SearchItem) video() Video {
	thumb := item.Snippet.Thumbnails.High.URL
	if thumb == "" {
		thumb = item.Snippet.Thumbnails.Default.URL
	}
	return Video{
		ID:           item.ID.VideoID,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
		PublishedAt:  item.Snippet.PublishedAt,
		ThumbnailURL: thumb,
	}
}
