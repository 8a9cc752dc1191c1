package store

import "time"

type UserProfile struct {
	UID               string    `json:"uid"` // assigned by the external identity provider
	Email             string    `json:"email"`
	AnonymousUsername string    `json:"anonymous_username"` // assigned once at signup, immutable
	CreatedAt         time.Time `json:"created_at"`
}

type Post struct {
	ID                 string    `json:"id"` // UUID
	AuthorUID          string    `json:"-"`  // attributable internally, never exposed
	AuthorUsername     string    `json:"author_username"`
	Content            string    `json:"content"`
	Timestamp          time.Time `json:"timestamp"`
	SentimentScore     float64   `json:"sentiment_score"`     // approx [-1, 1]
	SentimentMagnitude float64   `json:"sentiment_magnitude"` // >= 0
}

type Echo struct {
	ID           string    `json:"id"` // UUID
	AuthorUID    string    `json:"author_uid"`
	AudioURL     string    `json:"audio_url"` // synthesized rendition only, never the original recording
	Transcript   string    `json:"transcript"`
	GlimmerCount int64     `json:"glimmer_count"`
	Timestamp    time.Time `json:"timestamp"`
}
