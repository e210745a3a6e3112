package signal

import "time"

// Article is a news article with a precomputed sentiment score
type Article struct {
	ID             int64     `db:"id" json:"id"`
	Title          string    `db:"title" json:"title"`
	Content        string    `db:"content" json:"content"`
	Source         string    `db:"source" json:"source"`
	SentimentScore float64   `db:"sentiment_score" json:"sentiment_score"`
	FetchedAt      time.Time `db:"fetched_at" json:"fetched_at"`
}

// SocialPost is a short-form social media post
type SocialPost struct {
	ID        int64     `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	FetchedAt time.Time `db:"fetched_at" json:"fetched_at"`
}

// SearchVolumeSample is a search-interest reading for one keyword,
// on the 0-100 index scale search providers report
type SearchVolumeSample struct {
	ID        int64     `db:"id" json:"id"`
	Keyword   string    `db:"keyword" json:"keyword"`
	Volume    int       `db:"volume" json:"volume"`
	FetchedAt time.Time `db:"fetched_at" json:"fetched_at"`
}

// SalesRecord is a daily unit-sales count for one product category
type SalesRecord struct {
	ID       int64     `db:"id" json:"id"`
	Category string    `db:"category" json:"category"`
	Count    int       `db:"count" json:"count"`
	Date     time.Time `db:"date" json:"date"`
}

// DiscussionPost is a long-form forum or community discussion post
type DiscussionPost struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Text      string    `db:"text" json:"text"`
	Forum     string    `db:"forum" json:"forum"`
	FetchedAt time.Time `db:"fetched_at" json:"fetched_at"`
}

// TimeWindow is a half-open [Start, End) query range. Start must precede End.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// WindowEndingNow returns a window of the given length ending at now.
func WindowEndingNow(d time.Duration) TimeWindow {
	now := time.Now().UTC()
	return TimeWindow{Start: now.Add(-d), End: now}
}

// Duration returns the window length.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Halves splits the window at its midpoint into the older and the more
// recent half.
func (w TimeWindow) Halves() (older, recent TimeWindow) {
	mid := w.Start.Add(w.End.Sub(w.Start) / 2)
	return TimeWindow{Start: w.Start, End: mid}, TimeWindow{Start: mid, End: w.End}
}

// Stats holds per-kind record counts for the whole store
type Stats struct {
	Articles        int64 `db:"articles" json:"articles"`
	SocialPosts     int64 `db:"social_posts" json:"social_posts"`
	SearchVolumes   int64 `db:"search_volumes" json:"search_volumes"`
	SalesRecords    int64 `db:"sales_records" json:"sales_records"`
	DiscussionPosts int64 `db:"discussion_posts" json:"discussion_posts"`
}

// Total returns the number of records across all kinds.
func (s Stats) Total() int64 {
	return s.Articles + s.SocialPosts + s.SearchVolumes + s.SalesRecords + s.DiscussionPosts
}
