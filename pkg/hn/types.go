// Package hn defines the Hacker News data model and endpoint URLs for the
// Firebase API (https://github.com/HackerNews/API). The API is anonymous and
// read-only; these types exist only to deserialize responses.
package hn

// Story is a story, poll, or job item as returned by the item endpoint.
// Every field except ID may be absent in the upstream payload.
type Story struct {
	ID          int    `json:"id"`
	By          string `json:"by,omitempty"`
	Title       string `json:"title,omitempty"`
	URL         string `json:"url,omitempty"`
	Text        string `json:"text,omitempty"`
	Score       int    `json:"score,omitempty"`
	Time        int64  `json:"time,omitempty"`
	Descendants int    `json:"descendants,omitempty"`
	Kids        []int  `json:"kids,omitempty"`
	Type        string `json:"type,omitempty"`
}

// Comment is a comment item as returned by the item endpoint.
type Comment struct {
	ID     int    `json:"id"`
	By     string `json:"by,omitempty"`
	Text   string `json:"text,omitempty"`
	Parent int    `json:"parent,omitempty"`
	Time   int64  `json:"time,omitempty"`
	Kids   []int  `json:"kids,omitempty"`
	Type   string `json:"type,omitempty"`
	Dead   bool   `json:"dead,omitempty"`
}
