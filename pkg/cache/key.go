package cache

import "strconv"

// Cache keys encode the request shape: resource kind plus identifier.
// Two requests that would hit different upstream endpoints never share
// a key.

// ListKey returns the cache key for a story-ID list (e.g., "list:top").
func ListKey(kind string) string {
	return "list:" + kind
}

// StoryKey returns the cache key for a story item.
func StoryKey(id int) string {
	return "story:" + strconv.Itoa(id)
}

// CommentKey returns the cache key for a comment item.
func CommentKey(id int) string {
	return "comment:" + strconv.Itoa(id)
}
