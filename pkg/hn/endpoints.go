package hn

import "fmt"

// BaseURL is the default Hacker News API base URL.
const BaseURL = "https://hacker-news.firebaseio.com/v0/"

// ListKind identifies one of the story list endpoints.
type ListKind string

const (
	ListTop  ListKind = "top"
	ListBest ListKind = "best"
	ListNew  ListKind = "new"
	ListAsk  ListKind = "ask"
	ListShow ListKind = "show"
	ListJob  ListKind = "job"
)

// Valid reports whether k names a known list endpoint.
func (k ListKind) Valid() bool {
	switch k {
	case ListTop, ListBest, ListNew, ListAsk, ListShow, ListJob:
		return true
	}
	return false
}

// apiName returns the endpoint name used by the upstream API
// (e.g., "topstories").
func (k ListKind) apiName() string {
	return string(k) + "stories"
}

func (k ListKind) String() string {
	return string(k)
}

// ListURL returns the full URL of the list endpoint for k.
// baseURL must end with a slash; pass BaseURL outside of tests.
func ListURL(baseURL string, k ListKind) string {
	return baseURL + k.apiName() + ".json"
}

// ItemURL returns the full URL of the item endpoint for id.
func ItemURL(baseURL string, id int) string {
	return fmt.Sprintf("%sitem/%d.json", baseURL, id)
}
