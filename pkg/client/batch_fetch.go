package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/chunghha/hn-client/pkg/batch"
	"github.com/chunghha/hn-client/pkg/hn"
)

// StoryResult is the per-id outcome of a concurrent story fetch.
type StoryResult struct {
	ID    int
	Story hn.Story
	Stale bool
	Err   error
}

// CommentResult is the per-id outcome of a concurrent comment fetch.
type CommentResult struct {
	ID      int
	Comment hn.Comment
	Stale   bool
	Err     error
}

// FetchStoriesConcurrent fetches many stories with at most
// ConcurrentRequests pipelines running at once. Results match the input
// order; one id's failure never aborts the others, so a partially usable
// batch is the caller's call (e.g., render what arrived, log the rest).
func (c *Client) FetchStoriesConcurrent(ctx context.Context, ids []int) []StoryResult {
	type outcome struct {
		story hn.Story
		stale bool
	}
	fetched := batch.Map(ctx, ids, c.cfg.Network.ConcurrentRequests,
		func(ctx context.Context, id int) (outcome, error) {
			s, stale, err := c.FetchStory(ctx, id)
			return outcome{story: s, stale: stale}, err
		})

	results := make([]StoryResult, len(ids))
	for i, r := range fetched {
		results[i] = StoryResult{
			ID:    ids[i],
			Story: r.Value.story,
			Stale: r.Value.stale,
			Err:   wrapCancelled(r.Err),
		}
	}
	return results
}

// FetchCommentsConcurrent fetches many comments under the same bounds as
// FetchStoriesConcurrent. Deduplication stays per-comment-id, so sibling
// subtrees requesting the same comment still share one network call.
func (c *Client) FetchCommentsConcurrent(ctx context.Context, ids []int) []CommentResult {
	type outcome struct {
		comment hn.Comment
		stale   bool
	}
	fetched := batch.Map(ctx, ids, c.cfg.Network.ConcurrentRequests,
		func(ctx context.Context, id int) (outcome, error) {
			cm, stale, err := c.FetchComment(ctx, id)
			return outcome{comment: cm, stale: stale}, err
		})

	results := make([]CommentResult, len(ids))
	for i, r := range fetched {
		results[i] = CommentResult{
			ID:      ids[i],
			Comment: r.Value.comment,
			Stale:   r.Value.stale,
			Err:     wrapCancelled(r.Err),
		}
	}
	return results
}

// wrapCancelled maps bare context errors (from pipelines that never
// started) onto ErrCancelled so batch callers see one cancellation error.
func wrapCancelled(err error) error {
	if err == nil || errors.Is(err, ErrCancelled) {
		return err
	}
	var perm *PermanentError
	var exh *ExhaustedError
	if errors.As(err, &perm) || errors.As(err, &exh) {
		return err
	}
	if isCancellation(err) {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return err
}
