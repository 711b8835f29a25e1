package api

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Review is one AI review run against a pull request.
type Review struct {
	ID           string    `json:"id"`
	RepositoryID string    `json:"repositoryId"`
	PullRequest  int       `json:"pullRequest"`
	Status       string    `json:"status"` // queued | running | completed | failed
	Summary      string    `json:"summary,omitempty"`
	IssueCount   int       `json:"issueCount"`
	CreditsUsed  int       `json:"creditsUsed"`
	CreatedAt    time.Time `json:"createdAt"`
	CompletedAt  time.Time `json:"completedAt,omitempty"`
}

// ReviewList is a page of reviews.
type ReviewList struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// rerunRequest asks for a fresh review of an already-reviewed pull request.
// The idempotency key lets the server drop duplicate submissions from
// impatient retries.
type rerunRequest struct {
	IdempotencyKey string `json:"idempotencyKey"`
}

// ListReviews returns the most recent reviews, newest first.
func (c *Client) ListReviews(ctx context.Context, limit int) (*ReviewList, error) {
	path := "/reviews"
	if limit > 0 {
		path = fmt.Sprintf("/reviews?%s", url.Values{"limit": []string{fmt.Sprint(limit)}}.Encode())
	}
	var list ReviewList
	if err := c.get(ctx, path, &list); err != nil {
		return nil, errors.Wrap(err, "[ListReviews]")
	}
	return &list, nil
}

// GetReview returns a single review by ID.
func (c *Client) GetReview(ctx context.Context, reviewID string) (*Review, error) {
	var review Review
	if err := c.get(ctx, "/reviews/"+reviewID, &review); err != nil {
		return nil, errors.Wrap(err, "[GetReview]")
	}
	return &review, nil
}

// RerunReview queues a new review run for the pull request a previous review
// covered.
func (c *Client) RerunReview(ctx context.Context, reviewID string) (*Review, error) {
	var review Review
	body := rerunRequest{IdempotencyKey: uuid.New().String()}
	if err := c.post(ctx, "/reviews/"+reviewID+"/rerun", body, &review); err != nil {
		return nil, errors.Wrap(err, "[RerunReview]")
	}
	return &review, nil
}
