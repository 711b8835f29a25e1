package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestListReviewsPassesLimit(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reviews", r.URL.Path)
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"reviews": []map[string]interface{}{
				{"id": "rev-1", "pullRequest": 42, "status": "completed", "issueCount": 3},
			},
			"total": 1,
		})
	})

	list, err := client.ListReviews(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, list.Reviews, 1)
	require.Equal(t, "rev-1", list.Reviews[0].ID)
	require.Equal(t, 42, list.Reviews[0].PullRequest)
}

func TestRerunReviewSendsIdempotencyKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reviews/rev-1/rerun", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, err := uuid.Parse(body["idempotencyKey"])
		require.NoError(t, err)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"id": "rev-2", "status": "queued"})
	})

	review, err := client.RerunReview(context.Background(), "rev-1")
	require.NoError(t, err)
	require.Equal(t, "queued", review.Status)
}
