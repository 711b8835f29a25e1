package api

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Repository is a source repository connected for review.
type Repository struct {
	ID          string    `json:"id"`
	Provider    string    `json:"provider"` // github | gitlab
	FullName    string    `json:"fullName"` // e.g. "acme/widget"
	Active      bool      `json:"active"`
	ConnectedAt time.Time `json:"connectedAt"`
}

type connectRepositoryRequest struct {
	Provider string `json:"provider"`
	FullName string `json:"fullName"`
}

// ListRepositories returns every repository connected to the account.
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	var repos []Repository
	if err := c.get(ctx, "/repositories", &repos); err != nil {
		return nil, errors.Wrap(err, "[ListRepositories]")
	}
	return repos, nil
}

// ConnectRepository links a provider repository for review. The provider-side
// OAuth grant must already exist; see the integrations package for building
// the grant URL.
func (c *Client) ConnectRepository(ctx context.Context, provider, fullName string) (*Repository, error) {
	var repo Repository
	body := connectRepositoryRequest{Provider: provider, FullName: fullName}
	if err := c.post(ctx, "/repositories", body, &repo); err != nil {
		return nil, errors.Wrap(err, "[ConnectRepository]")
	}
	return &repo, nil
}

// DisconnectRepository unlinks a repository. Pending reviews finish; no new
// ones start.
func (c *Client) DisconnectRepository(ctx context.Context, repositoryID string) error {
	if err := c.delete(ctx, "/repositories/"+repositoryID); err != nil {
		return errors.Wrap(err, "[DisconnectRepository]")
	}
	return nil
}
