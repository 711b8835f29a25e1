package integrations

import (
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/gitlab"
)

// Provider is a supported source-hosting provider.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGitLab Provider = "gitlab"
)

// scopes a review bot needs: read code, write PR/MR comments.
var providerScopes = map[Provider][]string{
	ProviderGitHub: {"repo", "read:org"},
	ProviderGitLab: {"read_repository", "api"},
}

func endpoint(provider Provider) (oauth2.Endpoint, error) {
	switch provider {
	case ProviderGitHub:
		return github.Endpoint, nil
	case ProviderGitLab:
		return gitlab.Endpoint, nil
	}
	return oauth2.Endpoint{}, errors.Errorf("[endpoint] unsupported provider %q", provider)
}

// ConnectURL builds the provider authorization URL that starts linking a
// repository host to the account. The grant callback lands on the API
// server, which finishes the exchange; the client never sees provider
// tokens.
func ConnectURL(provider Provider, clientID, redirectURL, state string) (string, error) {
	providerEndpoint, err := endpoint(provider)
	if err != nil {
		return "", err
	}
	config := oauth2.Config{
		ClientID:    clientID,
		Endpoint:    providerEndpoint,
		RedirectURL: redirectURL,
		Scopes:      providerScopes[provider],
	}
	return config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}
