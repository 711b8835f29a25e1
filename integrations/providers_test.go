package integrations_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yogendraft21/insight-code-sub000/integrations"
)

func TestConnectURLGitHub(t *testing.T) {
	raw, err := integrations.ConnectURL(integrations.ProviderGitHub, "client-1", "https://api.example.com/callback", "state-1")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "github.com", parsed.Host)

	query := parsed.Query()
	require.Equal(t, "client-1", query.Get("client_id"))
	require.Equal(t, "https://api.example.com/callback", query.Get("redirect_uri"))
	require.Equal(t, "state-1", query.Get("state"))
	require.Contains(t, query.Get("scope"), "repo")
}

func TestConnectURLGitLab(t *testing.T) {
	raw, err := integrations.ConnectURL(integrations.ProviderGitLab, "client-1", "https://api.example.com/callback", "state-1")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	require.Equal(t, "gitlab.com", parsed.Host)
}

func TestConnectURLUnsupportedProvider(t *testing.T) {
	_, err := integrations.ConnectURL("bitbucket", "client-1", "https://api.example.com/callback", "state-1")
	require.Error(t, err)
}
