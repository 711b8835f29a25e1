package refresh_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	clienterrors "github.com/yogendraft21/insight-code-sub000/internal/errors"
	"github.com/yogendraft21/insight-code-sub000/token"
	"github.com/yogendraft21/insight-code-sub000/token/storefakes"
	"github.com/yogendraft21/insight-code-sub000/transport/refresh"
)

// fakeRefresher counts exchange calls and can be made to block so tests can
// pile up concurrent callers.
type fakeRefresher struct {
	calls   atomic.Int64
	pair    token.Pair
	err     error
	release chan struct{}
}

func (fr *fakeRefresher) Refresh(ctx context.Context, refreshToken string) (token.Pair, error) {
	fr.calls.Add(1)
	if fr.release != nil {
		<-fr.release
	}
	if fr.err != nil {
		return token.Pair{}, fr.err
	}
	return fr.pair, nil
}

func TestRefreshPersistsNewPair(t *testing.T) {
	store := storefakes.NewFakeStore()
	require.NoError(t, token.SavePair(store, token.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	refresher := &fakeRefresher{pair: token.Pair{AccessToken: "a2", RefreshToken: "r2"}}
	coordinator, err := refresh.NewCoordinator(store, refresher)
	require.NoError(t, err)

	pair, err := coordinator.Refresh(context.Background())
	require.NoError(t, err)
	require.Equal(t, "a2", pair.AccessToken)

	stored, err := token.LoadPair(store)
	require.NoError(t, err)
	require.Equal(t, "a2", stored.AccessToken)
	require.Equal(t, "r2", stored.RefreshToken)
}

func TestRefreshFailureClearsTokens(t *testing.T) {
	store := storefakes.NewFakeStore()
	require.NoError(t, token.SavePair(store, token.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	refresher := &fakeRefresher{err: errors.New("401 unauthorized")}
	coordinator, err := refresh.NewCoordinator(store, refresher)
	require.NoError(t, err)

	_, err = coordinator.Refresh(context.Background())
	require.ErrorIs(t, err, clienterrors.ErrRefreshFailed)
	require.Equal(t, 0, store.Len())
}

func TestRefreshWithoutStoredToken(t *testing.T) {
	store := storefakes.NewFakeStore()
	refresher := &fakeRefresher{}
	coordinator, err := refresh.NewCoordinator(store, refresher)
	require.NoError(t, err)

	_, err = coordinator.Refresh(context.Background())
	require.ErrorIs(t, err, clienterrors.ErrNoRefreshToken)
	require.EqualValues(t, 0, refresher.calls.Load())
}

func TestConcurrentRefreshesShareOneFlight(t *testing.T) {
	store := storefakes.NewFakeStore()
	require.NoError(t, token.SavePair(store, token.Pair{AccessToken: "a1", RefreshToken: "r1"}))

	refresher := &fakeRefresher{
		pair:    token.Pair{AccessToken: "a2", RefreshToken: "r2"},
		release: make(chan struct{}),
	}
	coordinator, err := refresh.NewCoordinator(store, refresher)
	require.NoError(t, err)

	const callers = 8
	var wg sync.WaitGroup
	start := make(chan struct{})
	results := make([]token.Pair, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i], errs[i] = coordinator.Refresh(context.Background())
		}(i)
	}

	// Release all callers together, give them time to queue on the single
	// flight, then let the exchange finish.
	close(start)
	require.Eventually(t, func() bool { return refresher.calls.Load() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	close(refresher.release)
	wg.Wait()

	require.EqualValues(t, 1, refresher.calls.Load())
	for i, pair := range results {
		require.NoError(t, errs[i])
		require.Equal(t, "a2", pair.AccessToken)
	}
}
