package network_test

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/chapool/treasury-api/internal/test"
	"github.com/chapool/treasury-api/internal/wallet"
	"github.com/chapool/treasury-api/internal/wallet/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const probeTimeout = 50 * time.Millisecond

func candidates(n int) []string {
	urls := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		urls = append(urls, fmt.Sprintf("https://rpc-%d.test", i))
	}
	return urls
}

func newSelector(fake *test.FakeNetwork, urls []string, key string) *network.Selector {
	return network.NewSelector(network.SelectorConfig{
		URLs:         urls,
		ChainID:      big.NewInt(1),
		ProbeTimeout: probeTimeout,
		PrivateKey:   key,
	}, fake.Dial, nil, nil)
}

func TestConnectCommitsFirstResponsiveCandidate(t *testing.T) {
	urls := candidates(6)
	fake := test.NewFakeNetwork()

	// 1 hangs past the probe timeout, 2 refuses the dial, 3 errors, 4 answers
	fake.Add(urls[0], &test.FakeClient{Hang: true})
	fake.Add(urls[2], &test.FakeClient{BlockNumberErr: assert.AnError})
	responsive := fake.Add(urls[3], test.NewFakeClient())
	fake.Add(urls[4], test.NewFakeClient())
	fake.Add(urls[5], test.NewFakeClient())

	s := newSelector(fake, urls, test.TreasuryKeyHex)

	conn, err := s.Connect(t.Context())
	require.NoError(t, err)

	assert.Equal(t, urls[3], conn.URL)
	assert.Equal(t, responsive.Height, conn.BlockNumber)
	assert.Equal(t, int64(1), conn.ChainID.Int64())
	assert.Equal(t, urls[:4], fake.Dialed(), "candidates after the committed one must not be dialed")

	signer, err := conn.Signer()
	require.NoError(t, err)
	assert.Equal(t, test.TreasuryAddress(t), signer.Address())
}

func TestConnectReusesCommittedConnection(t *testing.T) {
	urls := candidates(2)
	fake := test.NewFakeNetwork()
	fake.Add(urls[0], test.NewFakeClient())

	s := newSelector(fake, urls, "")

	first, err := s.Connect(t.Context())
	require.NoError(t, err)
	second, err := s.Connect(t.Context())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Len(t, fake.Dialed(), 1)
	assert.Same(t, first, s.Current())
}

func TestConnectAllCandidatesTimeOut(t *testing.T) {
	urls := candidates(6)
	fake := test.NewFakeNetwork()
	for _, url := range urls {
		fake.Add(url, &test.FakeClient{Hang: true})
	}

	s := newSelector(fake, urls, test.TreasuryKeyHex)

	conn, err := s.Connect(t.Context())
	require.Error(t, err)
	assert.Nil(t, conn)
	require.ErrorIs(t, err, wallet.ErrNoConnectivity)
	assert.Nil(t, s.Current())
	assert.Equal(t, urls, fake.Dialed())

	// selection is retried on the next call
	fake.Add(urls[5], test.NewFakeClient())
	conn, err = s.Connect(t.Context())
	require.NoError(t, err)
	assert.Equal(t, urls[5], conn.URL)
}

func TestConnectWithoutCandidates(t *testing.T) {
	s := newSelector(test.NewFakeNetwork(), nil, "")

	_, err := s.Connect(t.Context())
	require.ErrorIs(t, err, wallet.ErrNoConnectivity)
}

func TestConnectWithoutPrivateKey(t *testing.T) {
	urls := candidates(1)
	fake := test.NewFakeNetwork()
	fake.Add(urls[0], test.NewFakeClient())

	s := newSelector(fake, urls, "")

	conn, err := s.Connect(t.Context())
	require.NoError(t, err)

	_, err = conn.Signer()
	require.ErrorIs(t, err, wallet.ErrSignerUnavailable)

	_, ok := conn.Address()
	assert.False(t, ok)
}

func TestConnectWithMalformedPrivateKey(t *testing.T) {
	urls := candidates(1)
	fake := test.NewFakeNetwork()
	fake.Add(urls[0], test.NewFakeClient())

	s := newSelector(fake, urls, "0xnothex")

	conn, err := s.Connect(t.Context())
	require.NoError(t, err)

	_, err = conn.Signer()
	require.ErrorIs(t, err, wallet.ErrSignerUnavailable)
}

func TestConcurrentConnectProbesOnce(t *testing.T) {
	urls := candidates(2)
	fake := test.NewFakeNetwork()
	client := fake.Add(urls[0], test.NewFakeClient())

	s := newSelector(fake, urls, "")

	var wg sync.WaitGroup
	conns := make([]*network.Connection, 8)
	for i := range conns {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := s.Connect(context.Background())
			assert.NoError(t, err)
			conns[i] = conn
		}(i)
	}
	wg.Wait()

	for _, conn := range conns {
		assert.Same(t, conns[0], conn)
	}
	assert.Equal(t, 1, client.Calls("BlockNumber"))
}

func TestResetReprobes(t *testing.T) {
	urls := candidates(2)
	fake := test.NewFakeNetwork()
	first := fake.Add(urls[0], test.NewFakeClient())

	s := newSelector(fake, urls, "")

	_, err := s.Connect(t.Context())
	require.NoError(t, err)

	s.Reset()
	assert.Nil(t, s.Current())
	assert.True(t, first.Closed())

	first.BlockNumberErr = assert.AnError
	fake.Add(urls[1], test.NewFakeClient())

	conn, err := s.Connect(t.Context())
	require.NoError(t, err)
	assert.Equal(t, urls[1], conn.URL)
}

func TestConnectHonorsCallerContext(t *testing.T) {
	urls := candidates(1)
	fake := test.NewFakeNetwork()
	fake.Add(urls[0], &test.FakeClient{Hang: true})

	s := network.NewSelector(network.SelectorConfig{
		URLs:         urls,
		ProbeTimeout: time.Second,
	}, fake.Dial, nil, nil)

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Millisecond)
	defer cancel()

	_, err := s.Connect(ctx)
	require.ErrorIs(t, err, wallet.ErrNoConnectivity)
}
