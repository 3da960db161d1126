package engine_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Factom-Asset-Tokens/factom-wrapper/engine"
	"github.com/Factom-Asset-Tokens/factom-wrapper/factom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settle = 10 * time.Millisecond

func TestCreateChain(t *testing.T) {
	api := newFakeAPI()
	e := engine.New(api, engine.WithSettleDelay(settle))

	pub, err := e.CreateChain(context.Background(), ecAdr,
		[]string{"name"}, "content")
	require.NoError(t, err)
	assert.Equal(t, "cafe", pub.ChainID)
	assert.True(t, pub.Commit.Success)
	assert.True(t, pub.Reveal.Success)

	assert.Equal(t, []string{"ComposeChain", "CommitChain", "RevealChain"},
		api.ops())
	assert.Equal(t, `{"message":"commit"}`, api.callsTo("CommitChain")[0].Payload)
	assert.Equal(t, `{"entry":"reveal"}`, api.callsTo("RevealChain")[0].Payload)
}

func TestCreateEntry(t *testing.T) {
	api := newFakeAPI()
	e := engine.New(api, engine.WithSettleDelay(settle))

	_, err := e.CreateEntry(context.Background(), ecAdr, "cafe",
		[]string{"a", "b"}, "content")
	require.NoError(t, err)
	assert.Equal(t, []string{"ComposeEntry", "CommitEntry", "RevealEntry"},
		api.ops())
	assert.Equal(t, `{"message":"commit"}`, api.callsTo("CommitEntry")[0].Payload)
	assert.Equal(t, `{"entry":"reveal"}`, api.callsTo("RevealEntry")[0].Payload)
}

func TestPublishPayloadsFromLatestCompose(t *testing.T) {
	api := newFakeAPI()
	e := engine.New(api, engine.WithSettleDelay(settle))
	ctx := context.Background()

	_, err := e.CreateEntry(ctx, ecAdr, "cafe", nil, "first")
	require.NoError(t, err)
	api.cmp.Commit = []byte(`{"message":"second commit"}`)
	api.cmp.Reveal = []byte(`{"entry":"second reveal"}`)
	_, err = e.CreateEntry(ctx, ecAdr, "cafe", nil, "second")
	require.NoError(t, err)

	commits, reveals := api.callsTo("CommitEntry"), api.callsTo("RevealEntry")
	require.Len(t, commits, 2)
	require.Len(t, reveals, 2)
	assert.Equal(t, `{"message":"second commit"}`, commits[1].Payload)
	assert.Equal(t, `{"entry":"second reveal"}`, reveals[1].Payload)
}

func TestPublishComposeFailed(t *testing.T) {
	api := newFakeAPI()
	api.fail["ComposeChain"] = &factom.UnexpectedResponseError{
		Op: "ComposeChain", Body: []byte(`{}`)}
	_, err := engine.New(api, engine.WithSettleDelay(settle)).
		CreateChain(context.Background(), ecAdr, nil, "")
	var unexpected *factom.UnexpectedResponseError
	assert.True(t, errors.As(err, &unexpected))
	assert.Equal(t, []string{"ComposeChain"}, api.ops())
}

func TestPublishCommitFailed(t *testing.T) {
	for _, mode := range []string{"rejected", "unavailable"} {
		mode := mode
		t.Run(mode, func(t *testing.T) {
			api := newFakeAPI()
			if mode == "rejected" {
				api.reject["CommitChain"] = true
			} else {
				api.fail["CommitChain"] = &factom.ServiceUnavailableError{
					Service: factom.Factomd, Port: "8088",
					Err: errors.New("connection refused")}
			}
			e := engine.New(api, engine.WithSettleDelay(settle))

			_, err := e.CreateChain(context.Background(), ecAdr, nil, "")
			require.Error(t, err)
			var revealErr *engine.RevealFailedAfterCommitError
			assert.False(t, errors.As(err, &revealErr))
			assert.Empty(t, api.callsTo("RevealChain"))
		})
	}
}

func TestPublishRevealFailed(t *testing.T) {
	api := newFakeAPI()
	api.reject["RevealEntry"] = true
	e := engine.New(api, engine.WithSettleDelay(settle))

	pub, err := e.CreateEntry(context.Background(), ecAdr, "cafe", nil, "")
	var revealErr *engine.RevealFailedAfterCommitError
	require.True(t, errors.As(err, &revealErr))
	assert.Equal(t, "CreateEntry", revealErr.Op)
	assert.Equal(t, "cafe", revealErr.ChainID)
	assert.Equal(t, `{"entry":"reveal"}`, string(revealErr.Reveal))
	var failed *engine.FailedError
	assert.True(t, errors.As(err, &failed))
	assert.True(t, pub.Commit.Success)
	assert.False(t, pub.Reveal.Success)
}

func TestPublishCanceledDuringSettle(t *testing.T) {
	api := newFakeAPI()
	e := engine.New(api, engine.WithSettleDelay(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	api.onCall = func(c call) {
		if c.Op == "CommitChain" {
			cancel()
		}
	}

	_, err := e.CreateChain(ctx, ecAdr, nil, "")
	var revealErr *engine.RevealFailedAfterCommitError
	require.True(t, errors.As(err, &revealErr))
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, api.callsTo("RevealChain"))
}

func TestPublishSettleDelay(t *testing.T) {
	const delay = 50 * time.Millisecond
	api := newFakeAPI()
	var committed, revealed time.Time
	api.onCall = func(c call) {
		switch c.Op {
		case "CommitEntry":
			committed = time.Now()
		case "RevealEntry":
			revealed = time.Now()
		}
	}
	e := engine.New(api, engine.WithSettleDelay(delay))
	assert.Equal(t, delay, e.SettleDelay())

	_, err := e.CreateEntry(context.Background(), ecAdr, "cafe", nil, "")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, revealed.Sub(committed), delay)
}

func TestDefaultSettleDelay(t *testing.T) {
	e := engine.New(newFakeAPI(), engine.WithSettleDelay(0))
	assert.Equal(t, engine.DefaultSettleDelay, e.SettleDelay())
	assert.Equal(t, 2*time.Second, engine.DefaultSettleDelay)
}
