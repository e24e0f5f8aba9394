package resolve

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partscout/partscout/internal/model"
)

type fakeSource struct {
	err   error
	name  string
	makes []string
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Lookup(_ context.Context, _, _ string) ([]string, error) {
	f.calls++
	return f.makes, f.err
}

func fastChain(sources ...Source) *Chain {
	return NewChain(NewPacer(time.Millisecond, time.Millisecond), sources...)
}

func TestChain_FirstSourceWins(t *testing.T) {
	primary := &fakeSource{name: "primary", makes: []string{"Toyota", "Honda"}}
	fallback := &fakeSource{name: "fallback", makes: []string{"Ford"}}

	result, err := fastChain(primary, fallback).Resolve(context.Background(), "K1", "")
	require.NoError(t, err)

	assert.Equal(t, model.StatusFound, result.Status)
	assert.Equal(t, "primary", result.Source)
	assert.Equal(t, []string{"Honda", "Toyota"}, result.Makes)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, fallback.calls, "later sources must not be contacted after a hit")
}

func TestChain_FallsBackOnEmptyResult(t *testing.T) {
	primary := &fakeSource{name: "primary"}
	fallback := &fakeSource{name: "fallback", makes: []string{"Ford"}}

	result, err := fastChain(primary, fallback).Resolve(context.Background(), "K1", "")
	require.NoError(t, err)

	assert.Equal(t, model.StatusFound, result.Status)
	assert.Equal(t, "fallback", result.Source)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestChain_FallsBackOnSourceError(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("connection reset")}
	fallback := &fakeSource{name: "fallback", makes: []string{"Dodge"}}

	result, err := fastChain(primary, fallback).Resolve(context.Background(), "K1", "")
	require.NoError(t, err)

	assert.Equal(t, model.StatusFound, result.Status)
	assert.Equal(t, "fallback", result.Source)
	assert.Equal(t, 1, primary.calls, "failed sources are never reattempted")
}

func TestChain_NotFoundWhenExhausted(t *testing.T) {
	primary := &fakeSource{name: "primary"}
	fallback := &fakeSource{name: "fallback", err: errors.New("boom")}

	result, err := fastChain(primary, fallback).Resolve(context.Background(), "K1", "")
	require.NoError(t, err)

	assert.Equal(t, model.StatusNotFound, result.Status)
	assert.Equal(t, model.SourceNone, result.Source)
	assert.Empty(t, result.Makes)
}

func TestChain_CanceledContextAborts(t *testing.T) {
	primary := &fakeSource{name: "primary", makes: []string{"Toyota"}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fastChain(primary).Resolve(ctx, "K1", "")
	require.Error(t, err)
	assert.Equal(t, 0, primary.calls)
}

func TestNewDefaultChain_SourceOrder(t *testing.T) {
	chain := NewDefaultChain(DefaultConfig())

	require.Len(t, chain.sources, 2)
	assert.Equal(t, rockAutoName, chain.sources[0].Name())
	assert.Equal(t, webSearchName, chain.sources[1].Name())
}
