package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyProvider struct {
	errs  []error
	calls int
}

func (f *flakyProvider) Name() string      { return "flaky" }
func (f *flakyProvider) ModelName() string { return "m" }
func (f *flakyProvider) Models(context.Context) ([]string, error) {
	return nil, nil
}

func (f *flakyProvider) Complete(context.Context, Request) (*Response, error) {
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	return &Response{Text: "ok"}, nil
}

func fastRetry(p Provider, n int) *RetryProvider {
	return &RetryProvider{inner: p, maxRetries: n, baseDelay: time.Millisecond}
}

func TestRetry_RecoversFromRateLimit(t *testing.T) {
	inner := &flakyProvider{errs: []error{&StatusError{Code: 429}, &StatusError{Code: 503}}}
	resp, err := fastRetry(inner, 3).Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 3, inner.calls)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	inner := &flakyProvider{errs: []error{&StatusError{Code: 401}}}
	_, err := fastRetry(inner, 3).Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetry_GivesUp(t *testing.T) {
	inner := &flakyProvider{errs: []error{
		&StatusError{Code: 500}, &StatusError{Code: 500}, &StatusError{Code: 500},
	}}
	_, err := fastRetry(inner, 2).Complete(context.Background(), Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 retries")
	assert.Equal(t, 3, inner.calls)
}

func TestRetry_CanceledContextNotRetried(t *testing.T) {
	inner := &flakyProvider{errs: []error{&networkError{provider: "x", err: context.Canceled}}}
	_, err := fastRetry(inner, 3).Complete(context.Background(), Request{})
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, 1, inner.calls)
}

func TestWithRetry_ZeroIsPassthrough(t *testing.T) {
	inner := &flakyProvider{}
	assert.Same(t, Provider(inner), WithRetry(inner, 0))
	assert.IsType(t, &RetryProvider{}, WithRetry(inner, 2))
}
