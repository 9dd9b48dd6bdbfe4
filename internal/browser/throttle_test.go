package browser

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingDriver struct {
	Driver
	navigations []string
}

func (d *countingDriver) Navigate(_ context.Context, url string) error {
	d.navigations = append(d.navigations, url)
	return nil
}

func TestNewThrottle_DisabledReturnsDriver(t *testing.T) {
	inner := &countingDriver{}
	assert.Same(t, inner, NewThrottle(inner, 0))
}

func TestThrottle_Navigate(t *testing.T) {
	inner := &countingDriver{}
	d := NewThrottle(inner, 1000)

	assert.NoError(t, d.Navigate(context.Background(), "a"))
	assert.NoError(t, d.Navigate(context.Background(), "b"))
	assert.Equal(t, []string{"a", "b"}, inner.navigations)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, d.Navigate(ctx, "c"))
	assert.Equal(t, []string{"a", "b"}, inner.navigations)
}
