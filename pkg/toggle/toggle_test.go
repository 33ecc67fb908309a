package toggle

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleOpens(t *testing.T) {
	t.Parallel()

	opened := 0
	open := false
	tg := New(func() error { opened++; open = true; return nil },
		WithExpanded(func() bool { return open }),
		WithLabel("Main menu"),
	)

	c := tg.Control()
	assert.Equal(t, "false", c.Attrs()["aria-expanded"])
	assert.Equal(t, "Main menu", c.Attrs()["aria-label"])
	assert.Equal(t, "button", c.Attrs()["role"])

	require.True(t, c.Activate())
	assert.Equal(t, 1, opened)
	assert.Equal(t, "true", c.Attrs()["aria-expanded"])
	assert.Contains(t, c.Render(0), "Menu")
}

func TestToggleReportsOpenError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var got error
	tg := New(func() error { return boom }, WithReporter(func(err error) { got = err }))

	tg.Control().Activate()
	assert.ErrorIs(t, got, boom)
}
