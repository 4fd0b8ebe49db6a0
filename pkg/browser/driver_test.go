package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/gridmap/pkg/components"
	"github.com/entrhq/gridmap/pkg/table"
)

// The driver must satisfy both the read contract and the component actor.
var (
	_ table.Driver     = (*Driver)(nil)
	_ components.Actor = (*Driver)(nil)
)

func TestSelector(t *testing.T) {
	tests := []struct {
		name string
		loc  table.Locator
		want string
	}{
		{name: "css", loc: table.CSS("table#users > tbody > tr"), want: "css=table#users > tbody > tr"},
		{name: "xpath", loc: table.XPath("./td[2]"), want: "xpath=./td[2]"},
		{name: "id", loc: table.ID("users"), want: "id=users"},
		{name: "name", loc: table.Name("status"), want: `css=[name="status"]`},
		{name: "tag", loc: table.Tag("TR"), want: "css=tr"},
		{name: "class", loc: table.Class("cell"), want: "css=.cell"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selector(tt.loc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelector_Invalid(t *testing.T) {
	_, err := selector(table.Locator{})
	assert.True(t, errors.Is(err, table.ErrConfiguration))

	_, err = selector(table.Locator{By: "link", Value: "Next"})
	assert.True(t, errors.Is(err, table.ErrConfiguration))
}

func TestHandle_RejectsForeignElements(t *testing.T) {
	_, err := handle("not a handle")
	assert.Error(t, err)

	_, err = handle(nil)
	assert.Error(t, err)
}

func TestSessionManager_StartBeforeInitialize(t *testing.T) {
	manager := NewSessionManager()

	_, err := manager.StartSession("users", SessionOptions{Headless: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
	assert.False(t, manager.HasSessions())
}

func TestCleanupIdleSessions(t *testing.T) {
	manager := NewSessionManager()
	manager.SetIdleTimeout(time.Minute)

	now := time.Now()
	manager.sessions["stale"] = &Session{Name: "stale", LastUsedAt: now.Add(-2 * time.Minute)}
	manager.sessions["fresh"] = &Session{Name: "fresh", LastUsedAt: now}

	require.NoError(t, manager.CleanupIdleSessions())
	assert.NotContains(t, manager.sessions, "stale")
	assert.Contains(t, manager.sessions, "fresh")
}

func TestReapIdle(t *testing.T) {
	manager := NewSessionManager()
	manager.SetIdleTimeout(time.Millisecond)
	manager.sessions["stale"] = &Session{Name: "stale", LastUsedAt: time.Now().Add(-time.Second)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.ReapIdle(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return !manager.HasSessions() }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ReapIdle did not stop after cancel")
	}
}

func TestPageMetadata_String(t *testing.T) {
	assert.Equal(t, "Users (https://example.com/users)",
		PageMetadata{Title: "Users", URL: "https://example.com/users"}.String())
	assert.Equal(t, "https://example.com/users", PageMetadata{URL: "https://example.com/users"}.String())
}
