package cli

import (
	"bufio"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/emprende/internal/client/guard"
	"github.com/dmitrijs2005/emprende/internal/client/models"
)

func TestWatchSession_LogoutLeavesProtectedRoute(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, _ := newTestApp(t, loggedInAPI())
	require.NoError(t, a.store.Save(ctx, "T1", nil))
	a.setRoute("/perfil")

	updates, unsubscribe := a.store.Subscribe()
	defer unsubscribe()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.watchSession(ctx, updates)
	}()

	require.NoError(t, a.store.Clear(ctx))
	require.Eventually(t, func() bool {
		return a.currentRoute() == guard.LoginRoute
	}, time.Second, 5*time.Millisecond)

	cancel()
	wg.Wait()
}

func TestWatchSession_PublicRouteStays(t *testing.T) {
	a, _ := newTestApp(t, loggedInAPI())
	a.setRoute("/home")

	updates := make(chan bool, 1)
	updates <- false
	close(updates)

	a.watchSession(context.Background(), updates)
	assert.Equal(t, "/home", a.currentRoute())
}

func TestGetStatus(t *testing.T) {
	a, _ := newTestApp(t, loggedInAPI())
	assert.Equal(t, "(guest /home)", a.getStatus())

	require.NoError(t, a.store.Save(context.Background(), "T1", models.Profile{"username": "anita"}))
	a.setRoute("/perfil")
	assert.Equal(t, "(anita /perfil)", a.getStatus())
}

func TestRun_ExitsAndClosesDatabase(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	a, out := newTestApp(t, loggedInAPI())
	a.reader = bufio.NewReader(strings.NewReader("status\nexit\n"))
	closed := false
	a.closeFn = func() error { closed = true; return nil }

	require.NoError(t, a.Run(context.Background()))
	assert.True(t, closed)
	assert.Contains(t, out.String(), "Welcome to the emprende CLI")
	assert.Contains(t, out.String(), "Route: /home")
}
