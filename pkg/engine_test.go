package pkg

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/notnil/chess"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUCI answers the handshake and then does whatever onGo says
func fakeUCI(t *testing.T, onGo string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs /bin/sh")
	}
	script := `#!/bin/sh
while read line; do
  case "$line" in
    uci) echo "id name Hangfish"; echo "uciok" ;;
    isready) echo "readyok" ;;
    go*) ` + onGo + ` ;;
    quit) exit 0 ;;
  esac
done
`
	path := filepath.Join(t.TempDir(), "fake-engine")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestUCIEngineMissingBinary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-engine")
	eng := NewUCIEngine(path, zerolog.Nop())
	defer eng.Close()

	_, err := eng.BestMove(context.Background(), chess.NewGame().Position(), 10*time.Millisecond)

	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Equal(t, "no-such-engine", eng.Name())
}

func TestUCIEngineClosed(t *testing.T) {
	eng := NewUCIEngine("", zerolog.Nop())
	assert.Equal(t, DefaultEnginePath, eng.Path)
	require.NoError(t, eng.Close())

	_, err := eng.BestMove(context.Background(), chess.NewGame().Position(), time.Millisecond)

	assert.ErrorIs(t, err, ErrEngineDown)
}

func TestUCIEngineHonorsContext(t *testing.T) {
	eng := NewUCIEngine(filepath.Join(t.TempDir(), "no-such-engine"), zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.BestMove(ctx, chess.NewGame().Position(), time.Millisecond)

	assert.Error(t, err)
}

func TestUCIEngineReportsName(t *testing.T) {
	eng := NewUCIEngine(fakeUCI(t, "sleep 2"), zerolog.Nop())
	eng.CloseTimeout = 100 * time.Millisecond
	defer eng.Close()
	assert.Equal(t, "fake-engine", eng.Name())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	eng.BestMove(ctx, chess.NewGame().Position(), 10*time.Millisecond)

	assert.Eventually(t, func() bool { return eng.Name() == "Hangfish" }, time.Second, 10*time.Millisecond)
}

func TestUCIEngineCloseDoesNotWaitForSearch(t *testing.T) {
	eng := NewUCIEngine(fakeUCI(t, "sleep 5"), zerolog.Nop())
	eng.CloseTimeout = 100 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	_, err := eng.BestMove(ctx, chess.NewGame().Position(), 10*time.Millisecond)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	closed := make(chan struct{})
	go func() {
		eng.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked behind the running search")
	}

	ctx2, cancel2 := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel2()
	_, err = eng.BestMove(ctx2, chess.NewGame().Position(), time.Millisecond)
	assert.Error(t, err)
}
