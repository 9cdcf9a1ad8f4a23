//go:build !windows

package pkg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSSHServerSetup(t *testing.T) {
	s := &SSHServer{}
	assert.ErrorIs(t, s.Setup(), ErrNoBinary)

	s = &SSHServer{Binary: "chessterm"}
	require.NoError(t, s.Setup())
	assert.Equal(t, SshPort, s.ListenAddress)
	assert.Equal(t, ServerIdleTimeout, s.IdleTimeout)

	s = &SSHServer{Binary: "chessterm", HostKeyFile: filepath.Join(t.TempDir(), "id_rsa")}
	assert.Error(t, s.Setup())
}

func TestSSHServerSessionArgs(t *testing.T) {
	s := &SSHServer{Binary: "chessterm", Args: []string{"-engine", "stockfish"}}

	assert.Equal(t, []string{"-engine", "stockfish", "-white", "alice"}, s.sessionArgs("alice"))
	assert.Equal(t, []string{"-engine", "stockfish"}, s.sessionArgs(""))
	// The shared args are never modified
	assert.Len(t, s.Args, 2)
}
