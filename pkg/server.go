//go:build !windows

package pkg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path"
	"time"

	"github.com/creack/pty"
	"github.com/gliderlabs/ssh"
	"github.com/rs/zerolog"
	gossh "golang.org/x/crypto/ssh"
)

const (
	ServerIdleTimeout = 5 * time.Minute
	SshPort           = ":2222"
)

var ErrNoBinary = errors.New("ssh server: terminal binary must be specified")

// SSHServer hosts the terminal game: every SSH session with a pty gets its
// own chessterm process.
type SSHServer struct {
	ListenAddress string
	Binary        string
	// Args are passed to every spawned game before the per-session ones
	Args        []string
	HostKeyFile string
	IdleTimeout time.Duration
	Log         zerolog.Logger

	srv *ssh.Server
}

// DefaultHostKeyFile is the user's RSA key, as ssh-keygen lays it out
func DefaultHostKeyFile() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return path.Join(homeDir, ".ssh", "id_rsa")
}

func loadHostKey(file string) (gossh.Signer, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading host key: %w", err)
	}
	signer, err := gossh.ParsePrivateKey(b)
	if err != nil {
		return nil, fmt.Errorf("parsing host key %s: %w", file, err)
	}
	return signer, nil
}

// sessionArgs builds the command line for one session
func (s *SSHServer) sessionArgs(user string) []string {
	args := append([]string{}, s.Args...)
	if user != "" {
		args = append(args, "-white", user)
	}
	return args
}

func (s *SSHServer) handle(sess ssh.Session) {
	log := s.Log.With().Str("user", sess.User()).Str("remote", sess.RemoteAddr().String()).Logger()
	ptyReq, winCh, isPty := sess.Pty()
	if !isPty {
		io.WriteString(sess, "non-interactive terminals are not supported\n")
		sess.Exit(1)
		return
	}

	cmdCtx, cancelCmd := context.WithCancel(sess.Context())
	defer cancelCmd()

	cmd := exec.CommandContext(cmdCtx, s.Binary, s.sessionArgs(sess.User())...)
	cmd.Env = append(os.Environ(), fmt.Sprintf("TERM=%s", ptyReq.Term))

	f, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(ptyReq.Window.Height),
		Cols: uint16(ptyReq.Window.Width),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to start game")
		io.WriteString(sess, fmt.Sprintf("failed to initialize pseudo-terminal: %s\n", err))
		sess.Exit(1)
		return
	}
	defer f.Close()
	log.Info().Msg("session started")

	go func() {
		for win := range winCh {
			pty.Setsize(f, &pty.Winsize{Rows: uint16(win.Height), Cols: uint16(win.Width)})
		}
	}()

	go func() {
		io.Copy(f, sess)
	}()
	io.Copy(sess, f)

	if err := cmd.Wait(); err != nil {
		log.Warn().Err(err).Msg("game exited")
	}
	log.Info().Msg("session ended")
}

// Setup validates the server and loads the host key
func (s *SSHServer) Setup() error {
	if s.Binary == "" {
		return ErrNoBinary
	}
	if s.ListenAddress == "" {
		s.ListenAddress = SshPort
	}
	if s.IdleTimeout <= 0 {
		s.IdleTimeout = ServerIdleTimeout
	}

	srv := &ssh.Server{
		Addr:        s.ListenAddress,
		IdleTimeout: s.IdleTimeout,
		Handler:     s.handle,
	}
	if s.HostKeyFile != "" {
		signer, err := loadHostKey(s.HostKeyFile)
		if err != nil {
			return err
		}
		srv.AddHostKey(signer)
	}
	s.srv = srv
	return nil
}

// ListenAndServe blocks until the server stops
func (s *SSHServer) ListenAndServe() error {
	if s.srv == nil {
		if err := s.Setup(); err != nil {
			return err
		}
	}
	s.Log.Info().Str("addr", s.ListenAddress).Str("binary", s.Binary).Msg("ssh server listening")
	err := s.srv.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *SSHServer) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
