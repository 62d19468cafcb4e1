package mpv

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/Taro3/linux-mp4-test/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const quitTimeout = 2 * time.Second

// Process is one mpv instance and its IPC connection
type Process struct {
	logger     *zap.Logger
	cmd        *exec.Cmd
	socketPath string
	exited     chan struct{}
	client     *Client
}

// launchArgs builds the mpv command line. The window stays hidden until a
// surface is attached and shown.
func launchArgs(cfg domain.Config, socketPath string) []string {
	width, height := cfg.GetWindowSize()
	return []string{
		"--idle=yes",
		"--no-terminal",
		"--force-window=no",
		"--window-minimized=yes",
		"--title=mp4player",
		fmt.Sprintf("--geometry=%dx%d", width, height),
		"--input-ipc-server=" + socketPath,
	}
}

// Launch starts mpv with a private IPC socket and connects to it
func Launch(
	ctx context.Context,
	logger *zap.Logger,
	cfg domain.Config,
	dispatcher domain.Dispatcher,
	handler func(Event),
) (*Process, error) {
	socketPath := filepath.Join(cfg.GetSocketDir(), "mp4player-"+uuid.NewString()+".sock")
	logger = logger.With(zap.String("socket", socketPath))

	cmd := exec.Command(cfg.GetMPVBinary(), launchArgs(cfg, socketPath)...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start mpv: %w", err)
	}

	p := &Process{
		logger:     logger,
		cmd:        cmd,
		socketPath: socketPath,
		exited:     make(chan struct{}),
	}
	go func() {
		_ = cmd.Wait()
		close(p.exited)
	}()

	dialCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-p.exited:
			cancel()
		case <-dialCtx.Done():
		}
	}()

	client, err := Dial(dialCtx, logger, socketPath, dispatcher, handler)
	if err != nil {
		return nil, multierr.Append(
			fmt.Errorf("mpv socket not ready: %w", err),
			p.kill())
	}
	p.client = client

	logger.Info("mpv started", zap.Int("pid", cmd.Process.Pid))
	return p, nil
}

// Client returns the IPC connection
func (p *Process) Client() *Client {
	return p.client
}

// Close asks mpv to quit, killing it if it does not exit in time
func (p *Process) Close() error {
	var err error
	if p.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), quitTimeout)
		if _, qerr := p.client.Command(ctx, "quit"); qerr != nil && !errors.Is(qerr, ErrClosed) {
			p.logger.Debug("mpv quit command failed", zap.Error(qerr))
		}
		cancel()
		err = multierr.Append(err, p.client.Close())
	}

	if p.cmd == nil {
		return err
	}

	select {
	case <-p.exited:
	case <-time.After(quitTimeout):
		p.logger.Warn("mpv did not quit, killing")
		err = multierr.Append(err, p.kill())
	}

	if rerr := os.Remove(p.socketPath); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
		err = multierr.Append(err, rerr)
	}
	p.logger.Debug("mpv stopped")
	return err
}

func (p *Process) kill() error {
	select {
	case <-p.exited:
		return nil
	default:
	}
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return fmt.Errorf("failed to kill mpv: %w", err)
	}
	<-p.exited
	return nil
}
