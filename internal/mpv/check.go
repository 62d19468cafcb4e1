package mpv

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// Version runs the mpv binary with --version and returns its first line
func Version(ctx context.Context, binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("mpv binary %q not found: %w", binary, err)
	}

	out, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to run %s --version: %w", path, err)
	}

	line, _, _ := bytes.Cut(out, []byte("\n"))
	version := strings.TrimSpace(string(line))
	if !strings.HasPrefix(version, "mpv") {
		return "", fmt.Errorf("unexpected version output from %s: %q", path, version)
	}
	return version, nil
}

// Check logs the mpv version, or warns that no video sink can be built
func (f *Factory) Check(ctx context.Context) error {
	version, err := Version(ctx, f.cfg.GetMPVBinary())
	if err != nil {
		f.logger.Warn("mpv unavailable, video output will be degraded", zap.Error(err))
		return err
	}
	f.logger.Info("mpv detected", zap.String("version", version))
	return nil
}
