package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	envPrefix = "MP4PLAYER"

	keyMPVBinary    = "mpv_binary"
	keySocketDir    = "socket_dir"
	keySettleDelay  = "settle_delay"
	keyWindowWidth  = "window_width"
	keyWindowHeight = "window_height"
	keyDebug        = "debug"

	defaultMPVBinary    = "mpv"
	defaultSettleDelay  = 300 * time.Millisecond
	defaultWindowWidth  = 960
	defaultWindowHeight = 540
)

// AppConfig holds application configuration
type AppConfig struct {
	logger       *zap.Logger
	mpvBinary    string
	socketDir    string
	settleDelay  time.Duration
	windowWidth  int
	windowHeight int
}

// NewAppConfig creates a new application configuration instance
func NewAppConfig(logger *zap.Logger) *AppConfig {
	return newAppConfig(logger, newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyMPVBinary, defaultMPVBinary)
	v.SetDefault(keySocketDir, os.TempDir())
	v.SetDefault(keySettleDelay, defaultSettleDelay)
	v.SetDefault(keyWindowWidth, defaultWindowWidth)
	v.SetDefault(keyWindowHeight, defaultWindowHeight)
	v.SetDefault(keyDebug, false)
	return v
}

func newAppConfig(logger *zap.Logger, v *viper.Viper) *AppConfig {
	socketDir := expandPath(v.GetString(keySocketDir))

	settle := v.GetDuration(keySettleDelay)
	if settle < 0 {
		logger.Warn("Negative settle delay, using default", zap.Duration("value", settle))
		settle = defaultSettleDelay
	}

	width, height := v.GetInt(keyWindowWidth), v.GetInt(keyWindowHeight)
	if width <= 0 || height <= 0 {
		logger.Warn("Invalid window size, using default",
			zap.Int("width", width),
			zap.Int("height", height))
		width, height = defaultWindowWidth, defaultWindowHeight
	}

	cfg := &AppConfig{
		logger:       logger,
		mpvBinary:    v.GetString(keyMPVBinary),
		socketDir:    socketDir,
		settleDelay:  settle,
		windowWidth:  width,
		windowHeight: height,
	}

	logger.Info("Configuration loaded",
		zap.String("mpvBinary", cfg.mpvBinary),
		zap.String("socketDir", cfg.socketDir),
		zap.Duration("settleDelay", cfg.settleDelay),
		zap.Int("windowWidth", cfg.windowWidth),
		zap.Int("windowHeight", cfg.windowHeight))

	return cfg
}

// expandPath expands environment variables and a leading ~
func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	return p
}

// GetMPVBinary returns the mpv executable name or path
func (c *AppConfig) GetMPVBinary() string {
	return c.mpvBinary
}

// GetSocketDir returns the directory for mpv IPC sockets
func (c *AppConfig) GetSocketDir() string {
	return c.socketDir
}

// GetSettleDelay returns the delay before a recreated surface is shown
func (c *AppConfig) GetSettleDelay() time.Duration {
	return c.settleDelay
}

// GetWindowSize returns the windowed video area size
func (c *AppConfig) GetWindowSize() (int, int) {
	return c.windowWidth, c.windowHeight
}

// DebugEnabled reads the debug switch before the logger exists
func DebugEnabled() bool {
	return newViper().GetBool(keyDebug)
}
