package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type ServerConfig struct {
	URL            string `toml:"url"`
	RequestTimeout int    `toml:"request_timeout_seconds"`
}

type UserConfig struct {
	Server ServerConfig `toml:"server"`
}

type Config struct {
	DataDirectory  string
	ServerURL      string
	RequestTimeout time.Duration
}

var Debug = false
var DebugLog *zap.SugaredLogger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("SCRIBETUI_SERVER_URL"); url != "" {
		c.ServerURL = url
	}
	if dataDir := os.Getenv("SCRIBETUI_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("SCRIBETUI_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog sets up the file-backed debug logger when SCRIBETUI_DEBUG is
// set. DebugLog stays nil otherwise; callers must nil-check before logging.
func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600 - debug output may contain request metadata
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(f),
		zap.DebugLevel,
	)

	DebugLog = zap.New(core).Sugar()
	DebugLog.Infof("=== Debug logging started (SCRIBETUI_DEBUG=%s) ===", os.Getenv("SCRIBETUI_DEBUG"))
	DebugLog.Infof("Log path: %s", logPath)
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory:  "~/.local/share/scribetui",
		ServerURL:      "http://localhost:8080",
		RequestTimeout: 30 * time.Second,
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	cfg.DataDirectory = systemCfg.DataDirectory

	// The data-dir override must win before the user config is located,
	// or config.toml and debug.log would land in different directories
	if dataDir := os.Getenv("SCRIBETUI_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}

	dataDir := cfg.DataDir()
	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	cfg.ServerURL = userCfg.Server.URL
	if userCfg.Server.RequestTimeout > 0 {
		cfg.RequestTimeout = time.Duration(userCfg.Server.RequestTimeout) * time.Second
	}

	cfg.applyEnvOverrides()

	if err := os.MkdirAll(cfg.DataDir(), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}
