package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configBaseName = "config"
	configFileName = configBaseName + ".toml"
	appDirName     = "tps"

	homesKey       = "project_homes"
	projectsKey    = "projects"
	skipCurrentKey = "skip_current"
	sortModeKey    = "sort_mode"

	cachePathKey     = "cache.path"
	cacheCapacityKey = "cache.capacity"

	sortFlagName        = "sort"
	skipCurrentFlagName = "skip-current"
	verboseFlagName     = "verbose"

	defaultSortMode      = "alphabetical"
	defaultCacheCapacity = 64

	envPrefix = "TPS"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configLoadErr holds a fatal configuration parse failure; commands
// surface it before doing any work.
var configLoadErr error

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("toml")
	viper.AddConfigPath(configDir())
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(homesKey, []string{})
	viper.SetDefault(projectsKey, []string{})
	viper.SetDefault(skipCurrentKey, false)
	viper.SetDefault(sortModeKey, defaultSortMode)
	viper.SetDefault(cachePathKey, "")
	viper.SetDefault(cacheCapacityKey, defaultCacheCapacity)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, "")
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		configLoadErr = fmt.Errorf("invalid configuration in %s: %w", configFilePath(), err)
	}
}

// configDir resolves the per-user configuration directory.
func configDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	return filepath.Join(dir, appDirName)
}

func configFilePath() string {
	return filepath.Join(configDir(), configFileName)
}

// defaultCachePath resolves the default access-store location under the
// per-user cache directory.
func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", ".tps_access_cache.toml")
	}

	return filepath.Join(dir, appDirName, "access_cache.toml")
}

// defaultLogPath keeps diagnostics next to the access store.
func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".", ".tps.log")
	}

	return filepath.Join(dir, appDirName, "tps.log")
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger. The log is
// diagnostics only; interactive output never goes through it.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogPath()
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
