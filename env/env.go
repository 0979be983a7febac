// Package env loads process configuration from the environment, the
// ambient config-loading concern shared by every rtctrl entry point.
package env

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Environment is the configuration a synthesis run reads from the
// process environment (and an optional .env file) before any flags
// override it.
type Environment struct {
	LogLevel       string
	RegionBound    int
	Workers        int
	OutputDir      string
	IncrementalLog bool
}

// Load reads the environment, falling back to a .env file in the working
// directory if present. Missing optional variables fall back to sane
// defaults instead of failing the process.
func Load(logger *zap.Logger) *Environment {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", zap.Error(err))
	}

	logLevel := getOr("RTCTRL_LOG_LEVEL", "info")
	outputDir := getOr("RTCTRL_OUTPUT_DIR", ".")

	regionBound, err := strconv.Atoi(getOr("RTCTRL_REGION_BOUND", "4"))
	if err != nil {
		logger.Fatal("failed to parse RTCTRL_REGION_BOUND", zap.Error(err))
	}
	workers, err := strconv.Atoi(getOr("RTCTRL_WORKERS", "0"))
	if err != nil {
		logger.Fatal("failed to parse RTCTRL_WORKERS", zap.Error(err))
	}
	incremental, err := strconv.ParseBool(getOr("RTCTRL_INCREMENTAL_LABEL", "true"))
	if err != nil {
		logger.Fatal("failed to parse RTCTRL_INCREMENTAL_LABEL", zap.Error(err))
	}

	return &Environment{
		LogLevel:       logLevel,
		RegionBound:    regionBound,
		Workers:        workers,
		OutputDir:      outputDir,
		IncrementalLog: incremental,
	}
}

// NewLogger builds the zap logger every rtctrl command shares, production
// config for anything other than RTCTRL_LOG_LEVEL=debug.
func NewLogger() (*zap.Logger, error) {
	level := getOr("RTCTRL_LOG_LEVEL", "info")
	if level == "debug" {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		log.Printf("unrecognized RTCTRL_LOG_LEVEL %q, defaulting to info", level)
	}
	return cfg.Build()
}

func getOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
