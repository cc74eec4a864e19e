package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	Workers         int
	FXRatesFile     string
	LogLevel        string
	ShutdownTimeout time.Duration
}

func ProcessEnvironmentVariables() (*Config, error) {
	// Defaults run a single-worker server on the built-in rate table.
	env := Config{
		Port:            "9446",
		Workers:         1,
		FXRatesFile:     "",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
	}

	envPort := os.Getenv("LEDGER_PORT")
	envWorkers := os.Getenv("LEDGER_WORKERS")
	envFXRatesFile := os.Getenv("LEDGER_FX_RATES_FILE")
	envLogLevel := os.Getenv("LOG_LEVEL")
	envShutdownTimeout := os.Getenv("LEDGER_SHUTDOWN_TIMEOUT")

	if len(envPort) != 0 {
		if _, err := strconv.ParseUint(envPort, 10, 16); err != nil {
			return nil, fmt.Errorf("LEDGER_PORT %q: %w", envPort, err)
		}
		env.Port = envPort
	}

	if len(envWorkers) != 0 {
		workers, err := strconv.Atoi(envWorkers)
		if err != nil {
			return nil, fmt.Errorf("LEDGER_WORKERS %q: %w", envWorkers, err)
		}
		if workers < 1 {
			return nil, fmt.Errorf("LEDGER_WORKERS %q: must be at least 1", envWorkers)
		}
		env.Workers = workers
	}

	if len(envFXRatesFile) != 0 {
		env.FXRatesFile = envFXRatesFile
	}

	if len(envLogLevel) != 0 {
		env.LogLevel = envLogLevel
	}

	if len(envShutdownTimeout) != 0 {
		timeout, err := time.ParseDuration(envShutdownTimeout)
		if err != nil {
			return nil, fmt.Errorf("LEDGER_SHUTDOWN_TIMEOUT %q: %w", envShutdownTimeout, err)
		}
		env.ShutdownTimeout = timeout
	}

	return &env, nil
}
