package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/echolearn/arena/internal/simulate"
)

// Default configuration constants.
const (
	defaultNumUsers          = 200
	defaultWorkerMultiplier  = 2
	defaultTimeout           = 30 * time.Second
	defaultSimulationTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numUsers = flag.Int("users", defaultNumUsers, "Number of simulated users")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkerMultiplier, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Log file for simulation output (default: simulation_TIMESTAMP.log)")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		simulate.ShowHelp()
		return
	}

	if err := simulate.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSimulationTimeout)
	defer cancel()

	config := &simulate.Config{
		BaseURL:  *baseURL,
		NumUsers: *numUsers,
		Workers:  *workers,
		Timeout:  *timeout,
		LogFile:  *logFile,
		Verbose:  *verbose,
	}

	if err := simulate.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Simulation failed: " + err.Error() + "\n")
		return
	}
}
