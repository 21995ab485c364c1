package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/tdd-builder/internal/server"
	"github.com/rezonia/tdd-builder/internal/service"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for building and checking TDDs.

The API provides endpoints for:
  - POST /api/v1/tdd       - Build a TDD from a UBL document (?type=S&validate=true&format=json)
  - POST /api/v1/validate  - Conformance check of a TDD
  - POST /api/v1/uuid5     - Derive a version 5 UUID
  - POST /api/v1/info      - Detect the document kind
  - GET  /health           - Health check

Flags override the server section of the configuration.

Examples:
  # Start server on default port
  tdd-builder serve

  # Start on custom port in debug mode
  tdd-builder serve --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", "", "Server listen address (default from config)")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 0, "HTTP read timeout (default from config)")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 0, "HTTP write timeout (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &server.Config{
		Address:      cfg.Server.Address,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Debug:        cfg.Server.Debug,
	}
	if serverAddr != "" {
		config.Address = serverAddr
	}
	if cmd.Flags().Changed("debug") {
		config.Debug = serverDebug
	}
	if readTimeout > 0 {
		config.ReadTimeout = readTimeout
	}
	if writeTimeout > 0 {
		config.WriteTimeout = writeTimeout
	}

	srv := server.NewServer(config, service.NewConverter(cfg))

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		fmt.Println("\nShutting down server...")
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", config.Address)
	if cfg.Reporter.ReceivingParty == "" {
		fmt.Println("Warning: no receiving party configured (TDD_REPORTER_RECEIVING_PARTY), builds will be rejected")
	}

	return srv.Run()
}
