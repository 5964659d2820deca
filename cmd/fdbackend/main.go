package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/virattt/openbb-financialdatasets-backend/internal/api"
	"github.com/virattt/openbb-financialdatasets-backend/internal/config"
	"github.com/virattt/openbb-financialdatasets-backend/internal/dashboard"
	"github.com/virattt/openbb-financialdatasets-backend/internal/store"
	"github.com/virattt/openbb-financialdatasets-backend/internal/upstream"
	"github.com/virattt/openbb-financialdatasets-backend/internal/widget"
)

var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]

	// Handle -nginx / --nginx anywhere
	if cmd == "-nginx" || cmd == "--nginx" {
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		cmdNginx()
		return
	}

	switch cmd {
	case "start":
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		cmdStart()
	case "stop":
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		cmdStop()
	case "status":
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		cmdStatus()
	case "run":
		// Foreground mode (also used internally by daemon child)
		os.Args = append([]string{os.Args[0]}, os.Args[2:]...)
		cmdRun()
	case "version":
		fmt.Printf("fdbackend %s\n", version)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	exe := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, `fdbackend — Financial Datasets backend for the OpenBB Workspace (%s)

Usage:
  %s <command> [flags]

Commands:
  start          Start daemon (background)
  stop           Stop daemon
  status         Show daemon status
  run            Run in foreground
  version        Print version

Flags:
  -nginx         Print sample nginx reverse proxy configuration
  -config PATH   Config file path (default: config.yaml)
  -listen ADDR   Listen address (default: 127.0.0.1:7780)
  -db PATH       SQLite database path
  -base-path P   Base URL path for reverse proxy
  -upstream URL  Financial Datasets API base URL
  -pid-file P    PID file path
  -log-file P    Log file path

The Financial Datasets API key comes from the FINANCIAL_DATASETS_API_KEY
environment variable, the api_key config entry, or per-request headers.

Examples:
  %s run
  %s start -config /etc/fdbackend/config.yaml
  %s stop
  %s -nginx
`, version, exe, exe, exe, exe, exe)
}

// ---------------------------------------------------------------------------
// -nginx: print sample nginx config
// ---------------------------------------------------------------------------

func cmdNginx() {
	cfg := config.Load()

	bp := cfg.BasePath
	if bp == "/" {
		bp = "/fd"
		fmt.Println("# base_path is \"/\" — using \"/fd\" as example.")
		fmt.Println("# Set base_path in config.yaml to match your desired location.")
		fmt.Println()
	}

	// Ensure trailing slash for nginx location
	loc := bp + "/"

	fmt.Printf(`# --------------------------------------------------
# nginx reverse proxy configuration for fdbackend
# --------------------------------------------------
# Add this inside an http { server { ... } } block.

location %s {
    proxy_pass         http://%s/;
    proxy_http_version 1.1;

    # WebSocket support (live snapshot grids)
    proxy_set_header   Upgrade $http_upgrade;
    proxy_set_header   Connection "upgrade";

    # Forward client info
    proxy_set_header   Host              $host;
    proxy_set_header   X-Real-IP         $remote_addr;
    proxy_set_header   X-Forwarded-For   $proxy_add_x_forwarded_for;
    proxy_set_header   X-Forwarded-Proto $scheme;

    # Disable buffering for real-time WebSocket
    proxy_buffering    off;
    proxy_read_timeout 86400s;
}
`, loc, cfg.Listen)

	fmt.Println("# config.yaml should have:")
	fmt.Printf("#   base_path: \"%s\"\n", bp)
}

// ---------------------------------------------------------------------------
// run: foreground server (also used by daemon child)
// ---------------------------------------------------------------------------

func cmdRun() {
	cfg := config.Load()

	// Open usage store
	db, err := store.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Build widget registry and validate the bundled dashboard against it
	registry := widget.DefaultCatalog()
	dash, err := dashboard.Load(registry)
	if err != nil {
		log.Fatalf("invalid dashboard configuration: %v", err)
	}
	log.Printf("[startup] %d widgets, app %q with %d tabs", registry.Count(), dash.Name, len(dash.Tabs))

	if cfg.APIKey == "" {
		log.Printf("[startup] no %s key configured; requests must carry a key header", "FINANCIAL_DATASETS_API_KEY")
	}

	client := upstream.New(cfg.UpstreamURL, time.Duration(cfg.HTTPTimeoutSec)*time.Second)
	hub := api.NewHub(client, cfg.APIKey, time.Duration(cfg.WSRefreshSec)*time.Second)

	router := api.NewRouter(api.Options{
		Upstream:    client,
		EnvKey:      cfg.APIKey,
		Registry:    registry,
		Dashboard:   dash,
		Store:       db,
		Hub:         hub,
		BasePath:    cfg.BasePath,
		CORSOrigins: cfg.CORSOrigins,
	})

	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	// Start request-log retention purge
	go runRetentionPurge(ctx, db, cfg.RetentionHours)

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: router,
	}

	go func() {
		log.Printf("fdbackend %s listening on http://%s (base_path: %s, upstream: %s)",
			version, cfg.Listen, cfg.BasePath, cfg.UpstreamURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for signal
	<-ctx.Done()
	log.Println("shutting down...")

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)

	// Clean up PID file
	os.Remove(cfg.PidFile)
	log.Println("goodbye")
}

func runRetentionPurge(ctx context.Context, db *store.Store, hours int) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := db.PurgeOlderThan(hours)
			if err != nil {
				log.Printf("[purge] error: %v", err)
			} else if n > 0 {
				log.Printf("[purge] removed %d request log rows", n)
			}
		}
	}
}

// ---------------------------------------------------------------------------
// PID file helpers
// ---------------------------------------------------------------------------

func writePidFile(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0644)
}

func readPidFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid PID in %s", path)
	}
	return pid, nil
}
