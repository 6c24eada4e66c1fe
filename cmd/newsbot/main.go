package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/aersekk/News-bot/internal/app"
	"github.com/aersekk/News-bot/internal/config"
	"github.com/aersekk/News-bot/internal/logger"
	"github.com/aersekk/News-bot/internal/metrics"
)

func main() {
	// Best-effort .env load for local runs; deployed environments set real vars.
	_ = godotenv.Load()

	logger.Init(os.Getenv("DEBUG") == "true")

	once := flag.Bool("once", false, "run a single curation pass and exit (for external cron)")
	flag.Parse()

	if *once {
		res := runOnce(context.Background())
		fmt.Println(res.Status)
		if res.Code != http.StatusOK {
			os.Exit(1)
		}
		return
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/api/cron", cronHandler)
	http.HandleFunc("/", cronHandler)
	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// runOnce reads configuration fresh from the environment and executes one
// pipeline pass. Missing required variables end the run before any network
// call is made.
func runOnce(ctx context.Context) app.Result {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		metrics.Global.SetError(err.Error())
		return app.Result{Status: err.Error(), Code: http.StatusInternalServerError}
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to initialize app", "error", err)
		metrics.Global.SetError(err.Error())
		return app.Result{Status: err.Error(), Code: http.StatusInternalServerError}
	}

	return a.Run(ctx)
}

// cronHandler is the scheduler-facing entry point: each request triggers
// one run and gets back the run's status line.
func cronHandler(w http.ResponseWriter, r *http.Request) {
	res := runOnce(r.Context())
	w.WriteHeader(res.Code)
	fmt.Fprintln(w, res.Status)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
