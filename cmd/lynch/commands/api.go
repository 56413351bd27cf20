package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ats/lynchboard/internal/api"
	"github.com/ats/lynchboard/internal/api/handlers"
	"github.com/ats/lynchboard/internal/scheduler"
	"github.com/ats/lynchboard/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

This command:
- Serves the HTML dashboard built from the latest persisted report
- Exposes report JSON endpoints
- Accepts manual analysis run triggers

Endpoints:
  GET  /health                - Health check
  GET  /                      - Dashboard HTML
  GET  /api/reports/latest    - Latest report
  GET  /api/reports/history   - Run history
  GET  /api/reports/{date}    - Report for one day
  POST /api/runs              - Trigger an analysis run
  GET  /api/runs/stats        - Run statistics

Example:
  go run ./cmd/lynch api
  go run ./cmd/lynch api --port 8087`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Lynchboard API Server ===")

	ctx := context.Background()

	rt, err := initRuntime(ctx)
	if err != nil {
		return err
	}
	defer rt.close()

	// Override port if flag is set
	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	log := rt.log
	log.WithFields(map[string]interface{}{
		"port": rt.cfg.Port,
		"env":  rt.cfg.Env,
	}).Info("Initializing API server")

	// Scheduler backs the manual run trigger. The cron loop is not
	// started here; the scheduler command owns scheduled execution.
	sched := scheduler.New(log)
	job := jobs.NewAnalysisJob(rt.runner, rt.cfg.ScheduleCron, log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("register analysis job: %w", err)
	}

	// Create handlers and router
	reportHandler := handlers.NewReportHandler(rt.repo, log)
	runHandler := handlers.NewRunHandler(sched, job.Name(), log)
	router := api.NewRouter(reportHandler, runHandler, log)

	// Create server
	server := api.New(rt.cfg, log, router)

	// Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\nServer running on http://localhost:%s\n", rt.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /")
	fmt.Println("  GET  /api/reports/latest")
	fmt.Println("  GET  /api/reports/history")
	fmt.Println("  GET  /api/reports/{date}")
	fmt.Println("  POST /api/runs")
	fmt.Println("  GET  /api/runs/stats")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
