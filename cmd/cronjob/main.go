package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	_ "github.com/lib/pq"

	"rentmatch-backend/internal/config"
	"rentmatch-backend/internal/jobs"
	"rentmatch-backend/internal/logger"
	"rentmatch-backend/internal/repository/postgres"
	"rentmatch-backend/internal/scheduler"
	"rentmatch-backend/internal/service"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "cronjob",
		Short: "RentMatch scheduled-jobs runner",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.dev.yaml", "Path to configuration file")

	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the cron scheduler until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cleanup, err := buildJobRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			cronScheduler := scheduler.NewScheduler(runner)
			cronScheduler.Start()
			logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan

			logger.Info("Shutting down cronjob scheduler...")
			cronScheduler.Stop()
			return nil
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [job]",
		Short: "Run a single job once and exit",
		Long: `Run a single job once and exit. Available jobs:
  activate-due-bookings
  complete-elapsed-bookings
  mark-overdue-rent-payments
  send-rent-due-reminders
  all-nightly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, cleanup, err := buildJobRunner()
			if err != nil {
				return err
			}
			defer cleanup()

			jobName := args[0]
			logger.Info("Running job once", "job", jobName)
			switch jobName {
			case "activate-due-bookings":
				runner.ActivateDueBookings()
			case "complete-elapsed-bookings":
				runner.CompleteElapsedBookings()
			case "mark-overdue-rent-payments":
				runner.MarkOverdueRentPayments()
			case "send-rent-due-reminders":
				runner.SendRentDueReminders()
			case "all-nightly":
				runner.RunAllNightlyJobs()
			default:
				return fmt.Errorf("unknown job name: %s", jobName)
			}
			logger.Info("Job execution completed", "job", jobName)
			return nil
		},
	}

	rootCmd.AddCommand(scheduleCmd, runCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func buildJobRunner() (*jobs.JobRunner, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentMatch Cronjob Runner...", "log_level", cfg.Log.Level)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Info("Database connection established")

	store := postgres.NewStore(db)
	emailSvc := service.NewEmailService(cfg.Email)
	runner := jobs.NewJobRunner(db, store, emailSvc, cfg)

	return runner, func() { db.Close() }, nil
}
