/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for the HR support server
 *
 * Copyright (c) 2024-2026, Botivate, Inc. <support@botivate.in>
 *
 * IDENTIFICATION
 *    HR-Support/cmd/hr-server/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/teamai-botivate/HR-Support/internal/agent"
	"github.com/teamai-botivate/HR-Support/internal/api"
	"github.com/teamai-botivate/HR-Support/internal/approvals"
	"github.com/teamai-botivate/HR-Support/internal/auth"
	"github.com/teamai-botivate/HR-Support/internal/classify"
	"github.com/teamai-botivate/HR-Support/internal/config"
	"github.com/teamai-botivate/HR-Support/internal/db"
	"github.com/teamai-botivate/HR-Support/internal/jobs"
	"github.com/teamai-botivate/HR-Support/internal/metrics"
	"github.com/teamai-botivate/HR-Support/internal/notifications"
	"github.com/teamai-botivate/HR-Support/internal/records"
)

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		showVersion      = flag.Bool("version", false, "Show version information")
		showVersionShort = flag.Bool("v", false, "Show version information (short)")
		configPath       = flag.String("c", "", "Path to configuration file")
		configPathLong   = flag.String("config", "", "Path to configuration file")
		showHelp         = flag.Bool("help", false, "Show help message")
		showHelpShort    = flag.Bool("h", false, "Show help message (short)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "HR-Support Server - intent-routed HR assistant with approval workflows\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    Start server with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -c config.yaml     Start server with custom config file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version          Show version information\n", os.Args[0])
	}
	flag.Parse()

	if *showVersion || *showVersionShort {
		fmt.Printf("hr-server version %s\n", version)
		fmt.Printf("Build date: %s\n", buildDate)
		fmt.Printf("Git commit: %s\n", gitCommit)
		os.Exit(0)
	}
	if *showHelp || *showHelpShort {
		flag.Usage()
		os.Exit(0)
	}

	/* Load configuration */
	cfg := config.DefaultConfig()

	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = *configPathLong
	}
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}

	if cfgPath != "" {
		var err error
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v, using defaults\n", err)
			cfg = config.DefaultConfig()
		}
	} else {
		config.LoadFromEnv(cfg)
	}

	/* Initialize logging */
	metrics.InitLogging(cfg.Logging.Level, cfg.Logging.Format)

	/* Connect to database */
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Database)

	connMaxIdleTime := 10 * time.Minute
	if cfg.Database.ConnMaxIdleTime > 0 {
		connMaxIdleTime = cfg.Database.ConnMaxIdleTime
	}

	database, err := db.NewDB(connStr, db.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: connMaxIdleTime,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to connect to database: %v\n", err)
		fmt.Fprintf(os.Stderr, "Connection string: host=%s port=%d user=%s dbname=%s\n",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Database)
		os.Exit(1)
	}
	defer database.Close()

	/* Create schema objects */
	if err := database.Bootstrap(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Schema bootstrap failed: %v\n", err)
		os.Exit(1)
	}

	/* Initialize components */
	queries := db.NewQueries(database.DB)

	schemaMap, err := records.NewSchemaMap(cfg.Records.SchemaMap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Invalid record schema map: %v\n", err)
		os.Exit(1)
	}
	adapter := records.NewRESTAdapter(cfg.Records.GatewayURL, cfg.Records.APIKey, cfg.Records.Timeout)

	llmClient := classify.NewLLMClient(cfg.LLM)
	summarizer := approvals.NewSummarizer(llmClient)

	var deliverers []approvals.Deliverer
	email := notifications.NewEmailDeliverer(cfg.SMTP, cfg.Tenant.HREmail, adapter, *schemaMap)
	if email.IsEnabled() {
		deliverers = append(deliverers, email)
	}
	if cfg.Tenant.WebhookURL != "" {
		deliverers = append(deliverers, notifications.NewWebhookDeliverer(cfg.Tenant.WebhookURL, 0))
	}

	var mirror records.Adapter
	if cfg.Records.MirrorURL != "" {
		mirror = records.NewRESTAdapter(cfg.Records.MirrorURL, cfg.Records.APIKey, cfg.Records.Timeout)
	}

	manager := approvals.NewManager(approvals.ManagerConfig{
		Store:         queries,
		Summarizer:    summarizer,
		Deliverers:    deliverers,
		Mirror:        mirror,
		ReminderAfter: cfg.Scheduler.ReminderAfter,
		EscalateAfter: cfg.Scheduler.EscalateAfter,
	})

	runtime := agent.NewRuntime(agent.RuntimeConfig{
		Adapter:        adapter,
		Schema:         *schemaMap,
		Classifier:     llmClient,
		Completer:      llmClient,
		Approvals:      manager,
		SupportContact: cfg.Tenant.HREmail,
	})

	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.ExpirationMinutes)*time.Minute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}

	/* Initialize API */
	handlers := api.NewHandlers(database, runtime, manager, tokens, adapter, *schemaMap, cfg.Tenant.ID)

	/* Setup router */
	router := mux.NewRouter()
	router.Use(api.RequestIDMiddleware)
	router.Use(api.CORSMiddleware)
	router.Use(api.SecurityHeadersMiddleware)
	router.Use(api.LoggingMiddleware)
	router.Use(api.AuthMiddleware(tokens))

	/* API routes */
	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.HandleFunc("/auth/login", handlers.Login).Methods("POST")
	apiRouter.HandleFunc("/chat/send", handlers.HandleChat).Methods("POST")
	apiRouter.HandleFunc("/approvals", handlers.CreateApproval).Methods("POST")
	apiRouter.HandleFunc("/approvals/pending", handlers.ListPendingApprovals).Methods("GET")
	apiRouter.HandleFunc("/approvals/mine", handlers.ListMyApprovals).Methods("GET")
	apiRouter.HandleFunc("/approvals/sweep", handlers.RunSweep).Methods("POST")
	apiRouter.HandleFunc("/approvals/{id}", handlers.GetApproval).Methods("GET")
	apiRouter.HandleFunc("/approvals/{id}/decision", handlers.DecideApproval).Methods("POST")
	apiRouter.HandleFunc("/employees", handlers.CreateEmployee).Methods("POST")
	apiRouter.HandleFunc("/notifications", handlers.ListNotifications).Methods("GET")
	apiRouter.HandleFunc("/notifications/{id}/read", handlers.MarkNotificationRead).Methods("POST")

	/* Health check */
	router.HandleFunc("/health", handlers.HealthCheck).Methods("GET")

	/* Metrics endpoint (no auth required) */
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	/* Start sweep scheduler */
	scheduler := jobs.NewScheduler(manager, cfg.Scheduler.SweepInterval)
	scheduler.Start()
	defer scheduler.Stop()

	/* Start server */
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	/* Graceful shutdown */
	go func() {
		fmt.Printf("Server starting on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "FATAL: Server failed to start on %s: %v\n", addr, err)
			os.Exit(1)
		}
	}()

	/* Wait for interrupt signal */
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Server exited")
}
