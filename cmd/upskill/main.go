package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"

	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/archive"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/assessment"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/auth"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/dashboard"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/handler"
	appI18n "github.com/George-Paul-Tony-C/Upskilling-Platform/internal/i18n"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/llm"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/llm/prompts"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/model"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/seed"
	"github.com/George-Paul-Tony-C/Upskilling-Platform/internal/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "upskill",
		Short: "Employee upskilling platform API",
	}

	serve := serveCmd()
	root.AddCommand(serve, exportCmd())

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `upskill --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":5000", "HTTP listen address")
	f.String("jwt-secret", "", "HMAC secret for session tokens (or set UPSKILL_JWT_SECRET)")
	f.Duration("token-ttl", auth.DefaultTTL, "Session token lifetime")
	f.Bool("seed", true, "Load the demo directory on startup")
	f.String("seed-password", "", "Password for seeded demo accounts (or set UPSKILL_SEED_PASSWORD)")
	f.StringP("questions", "q", "", "Path to a questions JSON file (default: embedded bank)")
	f.Int("max-questions", assessment.DefaultMaxQuestions, "Questions per assessment")
	f.Bool("shuffle", false, "Randomize eligible questions before selection")
	f.String("db", "upskill.db", "SQLite results archive path (empty disables archiving)")
	f.StringP("lang", "l", "en", "Default message language (en, ru)")
	f.StringSlice("cors-origins", []string{"http://localhost:5173"}, "Allowed CORS origins")
	f.String("llm-url", "", "OpenAI-compatible API base URL (empty disables path generation)")
	f.String("llm-key", "", "API key for LLM")
	f.String("llm-model", "llama3.2", "LLM model name")
	f.String("path-variant", string(prompts.PathBalanced), "Learning path prompt variant (focused, balanced, stretch)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export archived assessment results as JSON",
		RunE:  runExport,
	}
	f := cmd.Flags()
	f.String("db", "upskill.db", "SQLite results archive path")
	f.String("user", "", "Only export results for this user ID")
	f.StringP("output", "o", "-", "Output file path (- for stdout)")
	f.StringP("lang", "l", "en", "Summary language (en, ru)")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("UPSKILL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("upskill")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/upskill")
	v.AddConfigPath("/etc/upskill")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	users := store.NewUserStore()
	if v.GetBool("seed") {
		n, err := seed.LoadUsers(users, v.GetString("seed-password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		slog.Info("seeded demo users", "count", n)
	}

	bank, err := loadQuestions(v.GetString("questions"))
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}

	// The archive is optional; keep the interface nil when it is disabled.
	var recorder assessment.Recorder
	if dbPath := v.GetString("db"); dbPath != "" {
		arch, err := archive.New(dbPath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer arch.Close()
		count, err := arch.ResultCount()
		if err != nil {
			return fmt.Errorf("count archived results: %w", err)
		}
		slog.Info("results archive ready", "path", dbPath, "results", count)
		recorder = arch
	}

	tokens := auth.NewManager(v.GetString("jwt-secret"), v.GetDuration("token-ttl"))
	assessments := assessment.NewManager(bank, store.NewAssessmentStore(), recorder, model.AssessmentConfig{
		MaxQuestions: v.GetInt("max-questions"),
		Shuffle:      v.GetBool("shuffle"),
	})
	dashboards := dashboard.New(users, assessments, seed.Telemetry(time.Now(), users.UserCount()))

	generator, err := newGenerator(v)
	if err != nil {
		return err
	}

	h, err := handler.New(users, auth.NewService(users, tokens), assessments, dashboards, generator,
		handler.Config{BcryptCost: bcrypt.DefaultCost})
	if err != nil {
		return fmt.Errorf("create handler: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: v.GetStringSlice("cors-origins"),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Accept-Language"},
		MaxAge:         300,
	}))
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			"addr", addr,
			"lang", lang,
			"questions", bank.QuestionCount(),
			"max_questions", v.GetInt("max-questions"),
			"shuffle", v.GetBool("shuffle"),
			"path_generation", generator != nil,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newGenerator returns the LLM path generator, or nil when no endpoint is set.
func newGenerator(v *viper.Viper) (handler.PathGenerator, error) {
	url := v.GetString("llm-url")
	if url == "" {
		slog.Info("no LLM endpoint configured, path generation disabled")
		return nil, nil
	}

	variant := strings.ToLower(strings.TrimSpace(v.GetString("path-variant")))
	if !prompts.IsValidVariant(variant) {
		slog.Warn("invalid path-variant, using balanced", "variant", variant)
		variant = string(prompts.PathBalanced)
	}
	client, err := llm.New(url, v.GetString("llm-key"), v.GetString("llm-model"), variant)
	if err != nil {
		return nil, fmt.Errorf("create LLM client: %w", err)
	}
	if err := client.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("LLM health check: %w", err)
	}
	slog.Info("LLM endpoint OK", "url", url, "model", v.GetString("llm-model"), "variant", variant)
	return client, nil
}

func loadQuestions(path string) (*store.QuestionBank, error) {
	var (
		questions []model.Question
		err       error
	)
	if path == "" {
		questions, err = seed.Questions()
	} else {
		var data []byte
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		questions, err = seed.ParseQuestions(data)
	}
	if err != nil {
		return nil, err
	}

	bank, err := store.NewQuestionBank(questions)
	if err != nil {
		return nil, err
	}
	slog.Info("loaded question bank", "source", orDefault(path, "embedded"), "count", bank.QuestionCount())
	return bank, nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func runExport(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	if err := appI18n.Init(v.GetString("lang")); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	dbPath := v.GetString("db")
	if dbPath == "" {
		return errors.New("--db is required for export")
	}
	arch, err := archive.New(dbPath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer arch.Close()

	export, err := arch.Export(v.GetString("user"))
	if err != nil {
		return fmt.Errorf("export results: %w", err)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}

	outPath := v.GetString("output")
	var w io.Writer
	if outPath == "" || outPath == "-" {
		w = os.Stdout
	} else {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	// Ensure trailing newline.
	_, _ = fmt.Fprintln(w)

	ctx := appI18n.WithLocalizer(context.Background(), appI18n.NewLocalizer(v.GetString("lang")))
	fmt.Fprintln(os.Stderr, appI18n.Tp(ctx, "AssessmentsArchived", export.Count))
	return nil
}
