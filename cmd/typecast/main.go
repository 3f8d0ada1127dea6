package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/typecast/internal/config"
	"github.com/MikeSquared-Agency/typecast/internal/llm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	root := &cobra.Command{
		Use:          "typecast",
		Short:        "MBTI analysis of exported chat logs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cfg.LogLevel)
		},
	}
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	root.PersistentFlags().StringVar(&cfg.Backend, "backend", cfg.Backend, "inference backend: ollama, openai or anthropic")
	root.PersistentFlags().StringVar(&cfg.APIBaseURL, "api-base-url", cfg.APIBaseURL, "inference endpoint")
	root.PersistentFlags().StringVar(&cfg.Model, "model", cfg.Model, "model identifier")

	root.AddCommand(
		newServeCmd(&cfg),
		newSpeakersCmd(),
		newAnalyzeCmd(&cfg),
	)
	return root
}

// newCompleter builds the configured inference backend.
func newCompleter(cfg *config.Config) (llm.Completer, error) {
	switch cfg.Backend {
	case config.BackendOllama:
		c := llm.NewOllamaClient(cfg.APIBaseURL, cfg.Model, cfg.Temperature, cfg.Timeout)
		return llm.Instrument(c, cfg.Backend), nil
	case config.BackendOpenAI:
		c := llm.NewOpenAIClient(cfg.APIBaseURL, cfg.Model, cfg.Temperature, cfg.Timeout)
		return llm.Instrument(c, cfg.Backend), nil
	case config.BackendAnthropic:
		c := llm.NewAnthropicClient(cfg.APIBaseURL, cfg.Model, cfg.Temperature, cfg.Timeout)
		return llm.Instrument(c, cfg.Backend), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
