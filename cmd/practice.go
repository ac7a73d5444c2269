package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inferahq/infera/internal/analytics"
	"github.com/inferahq/infera/internal/app"
	"github.com/inferahq/infera/internal/engine"
	"github.com/inferahq/infera/internal/gateway"
	"github.com/inferahq/infera/internal/history"
	"github.com/inferahq/infera/internal/llm"
	"github.com/inferahq/infera/internal/logging"
	"github.com/inferahq/infera/internal/practice"
	"github.com/inferahq/infera/internal/qgen"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPractice(cmd)
	},
}

func init() {
	practiceCmd.Flags().Bool("demo", false, "Seed the session with a month of fabricated history")
	practiceCmd.Flags().String("source", "", "Question source: remote, ai or mock (overrides INFERA_SOURCE)")
}

func runPractice(cmd *cobra.Command) error {
	debug, _ := cmd.Flags().GetBool("debug")
	log, err := logging.New(debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer log.Sync()

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	journal, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer journal.Close()

	source, signaler, err := buildSource(cmd, log)
	if err != nil {
		return err
	}

	store := practice.NewStore()
	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		for _, ev := range analytics.DemoEvents(time.Now(), 30, rng) {
			store.Dispatch(practice.AddPerformanceEvent{Event: ev})
		}
	}

	eng := engine.New(engine.Options{
		SessionID: uuid.NewString(),
		Store:     store,
		Source:    source,
		Signaler:  signaler,
		Journal:   journal,
		Logger:    log,
	})
	log.Info("session starting", zap.String("session_id", eng.SessionID()))

	return app.Run(app.Options{Engine: eng})
}

// buildSource picks the question source. The flag wins, then INFERA_SOURCE,
// then whatever is configured: the remote service if INFERA_API_URL is set,
// an LLM if an API key is discoverable, the offline deck otherwise.
func buildSource(cmd *cobra.Command, log *zap.Logger) (gateway.Source, gateway.CompletionSignaler, error) {
	mode, _ := cmd.Flags().GetString("source")
	if mode == "" {
		mode = os.Getenv("INFERA_SOURCE")
	}
	if mode == "" {
		switch {
		case os.Getenv("INFERA_API_URL") != "":
			mode = "remote"
		default:
			if _, ok := llm.DiscoverConfig(); ok {
				mode = "ai"
			} else {
				mode = "mock"
			}
		}
	}

	switch mode {
	case "remote":
		cfg, err := gateway.ConfigFromEnv()
		if err != nil {
			return nil, nil, err
		}
		client := gateway.NewClient(cfg)
		log.Info("using remote question service", zap.String("base_url", cfg.BaseURL))
		return client, client, nil

	case "ai":
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			if discovered, ok := llm.DiscoverConfig(); ok {
				cfg = discovered
			} else {
				return nil, nil, err
			}
		}
		provider, err := llm.NewProvider(cmd.Context(), cfg, log)
		if err != nil {
			return nil, nil, fmt.Errorf("init LLM provider: %w", err)
		}
		log.Info("using AI question source", zap.String("model", provider.ModelID()))
		return qgen.New(provider, qgen.DefaultConfig()), nil, nil

	case "mock":
		log.Info("using offline question deck")
		return gateway.NewMockSource(gateway.DemoDeck()), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown question source %q", mode)
	}
}
