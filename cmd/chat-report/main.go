package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/theimaginaryfoundation/chat-o-meter/analysis"
	"github.com/theimaginaryfoundation/chat-o-meter/analysis/fileutils"
	"github.com/theimaginaryfoundation/chat-o-meter/analysis/polarity"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	log := newLogger(cfg.Verbose)

	// .env is optional; a missing file is the normal case outside dev.
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scorer, err := buildScorer(cfg)
	if err != nil {
		log.Error().Err(err).Msg("scorer setup failed")
		os.Exit(2)
	}

	text, err := analysis.LoadTranscript(cfg.InPath)
	if err != nil {
		if errors.Is(err, analysis.ErrNoTranscript) {
			log.Error().Str("in", cfg.InPath).Msg("no transcript text found in input")
		} else {
			log.Error().Err(err).Msg("load transcript")
		}
		os.Exit(1)
	}

	entries := analysis.ScanTranscript(text)
	log.Debug().Int("entries", len(entries)).Msg("scanned transcript")

	msgs := analysis.NormalizeEntries(entries)
	filtered := analysis.FilterSystemMessages(msgs)
	log.Info().
		Int("raw_entries", len(entries)).
		Int("normalized", len(msgs)).
		Int("participant_messages", len(filtered)).
		Msg("transcript parsed")

	freqCfg := analysis.FrequencyConfig{}
	if cfg.StopwordsPath != "" {
		words, err := analysis.LoadStopwords(cfg.StopwordsPath)
		if err != nil {
			log.Error().Err(err).Msg("load stopwords")
			os.Exit(1)
		}
		freqCfg.Stopwords = words
	}

	opts := analysis.ReportOptions{
		Frequency:     freqCfg,
		SkipLanguages: cfg.SkipLanguages,
	}
	if cfg.Scorer == "openai" {
		opts.ScoreConcurrency = cfg.Concurrency
	}

	report, err := analysis.BuildReport(ctx, filtered, cfg.User, scorer, opts)
	if err != nil {
		log.Error().Err(err).Msg("build report")
		os.Exit(1)
	}

	if err := fileutils.WriteJSONFileAtomic(cfg.OutPath, report, cfg.Pretty); err != nil {
		log.Error().Err(err).Msg("write report")
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "messages=%d words=%d media=%d links=%d sentiment=%s report=%s\n",
		report.Totals.Messages, report.Totals.Words, report.Totals.Media, report.Totals.Links,
		report.Sentiment.Label, cfg.OutPath)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func buildScorer(cfg Config) (analysis.Scorer, error) {
	switch cfg.Scorer {
	case "vader":
		return polarity.NewVaderScorer(), nil
	case "openai":
		apiKey := cfg.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, errors.New("missing OPENAI_API_KEY (or pass -api-key)")
		}
		client := openai.NewClient(option.WithAPIKey(apiKey))
		return polarity.NewOpenAIScorer(&client, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown scorer %q", cfg.Scorer)
	}
}
