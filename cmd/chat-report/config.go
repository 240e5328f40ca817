package main

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
)

type Config struct {
	InPath        string
	OutPath       string
	User          string
	StopwordsPath string

	Scorer string
	Model  string
	APIKey string

	Concurrency   int
	SkipLanguages bool
	Pretty        bool
	Verbose       bool
}

func (c Config) Validate() error {
	if c.InPath == "" {
		return errors.New("missing -in")
	}
	if c.OutPath == "" {
		return errors.New("missing -out")
	}
	if c.User == "" {
		return errors.New("-user must not be empty (use Overall for no restriction)")
	}
	if c.Scorer != "vader" && c.Scorer != "openai" {
		return errors.New("-scorer must be vader or openai")
	}
	if c.Scorer == "openai" && c.Model == "" {
		return errors.New("missing -model")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must be >= 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		OutPath:     filepath.FromSlash("report.json"),
		User:        "Overall",
		Scorer:      "vader",
		Model:       "gpt-5-mini",
		Concurrency: 4,
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Path to an exported chat (.txt) or its .zip archive")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Output path for the JSON report")
	fs.StringVar(&cfg.User, "user", cfg.User, "Restrict every view to one sender (Overall = no restriction)")
	fs.StringVar(&cfg.StopwordsPath, "stopwords", "", "Optional newline-delimited stopword file (default: embedded bilingual list)")
	fs.StringVar(&cfg.Scorer, "scorer", cfg.Scorer, "Polarity scorer: vader (offline) or openai")
	fs.StringVar(&cfg.Model, "model", cfg.Model, "OpenAI model for -scorer openai")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")
	fs.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "Max concurrent score calls with a remote scorer")
	fs.BoolVar(&cfg.SkipLanguages, "skip-languages", false, "Skip the per-language breakdown")
	fs.BoolVar(&cfg.Pretty, "pretty", false, "Pretty-print the JSON report")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose (debug) logging")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Clean("") would turn a missing path into "." and defeat Validate.
	if cfg.InPath != "" {
		cfg.InPath = filepath.Clean(cfg.InPath)
	}
	if cfg.OutPath != "" {
		cfg.OutPath = filepath.Clean(cfg.OutPath)
	}
	if cfg.StopwordsPath != "" {
		cfg.StopwordsPath = filepath.Clean(cfg.StopwordsPath)
	}
	return cfg, nil
}
