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
	return nil
}

func defaultConfig() Config {
	return Config{
		OutPath: filepath.FromSlash("corpus.txt"),
		User:    "Overall",
	}
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.InPath, "in", cfg.InPath, "Path to an exported chat (.txt) or its .zip archive")
	fs.StringVar(&cfg.OutPath, "out", cfg.OutPath, "Output path for the cleaned token corpus")
	fs.StringVar(&cfg.User, "user", cfg.User, "Restrict the corpus to one sender (Overall = no restriction)")
	fs.StringVar(&cfg.StopwordsPath, "stopwords", "", "Optional newline-delimited stopword file (default: embedded bilingual list)")

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
