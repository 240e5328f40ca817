package main

import (
	"flag"
	"testing"
)

func TestParseFlags_Overrides(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("corpus-export", flag.ContinueOnError)
	cfg, err := parseFlags(fs, []string{
		"-in", "chat.txt",
		"-out", "out/corpus.txt",
		"-user", "Bob",
		"-stopwords", "stop.txt",
	})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if cfg.InPath != "chat.txt" || cfg.OutPath != "out/corpus.txt" {
		t.Fatalf("in=%q out=%q", cfg.InPath, cfg.OutPath)
	}
	if cfg.User != "Bob" {
		t.Fatalf("User=%q", cfg.User)
	}
	if cfg.StopwordsPath != "stop.txt" {
		t.Fatalf("StopwordsPath=%q", cfg.StopwordsPath)
	}
}

func TestConfigValidate_RequiresIn(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("want error for missing -in, got nil")
	}
	cfg.InPath = "chat.txt"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}
