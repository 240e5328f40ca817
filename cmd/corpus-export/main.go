// corpus-export emits the stopword-cleaned token corpus for one selection of
// an exported chat. The output is the plain-text input expected by a
// word-cloud renderer: lowercase tokens joined by single spaces.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/theimaginaryfoundation/chat-o-meter/analysis"
	"github.com/theimaginaryfoundation/chat-o-meter/analysis/fileutils"
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

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	text, err := analysis.LoadTranscript(cfg.InPath)
	if err != nil {
		if errors.Is(err, analysis.ErrNoTranscript) {
			log.Error().Str("in", cfg.InPath).Msg("no transcript text found in input")
		} else {
			log.Error().Err(err).Msg("load transcript")
		}
		os.Exit(1)
	}

	msgs := analysis.PrepareTranscript(text)

	freqCfg := analysis.FrequencyConfig{}
	if cfg.StopwordsPath != "" {
		words, err := analysis.LoadStopwords(cfg.StopwordsPath)
		if err != nil {
			log.Error().Err(err).Msg("load stopwords")
			os.Exit(1)
		}
		freqCfg.Stopwords = words
	}

	corpus := analysis.NewFrequencyAnalyzer(freqCfg).CleanedCorpus(msgs, cfg.User)
	if err := fileutils.WriteFileAtomic(cfg.OutPath, []byte(corpus), 0o644); err != nil {
		log.Error().Err(err).Msg("write corpus")
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "messages=%d corpus_bytes=%d out=%s\n", len(msgs), len(corpus), cfg.OutPath)
}
