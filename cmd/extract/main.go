// Command extract runs card extraction over image files from the command line
// and prints the records as JSON. With -store the cards are also persisted;
// with -lines the arguments are text files of already recognized lines.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"bizcardx/internal/config"
	"bizcardx/internal/extraction"
	"bizcardx/internal/logger"
	"bizcardx/internal/ocr/tesseract"
	"bizcardx/internal/repository/sqlrepo"
	"bizcardx/internal/service"
)

func main() {
	var (
		store   = flag.Bool("store", false, "persist extracted cards to the configured database")
		tokens  = flag.Bool("tokens", false, "include the per-token classification in the output")
		compact = flag.Bool("compact", false, "print compact JSON")
		lines   = flag.Bool("lines", false, "treat arguments as text files of recognized lines, one per row, and skip OCR")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: extract [flags] IMAGE...\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if *lines && *store {
		log.Fatal("-lines cannot be combined with -store: there is no image to keep")
	}

	if err := run(flag.Args(), *store, *tokens, *compact, *lines); err != nil {
		log.Fatal(err)
	}
}

type output struct {
	File   string                       `json:"file"`
	ID     string                       `json:"id,omitempty"`
	Record extraction.Record            `json:"record"`
	Tokens []extraction.ClassifiedToken `json:"tokens,omitempty"`
	Error  string                       `json:"error,omitempty"`
}

func run(paths []string, store, withTokens, compact, fromLines bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	zl, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()

	leading, err := cfg.Extraction.LeadingTags()
	if err != nil {
		return fmt.Errorf("invalid extraction config: %w", err)
	}
	extractor := extraction.NewExtractor(extraction.WithLeadingFields(leading...))
	if fromLines {
		return emit(extractLines(extractor, paths, withTokens, zl), compact)
	}

	db, err := sqlrepo.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	svc := service.NewCardService(
		sqlrepo.NewCardRepo(db),
		tesseract.NewRecognizer(&cfg.OCR, zl),
		nil, nil,
		extractor,
		service.CardServiceConfig{MaxImageBytes: cfg.OCR.MaxImageBytes()},
		zl,
	)

	ctx := context.Background()
	results := make([]output, 0, len(paths))
	failed := 0
	for _, p := range paths {
		out, err := process(ctx, svc, p, store, withTokens)
		if err != nil {
			zl.Warn("extraction failed", zap.String("file", p), zap.Error(err))
			out = output{File: p, Error: err.Error()}
			failed++
		}
		results = append(results, out)
	}

	if err := emit(results, compact); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(paths))
	}
	return nil
}

func emit(results []output, compact bool) error {
	enc := json.NewEncoder(os.Stdout)
	if !compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return nil
}

// extractLines classifies previously recognized text. Blank rows are dropped
// the same way the OCR adapter drops empty lines.
func extractLines(extractor *extraction.Extractor, paths []string, withTokens bool, zl *zap.Logger) []output {
	results := make([]output, 0, len(paths))
	for _, p := range paths {
		raw, err := os.ReadFile(p)
		if err != nil {
			zl.Warn("reading lines failed", zap.String("file", p), zap.Error(err))
			results = append(results, output{File: p, Error: err.Error()})
			continue
		}
		var texts []string
		for _, line := range strings.Split(string(raw), "\n") {
			if line = strings.TrimSpace(line); line != "" {
				texts = append(texts, line)
			}
		}
		res := extractor.Extract(extraction.TokensFromText(texts...), nil)
		out := output{File: p, Record: res.Record}
		if withTokens {
			out.Tokens = res.Classified
		}
		results = append(results, out)
	}
	return results
}

func process(ctx context.Context, svc service.CardService, path string, store, withTokens bool) (output, error) {
	f, err := os.Open(path)
	if err != nil {
		return output{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return output{}, err
	}
	input := service.ImageInput{Filename: filepath.Base(path), Size: info.Size(), Body: f}

	if store {
		card, err := svc.Create(ctx, input)
		if err != nil {
			return output{}, err
		}
		return output{File: path, ID: card.ID.String(), Record: extraction.Build(card.Fields(), nil)}, nil
	}

	res, err := svc.Extract(ctx, input)
	if err != nil {
		return output{}, err
	}
	out := output{File: path, Record: res.Record}
	if withTokens {
		out.Tokens = res.Classified
	}
	return out, nil
}
