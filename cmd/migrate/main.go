// Command migrate copies every stored key from one storage backend to
// another, e.g. from the fs backend to sqlite or s3. Collection keys are
// renamed to the destination's configured names; other keys keep theirs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/debemdeboas/swipestate/internal/config"
	"github.com/debemdeboas/swipestate/internal/logger"
	"github.com/debemdeboas/swipestate/internal/storage"
)

func main() {
	// Define command-line flags
	from := flag.String("from", "", "config file of the source storage")
	to := flag.String("to", "", "config file of the destination storage")
	overwrite := flag.Bool("overwrite", false, "replace keys that already exist in the destination")
	flag.Parse()

	if *from == "" || *to == "" {
		log.Fatal("Both --from and --to flags are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	src, err := loadConfig(*from)
	if err != nil {
		log.Fatalf("Error loading %s: %v", *from, err)
	}
	dst, err := loadConfig(*to)
	if err != nil {
		log.Fatalf("Error loading %s: %v", *to, err)
	}

	storage.SetLogger(logger.New(src.Logging.Level))

	ctx := context.Background()
	srcBackend, err := storage.OpenBackend(ctx, src.Storage)
	if err != nil {
		log.Fatalf("Error opening source storage: %v", err)
	}
	defer srcBackend.Close()

	dstBackend, err := storage.OpenBackend(ctx, dst.Storage)
	if err != nil {
		log.Fatalf("Error opening destination storage: %v", err)
	}
	defer dstBackend.Close()

	report, err := copyKeys(ctx, srcBackend, dstBackend, keyRenames(src, dst), *overwrite)
	for _, r := range report {
		log.Println(r)
	}
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadConfig(path); err != nil {
		return nil, err
	}
	return config.AppConfig, nil
}

// keyRenames maps each collection key of src onto the matching key of dst.
func keyRenames(src, dst *config.Config) map[string]string {
	return map[string]string{
		src.Keys.Drafts:       dst.Keys.Drafts,
		src.Keys.LegacyDraft:  dst.Keys.LegacyDraft,
		src.Keys.Interactions: dst.Keys.Interactions,
	}
}

// copyKeys copies every non-empty source key and returns one report line per
// key. It stops at the first read or write failure.
func copyKeys(ctx context.Context, src, dst storage.Backend, renames map[string]string, overwrite bool) ([]string, error) {
	keys, err := src.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source keys: %w", err)
	}

	var report []string
	for _, from := range keys {
		to, ok := renames[from]
		if !ok {
			to = from
		}

		value, err := src.Get(ctx, from)
		if errors.Is(err, storage.ErrNotFound) || (err == nil && len(value) == 0) {
			report = append(report, fmt.Sprintf("skip %s: empty in source", from))
			continue
		}
		if err != nil {
			return report, fmt.Errorf("read %s: %w", from, err)
		}

		existing, err := dst.Get(ctx, to)
		switch {
		case errors.Is(err, storage.ErrNotFound):
		case err != nil:
			return report, fmt.Errorf("check %s: %w", to, err)
		case len(existing) > 0 && !overwrite:
			report = append(report, fmt.Sprintf("skip %s: already present in destination", to))
			continue
		}

		if err := dst.Put(ctx, to, value); err != nil {
			return report, fmt.Errorf("write %s: %w", to, err)
		}
		report = append(report, fmt.Sprintf("copied %s -> %s (%d bytes)", from, to, len(value)))
	}
	return report, nil
}
