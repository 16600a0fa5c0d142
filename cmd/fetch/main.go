package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"momir/internal/config"
	"momir/internal/momir"
	"momir/internal/scryfall"
)

const attribution = `Card Image Attribution
=====================

Card images in this directory were fetched from Scryfall (https://scryfall.com).

The literal and graphical information presented about Magic: The Gathering, including card images,
the mana symbols, and Oracle text, is copyright Wizards of the Coast, LLC, a subsidiary of Hasbro, Inc.

This project is not produced by, endorsed by, supported by, or affiliated with Wizards of the Coast.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("fetch", flag.ContinueOnError)
	flags.SetOutput(out)
	manaValue := flags.Int("mv", 3, "mana value of the creature (0-16)")
	count := flags.Int("n", 1, "number of cards to fetch")
	outputDir := flags.String("out", ".", "directory the images are written to")
	configPath := flags.String("config", "", "path to a momir.yaml config file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *manaValue < 0 || *manaValue > 16 {
		return fmt.Errorf("mana value must be between 0 and 16, got %d", *manaValue)
	}
	if *count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", *count)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	client := scryfall.NewClient(scryfall.Config{
		RandomURL:       cfg.Scryfall.BaseURL,
		UserAgent:       cfg.Scryfall.UserAgent,
		Timeout:         cfg.Scryfall.Timeout,
		RequestInterval: cfg.Scryfall.RequestInterval,
		Query:           scryfall.QueryOptions{ExcludedCards: cfg.Scryfall.ExcludedCards},
		Logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	fmt.Fprintf(out, "Query: %s\n", scryfall.BuildQuery(*manaValue, scryfall.QueryOptions{ExcludedCards: cfg.Scryfall.ExcludedCards}))
	_, err = fetchCards(ctx, client, *manaValue, *count, *outputDir, out)
	return err
}

// fetchCards saves count random creatures of the mana value into dir and
// returns the written paths. The requests are paced by the client.
func fetchCards(ctx context.Context, source momir.ImageSource, manaValue, count int, dir string, out io.Writer) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var paths []string
	for i := 0; i < count; i++ {
		img, err := source.RandomCard(ctx, manaValue)
		if err != nil {
			return paths, fmt.Errorf("fetch card %d of %d: %w", i+1, count, err)
		}

		mediaType, data, err := scryfall.DecodeDataURI(img.DataURI)
		if err != nil {
			return paths, err
		}

		path := filepath.Join(dir, fmt.Sprintf("momir-%d-%s%s", manaValue, shortID(img.ID), extensionFor(mediaType)))
		if err := os.WriteFile(path, data, 0644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Fprintf(out, "Saved %s (%d bytes)\n", path, len(data))
		paths = append(paths, path)
	}

	if err := os.WriteFile(filepath.Join(dir, "ATTRIBUTION.txt"), []byte(attribution), 0644); err != nil {
		fmt.Fprintf(out, "Error writing attribution file: %v\n", err)
	}
	return paths, nil
}

// shortID trims a card id for use in a file name
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func extensionFor(mediaType string) string {
	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".img"
	}
}
