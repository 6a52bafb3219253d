package main

import (
	"context"
	"strings"
	"time"

	"civic-voice-be/internal/bootstrap"
	"civic-voice-be/internal/config"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	container := bootstrap.NewContainer(cfg)
	defer container.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	color.Cyan("Seeding knowledge base with %d articles...", len(sampleArticles))

	existing, err := container.KnowledgeService.GetAll(ctx)
	if err != nil {
		color.Red("Failed to list existing articles: %v", err)
		return
	}
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[strings.ToLower(a.Title)] = true
	}

	created := 0
	for i := range sampleArticles {
		req := sampleArticles[i]
		if seen[strings.ToLower(req.Title)] {
			color.Yellow("  skip  %s (already present)", req.Title)
			continue
		}
		res, err := container.KnowledgeService.Create(ctx, &req)
		if err != nil {
			color.Red("  fail  %s: %v", req.Title, err)
			continue
		}
		created++
		color.Green("  added %s (%s)", res.Title, res.Id)
	}

	color.Cyan("Created %d article(s)", created)

	res, err := container.KnowledgeService.Reindex(ctx)
	if err != nil {
		color.Red("Reindex failed: %v", err)
		return
	}
	if !res.Enabled {
		color.Yellow("Vector embeddings are disabled; skipped reindex")
		return
	}
	color.Green("Indexed %d article(s)", res.Indexed)
}
