package main

import (
	"context"
	"os"
	"time"

	"civic-voice-be/internal/bootstrap"
	"civic-voice-be/internal/config"

	"github.com/fatih/color"
)

func main() {
	cfg := config.Load()
	container := bootstrap.NewContainer(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	res, err := container.KnowledgeService.Reindex(ctx)
	cancel()
	container.Close()

	if err != nil {
		color.Red("Reindex failed: %v", err)
		os.Exit(1)
	}
	if !res.Enabled {
		color.Yellow("ENABLE_VECTOR_EMBEDDINGS is off; nothing to do")
		return
	}
	color.Green("Reindexed %d article(s)", res.Indexed)
}
