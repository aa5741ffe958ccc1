package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"rx-exchange/internal/handler/middleware"
	"rx-exchange/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// Applies migrations/ to the configured database with the atlas CLI.
// After editing a migration file run `atlas migrate hash --dir file://migrations`.
func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	atlasBin := flag.String("atlas", "atlas", "path to the atlas binary")
	statusOnly := flag.Bool("status", false, "print migration status without applying")
	dryRun := flag.Bool("dry-run", false, "print pending statements without executing them")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("設定の読み込みに失敗しました", "error", err)
		os.Exit(1)
	}
	logger := middleware.NewLogger(cfg.Log).GetSlogLogger()

	if !cfg.DB.Enabled {
		logger.Warn("DB_ENABLED=false, nothing to migrate")
		return
	}

	client, err := atlasexec.NewClient(".", *atlasBin)
	if err != nil {
		logger.Error("atlas client init failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dirURL := "file://" + *dir
	if *statusOnly {
		status, err := client.MigrateStatus(ctx, &atlasexec.MigrateStatusParams{
			URL:    cfg.DB.BuildDSN(),
			DirURL: dirURL,
		})
		if err != nil {
			logger.Error("migration status failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migration status", "status", status.Status, "current", status.Current, "pending", len(status.Pending))
		return
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: dirURL,
		DryRun: *dryRun,
	})
	if err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("migrations applied", "from", res.Current, "to", res.Target, "files", len(res.Applied), "dry_run", *dryRun)
}
