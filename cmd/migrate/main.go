package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Adarsh-P-A/retrievo-backend/internal/config"
	"github.com/Adarsh-P-A/retrievo-backend/internal/database"
	"github.com/Adarsh-P-A/retrievo-backend/internal/logging"
	flag "github.com/spf13/pflag"
)

func main() {
	timeout := flag.DurationP("timeout", "t", 2*time.Minute, "abort the migration after this long")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: migrate [flags] up|down|status\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()
	logging.Setup(cfg.AppEnv)

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "up":
		err = database.Migrate(ctx, cfg)
	case "down":
		err = database.Rollback(ctx, cfg)
	case "status":
		err = database.Status(ctx, cfg)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		slog.Error("migration command failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
	slog.Info("migration command finished", "command", flag.Arg(0))
}
