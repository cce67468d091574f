// Command accountd serves the account lifecycle pages.
//
// Usage:
//
//	accountd [serve]
//	accountd migrate
//	accountd createsuperuser -email admin@example.com -password secret [-first Ann -last Lee] [-inactive]
//
// Configuration is read from the environment and an optional .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/anita-maxwynn/Django-Practice/pkg/clientip"
	"github.com/anita-maxwynn/Django-Practice/pkg/config"
	"github.com/anita-maxwynn/Django-Practice/pkg/logger"
	"github.com/anita-maxwynn/Django-Practice/pkg/requestid"
)

var errUsage = errors.New("usage: accountd [serve|migrate|createsuperuser]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	cmd := "serve"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		return serve(ctx, log, cfg)
	case "migrate":
		return migrate(ctx, log)
	case "createsuperuser":
		return createSuperuserCmd(ctx, log, cfg, args, stdout)
	default:
		log.Error("unknown command", slog.String("command", cmd))
		return errUsage
	}
}
