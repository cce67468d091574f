package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/anita-maxwynn/Django-Practice/pkg/auth"
	"github.com/anita-maxwynn/Django-Practice/pkg/httpserver"
)

type superuserFlags struct {
	email    string
	password string
	first    string
	last     string
	inactive bool
}

func parseSuperuserFlags(args []string, output io.Writer) (superuserFlags, error) {
	var f superuserFlags

	fs := flag.NewFlagSet("createsuperuser", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&f.email, "email", "", "email address (required)")
	fs.StringVar(&f.password, "password", "", "password (required)")
	fs.StringVar(&f.first, "first", "", "first name")
	fs.StringVar(&f.last, "last", "", "last name")
	fs.BoolVar(&f.inactive, "inactive", false, "create the account inactive")

	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if f.email == "" || f.password == "" {
		fs.Usage()
		return f, errors.New("createsuperuser: -email and -password are required")
	}
	return f, nil
}

func createSuperuser(ctx context.Context, users *auth.Service, f superuserFlags, stdout io.Writer) (*auth.User, error) {
	user, err := users.CreateSuperuser(ctx, f.email, f.password,
		auth.WithName(f.first, f.last),
		auth.WithActive(!f.inactive),
	)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(stdout, "Superuser %s created (active: %t).\n", user.Email, user.IsActive)
	return user, nil
}

func createSuperuserCmd(ctx context.Context, log *slog.Logger, cfg appConfig, args []string, stdout io.Writer) error {
	f, err := parseSuperuserFlags(args, stdout)
	if err != nil {
		return err
	}

	storage, closeStorage, err := userStorage(ctx, log, cfg.StorageDriver, map[string]httpserver.CheckFunc{})
	if err != nil {
		return err
	}
	defer closeStorage()

	_, err = createSuperuser(ctx, auth.NewService(storage, auth.WithLogger(log)), f, stdout)
	return err
}
