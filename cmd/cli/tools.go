package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/iho/budgetledger/internal/infrastructure/auth"
	"github.com/iho/budgetledger/internal/infrastructure/logger"
	"github.com/iho/budgetledger/internal/infrastructure/postgres"
	"github.com/iho/budgetledger/internal/infrastructure/timezone"
)

func tokenCmd() *cobra.Command {
	var (
		secret, owner string
		ttl           time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a bearer token for an owner",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := auth.Sign(secret, owner, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "JWT_SECRET of the server")
	cmd.Flags().StringVar(&owner, "for", "", "Owner id to embed")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("for")
	return cmd
}

func tzCmd() *cobra.Command {
	var (
		at               string
		standard, summer time.Duration
	)
	cmd := &cobra.Command{
		Use:   "tz",
		Short: "Show the local calendar date of an instant",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := time.Now()
			if at != "" {
				parsed, err := time.Parse(time.RFC3339, at)
				if err != nil {
					return fmt.Errorf("invalid --at: %w", err)
				}
				t = parsed
			}

			r := timezone.NewResolver(standard, summer)
			d := r.DateOf(t)
			fmt.Fprintf(cmd.OutOrStdout(), "%s local date %s (day %s .. %s)\n",
				t.UTC().Format(time.RFC3339), d, r.DayStart(d).Format(time.RFC3339), r.DayEnd(d).Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "Instant in RFC3339 (default now)")
	cmd.Flags().DurationVar(&standard, "standard", timezone.DefaultStandardOffset, "Standard UTC offset")
	cmd.Flags().DurationVar(&summer, "summer", timezone.DefaultSummerOffset, "Summer UTC offset")
	return cmd
}

func migrateCmd() *cobra.Command {
	var databaseURL string
	cmd := &cobra.Command{Use: "migrate", Short: "Apply or roll back database migrations"}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "PostgreSQL URL")
	_ = cmd.MarkPersistentFlagRequired("database-url")

	log := func() zerolog.Logger { return logger.New(logger.Config{Level: "info", Format: "console"}) }

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return postgres.RunMigrations(databaseURL, log())
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				return postgres.RunMigrationsDown(databaseURL, log())
			},
		},
	)
	return cmd
}
