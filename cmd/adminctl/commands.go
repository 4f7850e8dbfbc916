package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ArowuTest/category-proxy/internal/app"
	"github.com/ArowuTest/category-proxy/internal/auth"
	"github.com/ArowuTest/category-proxy/internal/config"
	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "adminctl",
		Short:        "Manage category configuration",
		SilenceUsage: true,
	}
	root.AddCommand(newSeedCmd(), newResolveCmd(), newTokenCmd(), newHashCmd())
	return root
}

// loadApp builds the application from the same configuration the server uses.
func loadApp() (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return app.New(cfg, app.NewLogger(cfg))
}

func newSeedCmd() *cobra.Command {
	var only []string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the bundled category table into the configuration store",
		Long: "Upserts every bundled category (or the ones named with --category) " +
			"through the same path as the admin endpoint. The server never does this on its own.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			categories := only
			if len(categories) == 0 {
				categories = a.Fallback.Categories()
			}
			for _, category := range categories {
				rec, ok := a.Fallback.Record(category)
				if !ok {
					return fmt.Errorf("category %q is not in the bundled table", category)
				}
				stored, err := a.Admin.UpsertConfig(cmd.Context(), &models.UpsertConfigRequest{
					Category:   rec.Category,
					Collection: rec.Collection,
					Fields:     rec.Fields,
				})
				if err != nil {
					return fmt.Errorf("seed %q: %w", category, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seeded %s -> %s (%d fields)\n", stored.Category, stored.Collection, len(stored.Fields))
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&only, "category", nil, "only seed these categories")
	return cmd
}

func newResolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <category>",
		Short: "Print the descriptor a category resolves to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			d, err := a.Resolver.Resolve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(d)
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if ttl == 0 {
				ttl = time.Duration(cfg.JWT.ExpiresIn) * time.Hour
			}
			token, err := auth.NewTokenIssuer(cfg.JWT.Secret, ttl).Issue(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default jwt.expiresin hours)")
	return cmd
}

func newHashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-token <secret>",
		Short: "Print the bcrypt hash to use as ADMIN_TOKEN_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := auth.HashToken(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hashed)
			return nil
		},
	}
}
