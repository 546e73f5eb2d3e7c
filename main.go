package main

import (
	"context"
	"fmt"
	"os"

	"github.com/raushankrgupta/harvesthub-seeder/api"
	"github.com/raushankrgupta/harvesthub-seeder/config"
	"github.com/raushankrgupta/harvesthub-seeder/images"
	"github.com/raushankrgupta/harvesthub-seeder/seeder"
	"github.com/spf13/cobra"
)

// exitConfigError is used for anything that stops a run before login
const exitConfigError = 1

type options struct {
	envFile     string
	draftFile   string
	baseURL     string
	username    string
	password    string
	sellerID    string
	imageSource string
}

func main() {
	os.Exit(execute(os.Args[1:]))
}

func execute(args []string) int {
	var opts options
	exitCode := 0

	rootCmd := &cobra.Command{
		Use:           "harvesthub-seeder",
		Short:         "Logs in to HarvestHub and creates a sample product, optionally with an image.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, opts)
			if err != nil {
				exitCode = exitConfigError
				return err
			}
			exitCode = runSeeder(cmd.Context(), cfg, cmd)
			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.envFile, "env-file", "", "Path to a .env file (defaults to ./.env when present)")
	flags.StringVar(&opts.draftFile, "draft", "", "YAML file describing the product (defaults to the built-in sample)")
	flags.StringVar(&opts.baseURL, "base-url", "", "Backend base URL")
	flags.StringVarP(&opts.username, "username", "u", "", "Login username")
	flags.StringVarP(&opts.password, "password", "p", "", "Login password")
	flags.StringVar(&opts.sellerID, "seller-id", "", "Seller id sent with the product (defaults to the username)")
	flags.StringVarP(&opts.imageSource, "image-source", "i", "", "Image directory, http(s) URL or s3://bucket/key")

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if exitCode == 0 {
			exitCode = exitConfigError
		}
	}
	return exitCode
}

// buildConfig applies flags on top of the environment
func buildConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("draft") {
		draft, err := config.LoadDraft(opts.draftFile)
		if err != nil {
			return nil, err
		}
		cfg.Draft = draft
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("username") {
		cfg.Username = opts.username
	}
	if flags.Changed("password") {
		cfg.Password = opts.password
	}
	if flags.Changed("seller-id") {
		cfg.SellerID = opts.sellerID
	}
	if flags.Changed("image-source") {
		cfg.ImageSource = opts.imageSource
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSeeder(ctx context.Context, cfg *config.Config, cmd *cobra.Command) int {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "==================================================")
	fmt.Fprintln(out, "HARVESTHUB SAMPLE PRODUCT SEEDER")
	fmt.Fprintln(out, "==================================================")

	provider, err := images.GetProvider(cfg.ImageSource, images.Options{AWSRegion: cfg.AWSRegion})
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Invalid image source: %v\n", err)
		return exitConfigError
	}

	client := api.NewClient(cfg.BaseURL, cfg.HTTPTimeout)
	result := seeder.Run(ctx, cfg, client, provider, out)

	if result.Outcome == seeder.Success {
		fmt.Fprintln(out, "\nDone!")
	} else {
		fmt.Fprintf(out, "\nFailed: %s\n", result.Outcome)
	}
	return result.Outcome.ExitCode()
}
