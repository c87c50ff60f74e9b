package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"phuongcosmetics.vn/storefront-web/internal/catalog"
	"phuongcosmetics.vn/storefront-web/internal/platform/observability"
)

// cli holds flags shared by every subcommand.
type cli struct {
	catalogDir string
	baseURL    string
	siteName   string
	asJSON     bool
	verbose    bool

	logger *zap.Logger
	store  *catalog.Store
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "catalogctl",
		Short:         "Inspect the storefront product and blog catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if c.verbose {
				level = "debug"
			}
			logger, err := observability.NewLogger(level)
			if err != nil {
				return err
			}
			c.logger = logger.Named("catalogctl")
			return c.load()
		},
	}
	root.PersistentFlags().StringVar(&c.catalogDir, "catalog", "", "catalog directory (products.yaml + posts/); embedded data when empty")
	root.PersistentFlags().StringVar(&c.baseURL, "base-url", "https://phuongcosmetics.vn", "site base URL used for absolute links")
	root.PersistentFlags().StringVar(&c.siteName, "site-name", "Phương Cosmectics", "site name used in titles")
	root.PersistentFlags().BoolVar(&c.asJSON, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newProductsCmd(c),
		newPostsCmd(c),
		newShowCmd(c),
		newRelatedCmd(c),
		newJSONLDCmd(c),
	)
	return root
}

func (c *cli) load() error {
	started := time.Now()
	var (
		store *catalog.Store
		err   error
	)
	if c.catalogDir == "" {
		store, err = catalog.Default()
	} else {
		store, err = catalog.Open(os.DirFS(c.catalogDir))
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	c.store = store
	c.logger.Debug("catalog loaded",
		zap.String("dir", c.catalogDir),
		zap.Int("products", len(store.Products())),
		zap.Int("posts", len(store.Posts())),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// kindArg validates the leading "product|post" argument.
func kindArg(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(2)(cmd, args); err != nil {
		return err
	}
	switch args[0] {
	case "product", "post":
		return nil
	default:
		return fmt.Errorf("unknown kind %q: want product or post", args[0])
	}
}
