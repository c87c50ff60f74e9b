package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"phuongcosmetics.vn/storefront-web/internal/format"
	"phuongcosmetics.vn/storefront-web/internal/handlers"
	"phuongcosmetics.vn/storefront-web/internal/related"
	"phuongcosmetics.vn/storefront-web/internal/seo"
)

func newShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show product|post [id]",
		Short: "Print one record",
		Args:  kindArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()
			if args[0] == "product" {
				p, err := c.store.Product(ctx, args[1])
				if err != nil {
					return err
				}
				if c.asJSON {
					return writeJSON(out, p)
				}
				fmt.Fprintf(out, "%s - %s\n", p.Name, p.Brand)
				fmt.Fprintf(out, "category: %s\n", p.Category)
				fmt.Fprintf(out, "price:    %s\n", format.Currency(p.EffectivePrice(), "VND", "vi"))
				if p.HasDiscount() {
					fmt.Fprintf(out, "was:      %s (-%d%%)\n", format.Currency(p.Price, "VND", "vi"), p.DiscountPercent())
				}
				fmt.Fprintf(out, "rating:   %s\n", format.Rating(p.Rating))
				fmt.Fprintf(out, "stock:    %d\n", p.Stock)
				fmt.Fprintf(out, "tags:     %s\n", strings.Join(p.Tags, ", "))
				return nil
			}
			p, err := c.store.Post(ctx, args[1])
			if err != nil {
				return err
			}
			if c.asJSON {
				return writeJSON(out, p)
			}
			fmt.Fprintln(out, p.Title)
			fmt.Fprintf(out, "category: %s\n", p.Category)
			fmt.Fprintf(out, "date:     %s\n", format.Date(p.Date, "vi"))
			fmt.Fprintf(out, "author:   %s\n", p.Author)
			fmt.Fprintf(out, "read:     %d min\n", p.ReadTimeMin)
			fmt.Fprintf(out, "tags:     %s\n", strings.Join(p.Tags, ", "))
			fmt.Fprintf(out, "body:     %d paragraphs\n", len(p.Body))
			return nil
		},
	}
}

func newRelatedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "related product|post [id]",
		Short: "Print the related set shown on a detail page",
		Args:  kindArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()
			if args[0] == "product" {
				p, err := c.store.Product(ctx, args[1])
				if err != nil {
					return err
				}
				rel := related.Products(ctx, p, c.store.Products())
				if c.asJSON {
					return writeJSON(out, rel)
				}
				for _, r := range rel {
					fmt.Fprintf(out, "%s\t%s\t%s\n", r.ID, r.Category, r.Name)
				}
				return nil
			}
			p, err := c.store.Post(ctx, args[1])
			if err != nil {
				return err
			}
			rel := related.Posts(ctx, p, c.store.Posts())
			if c.asJSON {
				return writeJSON(out, rel)
			}
			for _, r := range rel {
				fmt.Fprintf(out, "%s\t%s\t%s\n", r.ID, r.Category, r.Title)
			}
			return nil
		},
	}
}

func newJSONLDCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "jsonld product|post [id]",
		Short: "Print the structured data blocks emitted for a detail page",
		Args:  kindArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			site := handlers.Site{Name: c.siteName, BaseURL: c.baseURL}
			var md *seo.Metadata
			if args[0] == "product" {
				p, err := c.store.Product(ctx, args[1])
				if err != nil {
					return err
				}
				md = handlers.ProductMetadata(p, site, time.Now())
			} else {
				p, err := c.store.Post(ctx, args[1])
				if err != nil {
					return err
				}
				md = handlers.PostMetadata(p, site)
			}
			blocks := make(map[string]map[string]any, len(md.Structured))
			for _, s := range md.Structured {
				blocks[s.ID] = s.Data
			}
			return writeJSON(cmd.OutOrStdout(), blocks)
		},
	}
}
