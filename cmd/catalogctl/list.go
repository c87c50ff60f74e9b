package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"phuongcosmetics.vn/storefront-web/internal/format"
)

func newProductsCmd(c *cli) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List products in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			products := c.store.ProductsByCategory(category)
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), products)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tBRAND\tCATEGORY\tPRICE\tDISCOUNT")
			for _, p := range products {
				discount := "-"
				if p.HasDiscount() {
					discount = fmt.Sprintf("-%d%%", p.DiscountPercent())
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.Name, p.Brand, p.Category, format.Currency(p.EffectivePrice(), "VND", "vi"), discount)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	return cmd
}

func newPostsCmd(c *cli) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List blog posts in catalog order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts := c.store.PostsByCategory(category)
			if c.asJSON {
				return writeJSON(cmd.OutOrStdout(), posts)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tDATE\tAUTHOR")
			for _, p := range posts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ID, p.Title, p.Category, format.ISODate(p.Date), p.Author)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	return cmd
}
