package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
)

func categoriesCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "categories",
		Short: "Browse categories",
		Long:  "Browse the category tree and the products and contents listed in a category.",
	}
	root.AddCommand(categoriesTreeCmd(), categoryProductsCmd(), categoryContentsCmd())
	return root
}

func categoriesTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [parent-id]",
		Short: "Print the category tree",
		Example: `  sleekctl categories tree
  sleekctl categories tree 12 --lang de_DE --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, c, err := setup()
			if err != nil {
				return err
			}
			parent := cfg.Sleekshop.CategoriesID
			if len(args) == 1 {
				if parent, err = intArg(args[0], "parent-id"); err != nil {
					return err
				}
			}
			tree, err := result(c.Categories.Get(cmd.Context(), parent, language()))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), tree)
			}
			if len(tree) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No categories found.")
				return nil
			}
			return printCategoryTree(cmd.OutOrStdout(), tree)
		},
	}
}

// listFlags binds the ordering and paging flags shared by listings.
func listFlags(cmd *cobra.Command, opts *sleekshop.ListOptions) {
	cmd.Flags().StringSliceVar(&opts.OrderColumns, "order-by", nil, "order columns")
	cmd.Flags().StringVar(&opts.Order, "order", "ASC", "order direction (ASC, DESC)")
	cmd.Flags().IntVar(&opts.LeftLimit, "left", 0, "first row")
	cmd.Flags().IntVar(&opts.RightLimit, "right", 0, "row count, 0 for all")
	cmd.Flags().StringSliceVar(&opts.NeededAttributes, "attributes", nil, "attributes to fetch")
}

func categoryProductsCmd() *cobra.Command {
	var opts sleekshop.ListOptions
	cmd := &cobra.Command{
		Use:   "products <category-id>",
		Short: "List the products of a category",
		Example: `  sleekctl categories products 4
  sleekctl categories products 4 --order-by prod.price --order DESC --right 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args[0], "category-id")
			if err != nil {
				return err
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			listing, err := result(c.Categories.Products(cmd.Context(), id, language(), opts))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), listing)
			}
			return printShopObjects(cmd.OutOrStdout(), listing.Products)
		},
	}
	listFlags(cmd, &opts)
	return cmd
}

func categoryContentsCmd() *cobra.Command {
	var opts sleekshop.ListOptions
	cmd := &cobra.Command{
		Use:   "contents <category-id>",
		Short: "List the contents of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args[0], "category-id")
			if err != nil {
				return err
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			listing, err := result(c.Categories.Contents(cmd.Context(), id, language(), opts))
			if err != nil {
				return err
			}
			if jsonOutput() || listing.Contents == nil {
				return outputJSON(cmd.OutOrStdout(), listing)
			}
			return printShopObjects(cmd.OutOrStdout(), listing.Contents.Items)
		},
	}
	listFlags(cmd, &opts)
	return cmd
}

func productsCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "products",
		Short: "Show products",
	}

	var attributes []string
	get := &cobra.Command{
		Use:   "get <id|permalink>",
		Short: "Show product details",
		Example: `  sleekctl products get 42
  sleekctl products get /shirts/blue-shirt --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := setup()
			if err != nil {
				return err
			}
			var prod any
			if id, convErr := cast.ToIntE(args[0]); convErr == nil {
				p, err := result(c.Products.Details(cmd.Context(), id, language(), attributes))
				if err != nil {
					return err
				}
				if !jsonOutput() {
					return printShopObjectDetail(cmd.OutOrStdout(), &p)
				}
				prod = p
			} else {
				p, err := result(c.Products.SeoDetails(cmd.Context(), args[0], attributes))
				if err != nil {
					return err
				}
				if !jsonOutput() {
					return printShopObjectDetail(cmd.OutOrStdout(), &p)
				}
				prod = p
			}
			return outputJSON(cmd.OutOrStdout(), prod)
		},
	}
	get.Flags().StringSliceVar(&attributes, "attributes", nil, "attributes to fetch")

	root.AddCommand(get)
	return root
}

func searchCmd() *cobra.Command {
	var (
		q         sleekshop.SearchQuery
		contents  bool
		rawFilter string
	)
	cmd := &cobra.Command{
		Use:   "search <constraint-json>",
		Short: "Search products or contents",
		Long: "Search products (or contents with --contents). The constraint maps\n" +
			"columns to conditions, for example {\"main.name\": [\"LIKE\", \"%shirt%\"]}.",
		Example: `  sleekctl search '{"main.name": ["LIKE", "%shirt%"]}'
  sleekctl search '{"main.name": ["LIKE", "%news%"]}' --contents --right 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				rawFilter = args[0]
			}
			if err := json.Unmarshal([]byte(rawFilter), &q.Constraint); err != nil {
				return fmt.Errorf("parsing constraint: %w", err)
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			q.Language = language()

			search := c.Search.Products
			if contents {
				search = c.Search.Contents
			}
			res, err := result(search(cmd.Context(), q))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d matches\n", res.Count)
			return printShopObjects(cmd.OutOrStdout(), res.Items)
		},
	}
	cmd.Flags().BoolVar(&contents, "contents", false, "search contents instead of products")
	cmd.Flags().StringVar(&rawFilter, "constraint", "{}", "constraint JSON")
	cmd.Flags().IntVar(&q.LeftLimit, "left", 0, "first row")
	cmd.Flags().IntVar(&q.RightLimit, "right", 0, "row count, 0 for all")
	cmd.Flags().StringSliceVar(&q.OrderColumns, "order-by", nil, "order columns")
	cmd.Flags().StringVar(&q.OrderType, "order", "ASC", "order direction (ASC, DESC)")
	cmd.Flags().StringSliceVar(&q.NeededAttributes, "attributes", nil, "attributes to fetch")
	return cmd
}

func intArg(s, name string) (int, error) {
	n, err := cast.ToIntE(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	return n, nil
}
