package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

var errNoSession = errors.New("--session is required")

func sessionCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "session",
		Short: "Manage session tokens",
	}
	root.AddCommand(&cobra.Command{
		Use:     "new",
		Short:   "Request a new session token",
		Example: `  SESSION=$(sleekctl session new)`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, c, err := setup()
			if err != nil {
				return err
			}
			// StorageNone always acquires a fresh token.
			token, err := sleekshop.NewSessionManager(c, sleekshop.StorageNone, nil).Session(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	})
	return root
}

func cartCmd() *cobra.Command {
	var token string
	root := &cobra.Command{
		Use:   "cart",
		Short: "Manage the cart of a session",
		Long: "Manage the cart bound to a session token. Obtain a token with\n" +
			"'sleekctl session new' and pass it with --session.",
	}
	root.PersistentFlags().StringVar(&token, "session", "", "session token")

	show := &cobra.Command{
		Use:     "show",
		Short:   "Show the cart",
		Example: `  sleekctl cart show --session "$SESSION"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCart(cmd, token, func(ctx context.Context, c *sleekshop.Client) (*domain.Envelope[domain.Cart], error) {
				return c.Cart.Get(ctx, token, nil)
			})
		},
	}

	var in sleekshop.CartItemInput
	add := &cobra.Command{
		Use:     "add <product-id>",
		Short:   "Add a product to the cart",
		Example: `  sleekctl cart add 42 --quantity 2 --session "$SESSION"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args[0], "product-id")
			if err != nil {
				return err
			}
			in.ProductID = id
			in.Language = language()
			return runCart(cmd, token, func(ctx context.Context, c *sleekshop.Client) (*domain.Envelope[domain.Cart], error) {
				return c.Cart.Add(ctx, token, in)
			})
		},
	}
	add.Flags().IntVar(&in.Quantity, "quantity", 1, "quantity")
	add.Flags().StringVar(&in.PriceField, "price-field", "price", "attribute holding the price")
	add.Flags().StringVar(&in.NameField, "name-field", "name", "attribute holding the name")
	add.Flags().StringVar(&in.DescriptionField, "description-field", "short_description", "attribute holding the description")
	add.Flags().StringVar(&in.ElementType, "element-type", sleekshop.DefaultElementType, "cart element type")

	del := &cobra.Command{
		Use:   "del <element-id>",
		Short: "Remove an element from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args[0], "element-id")
			if err != nil {
				return err
			}
			return runCart(cmd, token, func(ctx context.Context, c *sleekshop.Client) (*domain.Envelope[domain.Cart], error) {
				return c.Cart.Del(ctx, token, id)
			})
		},
	}

	sub := &cobra.Command{
		Use:   "sub <element-id>",
		Short: "Decrease the quantity of a cart element by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args[0], "element-id")
			if err != nil {
				return err
			}
			return runCart(cmd, token, func(ctx context.Context, c *sleekshop.Client) (*domain.Envelope[domain.Cart], error) {
				return c.Cart.Sub(ctx, token, id)
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCart(cmd, token, func(ctx context.Context, c *sleekshop.Client) (*domain.Envelope[domain.Cart], error) {
				return c.Cart.Clear(ctx, token)
			})
		},
	}

	root.AddCommand(show, add, sub, del, clearCmd)
	return root
}

func runCart(
	cmd *cobra.Command,
	token string,
	call func(context.Context, *sleekshop.Client) (*domain.Envelope[domain.Cart], error),
) error {
	if token == "" {
		return errNoSession
	}
	_, c, err := setup()
	if err != nil {
		return err
	}
	cart, err := result(call(cmd.Context(), c))
	if err != nil {
		return err
	}
	if jsonOutput() {
		return outputJSON(cmd.OutOrStdout(), cart)
	}
	if len(cart.Contents) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Cart is empty.")
		return nil
	}
	return printCart(cmd.OutOrStdout(), &cart)
}
