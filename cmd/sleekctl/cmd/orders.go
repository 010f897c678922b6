package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func ordersCmd() *cobra.Command {
	var token string
	root := &cobra.Command{
		Use:   "orders",
		Short: "Checkout and inspect orders",
	}
	root.PersistentFlags().StringVar(&token, "session", "", "session token")

	var details string
	set := &cobra.Command{
		Use:     "set-details",
		Short:   "Store order details on the pending order of a session",
		Example: `  sleekctl orders set-details --session "$SESSION" --details '{"delivery_firstname": "Alice"}'`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				return errNoSession
			}
			var args map[string]any
			if err := json.Unmarshal([]byte(details), &args); err != nil {
				return fmt.Errorf("parsing details: %w", err)
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Orders.SetDetails(cmd.Context(), token, args))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}
	set.Flags().StringVar(&details, "details", "{}", "order details JSON")

	pending := &cobra.Command{
		Use:   "pending",
		Short: "Show the pending order of a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				return errNoSession
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Orders.Details(cmd.Context(), token))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}

	checkout := &cobra.Command{
		Use:     "checkout",
		Short:   "Turn the pending order of a session into an order",
		Example: `  sleekctl orders checkout --session "$SESSION"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				return errNoSession
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Orders.Checkout(cmd.Context(), token))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}

	get := &cobra.Command{
		Use:   "get <order-id>",
		Short: "Show any order (privileged)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args[0], "order-id")
			if err != nil {
				return err
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Orders.ByID(cmd.Context(), id))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}

	invoice := &cobra.Command{
		Use:   "invoice <order-id>",
		Short: "Show the invoice of an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args[0], "order-id")
			if err != nil {
				return err
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Orders.Invoice(cmd.Context(), id))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}

	countries := &cobra.Command{
		Use:   "delivery-countries",
		Short: "List the countries orders can be delivered to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Orders.DeliveryCountries(cmd.Context()))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}

	root.AddCommand(set, pending, checkout, get, invoice, countries)
	return root
}

func paymentCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "payment",
		Short: "Payment methods and payment execution",
	}

	methods := &cobra.Command{
		Use:   "methods",
		Short: "List the available payment methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, c, err := setup()
			if err != nil {
				return err
			}
			list, err := result(c.Payments.Methods(cmd.Context()))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), list)
			}
			return printPaymentMethods(cmd.OutOrStdout(), list)
		},
	}

	var rawArgs string
	pay := &cobra.Command{
		Use:     "do <order-id>",
		Short:   "Start the payment of an order",
		Example: `  sleekctl payment do 1001 --args '{"success_url": "https://shop.example.com/ok"}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := intArg(args[0], "order-id")
			if err != nil {
				return err
			}
			var payArgs map[string]any
			if err := json.Unmarshal([]byte(rawArgs), &payArgs); err != nil {
				return fmt.Errorf("parsing args: %w", err)
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			res, err := result(c.Payments.Do(cmd.Context(), id, payArgs))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			tw := newTabWriter(cmd.OutOrStdout())
			tw.writef("Method:\t%s\n", res.Method)
			tw.writef("Status:\t%s\n", res.Status)
			if res.Redirect != "" {
				tw.writef("Redirect:\t%s\n", res.Redirect)
			}
			return tw.finish()
		},
	}
	pay.Flags().StringVar(&rawArgs, "args", "{}", "payment args JSON")

	root.AddCommand(methods, pay)
	return root
}
