package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	domain "github.com/donaldgifford/sleekshop-go/pkg/types"
)

func userCmd() *cobra.Command {
	var token string
	root := &cobra.Command{
		Use:   "user",
		Short: "Log in and inspect user accounts",
	}
	root.PersistentFlags().StringVar(&token, "session", "", "session token")

	login := &cobra.Command{
		Use:   "login <username>",
		Short: "Bind a user to a session",
		Long: "Log a user in on the given session. The password is read from\n" +
			"SLEEKCTL_PASSWORD.",
		Example: `  SLEEKCTL_PASSWORD=secret sleekctl user login alice --session "$SESSION"`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				return errNoSession
			}
			password := viper.GetString("password")
			if password == "" {
				return fmt.Errorf("SLEEKCTL_PASSWORD is not set")
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			res, err := result(c.Users.Login(cmd.Context(), token, args[0], password))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (id %d)\n", res.Username, res.UserID)
			return nil
		},
	}

	logout := &cobra.Command{
		Use:   "logout",
		Short: "Unbind the user from a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				return errNoSession
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			res, err := result(c.Users.Logout(cmd.Context(), token))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), res.Status)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show [user-id]",
		Short: "Show the logged in user, or any user by id",
		Example: `  sleekctl user show --session "$SESSION"
  sleekctl user show 17`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := setup()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var (
				env     *domain.Envelope[domain.User]
				callErr error
			)
			if len(args) == 1 {
				id, err := intArg(args[0], "user-id")
				if err != nil {
					return err
				}
				env, callErr = c.Users.ByID(ctx, id)
			} else {
				if token == "" {
					return errNoSession
				}
				env, callErr = c.Users.Data(ctx, token)
			}
			u, err := result(env, callErr)
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), u)
			}
			return printUser(cmd.OutOrStdout(), &u)
		},
	}

	orders := &cobra.Command{
		Use:   "orders",
		Short: "List the orders of the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if token == "" {
				return errNoSession
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			list, err := result(c.Users.Orders(cmd.Context(), token))
			if err != nil {
				return err
			}
			if jsonOutput() {
				return outputJSON(cmd.OutOrStdout(), list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orders found.")
				return nil
			}
			return printUserOrders(cmd.OutOrStdout(), list)
		},
	}

	root.AddCommand(login, logout, show, orders)
	return root
}
