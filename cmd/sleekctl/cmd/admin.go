package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/sleekshop-go/pkg/sleekshop"
)

func warehouseCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "warehouse",
		Short: "Manage warehouse stock (privileged)",
		Long:  "Book stock in and out of warehouse entities. Requires licence_secret_key.",
	}

	var entity sleekshop.WarehouseEntityInput
	var attrs string
	create := &cobra.Command{
		Use:     "create-entity <name>",
		Short:   "Create a warehouse entity",
		Example: `  sleekctl warehouse create-entity "Shelf A" --class storage`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity.Name = args[0]
			if err := json.Unmarshal([]byte(attrs), &entity.Attributes); err != nil {
				return fmt.Errorf("parsing attributes: %w", err)
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Warehouse.CreateEntity(cmd.Context(), entity))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}
	create.Flags().StringVar(&entity.Class, "class", "", "entity class")
	create.Flags().IntVar(&entity.ManufacturerID, "manufacturer", 0, "manufacturer id")
	create.Flags().StringVar(&attrs, "attributes", "{}", "attributes JSON")

	place := &cobra.Command{
		Use:     "place <entity-id> <product-id> <quantity>",
		Short:   "Book units of a product into a warehouse entity",
		Example: `  sleekctl warehouse place 3 42 10`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, len(args))
			for i, name := range []string{"entity-id", "product-id", "quantity"} {
				n, err := intArg(args[i], name)
				if err != nil {
					return err
				}
				ids[i] = n
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Warehouse.InventoryPlace(cmd.Context(), ids[0], ids[1], ids[2]))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}

	var note string
	take := &cobra.Command{
		Use:   "take <storage> <element-number> <quantity>",
		Short: "Book units of an element out of storage",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			qty, err := intArg(args[2], "quantity")
			if err != nil {
				return err
			}
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Warehouse.InventoryTake(cmd.Context(), args[0], args[1], qty, note))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}
	take.Flags().StringVar(&note, "note", "", "booking note")

	root.AddCommand(create, place, take)
	return root
}

func webhooksCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "webhooks",
		Short: "Manage webhooks (privileged)",
	}

	create := &cobra.Command{
		Use:     "create <name> <event>",
		Short:   "Register a webhook for an event",
		Example: `  sleekctl webhooks create order-hook ORDER_CREATED`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Webhooks.Create(cmd.Context(), args[0], args[1]))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}

	var parameter string
	update := &cobra.Command{
		Use:     "update <name> <url>",
		Short:   "Set the target URL of a webhook",
		Example: `  sleekctl webhooks update order-hook https://hooks.example.com/orders`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Webhooks.Update(cmd.Context(), args[0], args[1], parameter))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	}
	update.Flags().StringVar(&parameter, "parameter", "", "parameter sent with each call")

	root.AddCommand(create, update)
	return root
}

func serverCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "server",
		Short: "Backend status",
	}
	root.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the backend status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, c, err := setup()
			if err != nil {
				return err
			}
			raw, err := result(c.Server.Status(cmd.Context()))
			if err != nil {
				return err
			}
			return outputRaw(cmd.OutOrStdout(), raw)
		},
	})
	return root
}
