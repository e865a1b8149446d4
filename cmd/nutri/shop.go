package nutri

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/nutri-cli/internal/model"
	"github.com/saadjs/nutri-cli/internal/screen"
	"github.com/saadjs/nutri-cli/internal/view"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Manage shopping lists",
}

func printList(cmd *cobra.Command, l model.ShoppingList) {
	out := cmd.OutOrStdout()
	done, total := view.Progress(l)
	fmt.Fprintf(out, "#%d %s (%d/%d) %s\n", l.ID, l.Title, done, total, view.FormatDate(l.CreatedAt))
	for _, it := range l.Items {
		fmt.Fprintf(out, "  %s %d %s\n", view.Check(it.Checked), it.ID, it.Name)
	}
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every list, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			shop := screen.NewShopping(e.client, e.log)
			if err := shop.Load(ctx); err != nil {
				return err
			}
			lists := shop.Lists()
			if len(lists) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shopping lists")
				return nil
			}
			for _, l := range lists {
				printList(cmd, l)
			}
			return nil
		})
	},
}

var shopNewCmd = &cobra.Command{
	Use:   "new <title> [item]...",
	Short: "Create a list, optionally with items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			l, err := screen.NewShopping(e.client, e.log).CreateList(ctx, args[0], args[1:]...)
			if err != nil {
				return err
			}
			printList(cmd, l)
			return nil
		})
	},
}

var shopRmCmd = &cobra.Command{
	Use:   "rm <list-id>",
	Short: "Delete a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("list id", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := screen.NewShopping(e.client, e.log).DeleteList(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted list %d\n", id)
			return nil
		})
	},
}

var shopAddCmd = &cobra.Command{
	Use:   "add <list-id> <item>",
	Short: "Add an item to a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("list id", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			it, err := screen.NewShopping(e.client, e.log).AddItem(ctx, id, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %d %q\n", it.ID, it.Name)
			return nil
		})
	},
}

var shopToggleCmd = &cobra.Command{
	Use:   "toggle <item-id>",
	Short: "Check or uncheck an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("item id", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			it, err := screen.NewShopping(e.client, e.log).ToggleItem(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", view.Check(it.Checked), it.Name)
			return nil
		})
	},
}

var shopRmItemCmd = &cobra.Command{
	Use:   "rm-item <item-id>",
	Short: "Remove an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("item id", args[0])
		if err != nil {
			return err
		}
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			if err := screen.NewShopping(e.client, e.log).RemoveItem(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %d\n", id)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(shopCmd)
	shopCmd.AddCommand(shopListCmd, shopNewCmd, shopRmCmd, shopAddCmd, shopToggleCmd, shopRmItemCmd)
}

