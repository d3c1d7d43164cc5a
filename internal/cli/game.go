package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Catalog commands",
	}

	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameNewCmd())
	cmd.AddCommand(newGameUpdateCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			var games []Game
			if err := client.Get("/game/all", &games); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(games)
			return nil
		},
	}
}

func newGameNewCmd() *cobra.Command {
	var name, author, releaseDate, category, description string
	var price int

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Add a game to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":        name,
				"author":      author,
				"releaseDate": releaseDate,
				"category":    category,
			}
			if description != "" {
				req["description"] = description
			}
			if price > 0 {
				req["price"] = price
			}

			var created Game
			if err := client.Post("/game/new", req, &created); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(created)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (required)")
	cmd.Flags().StringVar(&author, "author", "", "Game author (required)")
	cmd.Flags().StringVar(&releaseDate, "release-date", "", "Release date, e.g. 2023-06-01 (required)")
	cmd.Flags().StringVar(&category, "category", "", "Category: moba, roleplay or sandbox (required)")
	cmd.Flags().StringVar(&description, "description", "", "Game description")
	cmd.Flags().IntVar(&price, "price", 0, "Price")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("author")
	_ = cmd.MarkFlagRequired("release-date")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func newGameUpdateCmd() *cobra.Command {
	var name, author, releaseDate, description string
	var price int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a catalog entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Only send what the caller set, the rest stays untouched
			req := map[string]any{}
			if cmd.Flags().Changed("name") {
				req["name"] = name
			}
			if cmd.Flags().Changed("author") {
				req["author"] = author
			}
			if cmd.Flags().Changed("release-date") {
				req["releaseDate"] = releaseDate
			}
			if cmd.Flags().Changed("description") {
				req["description"] = description
			}
			if cmd.Flags().Changed("price") {
				req["price"] = price
			}

			var updated Game
			if err := client.Patch("/game/update/"+args[0], req, &updated); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&author, "author", "", "New author")
	cmd.Flags().StringVar(&releaseDate, "release-date", "", "New release date")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().IntVar(&price, "price", 0, "New price")

	return cmd
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a game from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/game/delete/" + args[0]); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Deleted %s", args[0]))
			return nil
		},
	}
}
