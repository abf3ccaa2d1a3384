package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahmed88lk/KindnessChain/internal/client"
)

func newActsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acts",
		Short: "Browse and create kindness acts",
	}
	cmd.AddCommand(newActsListCommand(), newActsAddCommand(), newActsReactCommand())
	return cmd
}

func newActsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the kindness feed, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			acts, err := api.ListActs(cmd.Context())
			if err != nil {
				return err
			}
			for _, act := range acts {
				author := "anonymous"
				if act.Author != nil {
					author = act.Author.Name
				}
				fmt.Printf("%s  [%s] %s - %s (%d reactions)\n",
					act.ID, act.Category, act.Title, author, act.Reactions.Total())
			}
			return nil
		},
	}
}

func newActsAddCommand() *cobra.Command {
	var title, description, category string
	var tags []string
	var anonymous bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new act of kindness",
		RunE: func(cmd *cobra.Command, args []string) error {
			act, err := api.CreateAct(cmd.Context(), client.CreateActRequest{
				Title:       title,
				Description: description,
				Category:    category,
				Tags:        tags,
				Anonymous:   anonymous,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Created act %s\n", act.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "short title")
	cmd.Flags().StringVar(&description, "description", "", "what happened")
	cmd.Flags().StringVar(&category, "category", "", "act category")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma-separated tags")
	cmd.Flags().BoolVar(&anonymous, "anonymous", false, "hide your identity on the feed")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("description")
	cmd.MarkFlagRequired("category")

	return cmd
}

func newActsReactCommand() *cobra.Command {
	var reaction string

	cmd := &cobra.Command{
		Use:   "react <act-id>",
		Short: "React to an act",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.ReactToAct(cmd.Context(), args[0], reaction)
			if err != nil {
				return err
			}
			fmt.Printf("hearts=%d inspired=%d thanks=%d\n",
				result.Reactions.Hearts, result.Reactions.Inspired, result.Reactions.Thanks)
			return nil
		},
	}

	cmd.Flags().StringVar(&reaction, "type", "hearts", "reaction type: hearts, inspired or thanks")
	return cmd
}
