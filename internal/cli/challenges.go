package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChallengesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "Browse and join challenges",
	}
	cmd.AddCommand(newChallengesListCommand(), newChallengesJoinCommand())
	return cmd
}

func newChallengesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available challenges",
		RunE: func(cmd *cobra.Command, args []string) error {
			challenges, err := api.ListChallenges(cmd.Context())
			if err != nil {
				return err
			}
			for _, c := range challenges {
				status := ""
				if c.Expired {
					status = " (expired)"
				}
				fmt.Printf("%s  [%s/%s] %s - %d pts, %d participants, until %s%s\n",
					c.ID, c.Category, c.Difficulty, c.Title, c.Points,
					c.Participants, c.Deadline.Format("2006-01-02"), status)
			}
			return nil
		},
	}
}

func newChallengesJoinCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "join <challenge-id>",
		Short: "Join a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.JoinChallenge(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Joined %q (%d participants)\n",
				result.Challenge.Title, result.Challenge.Participants)
			return nil
		},
	}
}

func newLeaderboardCommand() *cobra.Command {
	var leaderboardType string
	var limit int

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the community leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := api.Leaderboard(cmd.Context(), leaderboardType, limit)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%2d. %s - %d\n", e.Rank, e.Name, e.Score)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&leaderboardType, "type", "acts", "ranking type: acts or coins")
	cmd.Flags().IntVar(&limit, "limit", 10, "number of entries")
	return cmd
}

func newSuggestionsCommand() *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Fetch kindness act suggestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			suggestions, err := api.Suggestions(cmd.Context(), language)
			if err != nil {
				return err
			}
			for _, s := range suggestions {
				fmt.Println("-", s)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "en", "suggestion language")
	return cmd
}
