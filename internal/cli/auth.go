package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRegisterCommand() *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account and print the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Registered %s (%s)\n", result.User.Name, result.User.ID)
			fmt.Printf("Token: %s\n", result.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := api.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s (%d coins, %d day streak)\n",
				result.User.Name, result.User.KindnessCoins, result.User.KindnessStreak)
			fmt.Printf("Token: %s\n", result.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func newMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := api.Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%s <%s>\n", profile.Name, profile.Email)
			fmt.Printf("Role: %s\n", profile.Role)
			fmt.Printf("Acts: %d  Coins: %d  Streak: %d\n",
				profile.Acts, profile.KindnessCoins, profile.KindnessStreak)
			fmt.Printf("Joined challenges: %d\n", len(profile.JoinedChallenges))
			return nil
		},
	}
}
