// Package cli implements the kindnessctl command line interface over the
// REST API client.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ahmed88lk/KindnessChain/internal/client"
)

var (
	serverURL string
	authToken string
	api       *client.Client
)

func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "kindnessctl",
		Short: "Command line client for the KindnessChain API",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			api = client.New(serverURL)
			if authToken != "" {
				api.SetToken(authToken)
			}
		},
	}

	defaultServer := os.Getenv("KINDNESS_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:5000"
	}

	root.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "API base URL")
	root.PersistentFlags().StringVar(&authToken, "token", os.Getenv("KINDNESS_TOKEN"), "bearer token for authenticated calls")

	root.AddCommand(
		newRegisterCommand(),
		newLoginCommand(),
		newMeCommand(),
		newActsCommand(),
		newChallengesCommand(),
		newLeaderboardCommand(),
		newSuggestionsCommand(),
	)

	return root
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
