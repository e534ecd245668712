package main

import (
	"fmt"

	"ai-pitch-evaluator-be/internal/dto"

	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the current ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		var res dto.LeaderboardResponse
		if err := newAPIClient(baseURL).get(cmd.Context(), "/leaderboard", &res); err != nil {
			return err
		}
		for _, e := range res.Entries {
			fmt.Printf("%3d. %-20s %6.1f  %s\n", e.Rank, e.UserName, e.TotalScore, e.IdeaName)
		}
		fmt.Printf("%d entries\n", res.TotalCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
}
