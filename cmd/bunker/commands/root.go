package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "bunker",
	Short: "BunkerWatch - 벙커유 구매 윈도우 추천",
	Long: `BunkerWatch Unified CLI

예측 API의 유가 예측으로 DON(구매 지시일) 윈도우별
Nominate / Waiting 추천 보드를 계산합니다.

Usage:
  go run ./cmd/bunker [command]

Examples:
  go run ./cmd/bunker api
  go run ./cmd/bunker board VLSFO
  go run ./cmd/bunker sync
  go run ./cmd/bunker scheduler start`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug 로그 출력")
}
