package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// snapshotsCmd represents the snapshots command
var snapshotsCmd = &cobra.Command{
	Use:   "snapshots <product>",
	Short: "저장된 예측 스냅샷 목록",
	Long: `DB에 저장된 제품별 예측 스냅샷(기준일별 행 수)을 최신순으로 출력합니다.

Example:
  go run ./cmd/bunker snapshots VLSFO --limit 5`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshots,
}

var snapshotsLimit int

func init() {
	rootCmd.AddCommand(snapshotsCmd)

	snapshotsCmd.Flags().IntVar(&snapshotsLimit, "limit", 10, "최대 스냅샷 수")
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := newApp(ctx, appOptions{withDB: true, source: sourceDB})
	if err != nil {
		return err
	}
	defer a.Close()

	product, err := a.service.NormalizeProduct(args[0])
	if err != nil {
		return err
	}

	infos, err := a.repo.ListSnapshots(ctx, product, snapshotsLimit)
	if err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}

	if len(infos) == 0 {
		PrintWarning(fmt.Sprintf("No snapshots for %s (run: bunker sync %s)", product, strings.ToLower(product)))
		return nil
	}

	widths := []int{12, 6, 20}
	PrintTableHeader(stdout, []string{"AS OF", "ROWS", "FETCHED AT"}, widths)
	for _, info := range infos {
		PrintTableRow(stdout, []string{
			info.AsOfDate.Format("2006-01-02"),
			strconv.Itoa(info.Rows),
			info.FetchedAt.Local().Format("2006-01-02 15:04:05"),
		}, widths)
	}
	return nil
}
