package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// boardCmd represents the board command
var boardCmd = &cobra.Command{
	Use:   "board <product>",
	Short: "구매 윈도우 보드 출력",
	Long: `제품의 DON 윈도우별 추천(Nominate/Waiting)과 가격 그리드를 출력합니다.

--source db  : 마지막으로 저장된 스냅샷 (기본)
--source api : 예측 API에서 직접 조회 (DB 불필요)

Example:
  go run ./cmd/bunker board VLSFO
  go run ./cmd/bunker board mgo --source api --rows 10
  go run ./cmd/bunker board HSFO --json`,
	Args: cobra.ExactArgs(1),
	RunE: runBoard,
}

var (
	boardSource string
	boardRows   int
	boardJSON   bool
)

func init() {
	rootCmd.AddCommand(boardCmd)

	boardCmd.Flags().StringVar(&boardSource, "source", sourceDB, "예측 소스 (db|api)")
	boardCmd.Flags().IntVar(&boardRows, "rows", 0, "최대 행 수 (기본: PROCUREMENT_MAX_ROWS)")
	boardCmd.Flags().BoolVar(&boardJSON, "json", false, "JSON 출력")
}

func runBoard(cmd *cobra.Command, args []string) error {
	if boardSource != sourceDB && boardSource != sourceAPI {
		return fmt.Errorf("invalid --source %q (valid: db, api)", boardSource)
	}

	ctx := commandContext(cmd)
	a, err := newApp(ctx, appOptions{withDB: boardSource == sourceDB, source: boardSource})
	if err != nil {
		return err
	}
	defer a.Close()

	board, err := a.service.Board(ctx, args[0], boardRows)
	if err != nil {
		return fmt.Errorf("build board: %w", err)
	}

	if boardJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(board)
	}

	PrintBoard(os.Stdout, board)
	return nil
}
