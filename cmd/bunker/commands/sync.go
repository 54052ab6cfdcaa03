package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [product...]",
	Short: "예측 스냅샷 동기화",
	Long: `예측 API에서 제품별 예측을 받아 DB 스냅샷으로 저장합니다.
제품을 지정하지 않으면 PRODUCTS 전체를 동기화합니다.

Example:
  go run ./cmd/bunker sync
  go run ./cmd/bunker sync VLSFO MGO`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := newApp(ctx, appOptions{withDB: true, source: sourceDB})
	if err != nil {
		return err
	}
	defer a.Close()

	products := args
	if len(products) == 0 {
		products = a.service.Products()
	}

	PrintDoubleSeparator()
	fmt.Printf("  Forecast Sync : %s\n", strings.Join(products, ", "))
	PrintSeparator()

	start := time.Now()
	failed := 0
	for i, product := range products {
		saved, err := a.service.Refresh(ctx, product)
		if err != nil {
			failed++
			PrintError(fmt.Sprintf("%s: %v", product, err))
			continue
		}
		PrintProgress("Sync", fmt.Sprintf("%s: %d forecasts stored", strings.ToUpper(product), saved), i+1, len(products))
	}

	fmt.Println()
	if failed > 0 {
		return fmt.Errorf("%d of %d products failed", failed, len(products))
	}
	PrintSuccess(fmt.Sprintf("Synced %d products in %.2fs", len(products), time.Since(start).Seconds()))
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
