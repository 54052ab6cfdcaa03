package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "연결 상태 확인",
	Long: `DB / Redis / 예측 API 설정 상태를 출력합니다.

Example:
  go run ./cmd/bunker status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := newApp(ctx, appOptions{withDB: true, source: sourceDB})
	if err != nil {
		PrintError(err.Error())
		return err
	}
	defer a.Close()

	health := a.db.HealthCheck(ctx)

	PrintDoubleSeparator()
	fmt.Println("  BunkerWatch Status")
	PrintSeparator()
	PrintKeyValue("Env", a.cfg.Env, 14)
	PrintKeyValue("Products", fmt.Sprint(a.cfg.Procurement.Products), 14)
	PrintKeyValue("Forecast API", a.cfg.ForecastAPI.BaseURL, 14)
	PrintKeyValue("Database", healthLabel(health.Healthy, health.Error), 14)
	PrintKeyValue("DB conns", fmt.Sprintf("%d/%d (idle %d)", health.AcquiredConns, health.MaxConns, health.IdleConns), 14)
	PrintKeyValue("DB latency", health.ResponseTime.String(), 14)
	PrintKeyValue("Redis", healthLabel(a.redis.Enabled(), "disabled (memory board cache)"), 14)
	if a.memCache != nil {
		stats := a.memCache.Stats()
		PrintKeyValue("Board cache", fmt.Sprintf("memory, %d fresh / %d stale (%d bytes)", stats.FreshCount, stats.StaleCount, stats.Bytes), 14)
	}
	PrintDoubleSeparator()

	return nil
}

func healthLabel(ok bool, reason string) string {
	if ok {
		return "✅ ok"
	}
	return "❌ " + reason
}
