package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/bunkerwatch/backend/internal/api"
	"github.com/wonny/bunkerwatch/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 구매 윈도우 보드 조회 엔드포인트 제공
- 사용자 설정(즐겨찾기, 색상) 엔드포인트 제공

Endpoints:
  GET    /health                              - Health check
  GET    /api/procurement                     - 제품 목록
  GET    /api/procurement/{product}           - 전체 보드
  GET    /api/procurement/{product}/summary   - 요약 테이블
  POST   /api/procurement/{product}/refresh   - 예측 스냅샷 갱신
  GET    /api/settings                        - 사용자 설정
  PUT    /api/settings/favorites/{product}    - 즐겨찾기 추가
  DELETE /api/settings/favorites/{product}    - 즐겨찾기 제거
  PUT    /api/settings/color-scheme           - 색상 변경

Example:
  go run ./cmd/bunker api
  go run ./cmd/bunker api --port 8090`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== BunkerWatch API Server ===")

	ctx := commandContext(cmd)
	a, err := newApp(ctx, appOptions{withDB: true, source: sourceDB})
	if err != nil {
		return err
	}
	defer a.Close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	a.log.WithFields(map[string]interface{}{
		"port":     a.cfg.Port,
		"env":      a.cfg.Env,
		"products": a.cfg.Procurement.Products,
	}).Info("Initializing API server")

	router := api.NewRouter(
		handlers.NewProcurementHandler(a.service, a.log),
		handlers.NewSettingsHandler(a.settings, a.log),
		a.log,
	)
	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}

	a.log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
