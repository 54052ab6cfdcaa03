package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/bunkerwatch/backend/internal/scheduler"
	"github.com/wonny/bunkerwatch/backend/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 관리",
	Long: `스케줄러를 시작하거나 작업을 관리합니다.

Subcommands:
  start   - 스케줄러 시작
  list    - 등록된 작업 목록
  run     - 특정 작업 즉시 실행 (완료까지 대기)

Example:
  go run ./cmd/bunker scheduler start
  go run ./cmd/bunker scheduler list
  go run ./cmd/bunker scheduler run forecast_sync`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "스케줄러 시작",
		Long: `스케줄러를 시작하고 등록된 모든 작업을 스케줄합니다.

등록되는 작업:
- forecast_sync: SYNC_SCHEDULE (기본 6시간마다, 예측 동기화 + 보드 캐시 워밍)
- snapshot_prune: PRUNE_SCHEDULE (기본 매일 03:30, 오래된 스냅샷 정리)
- cache_cleanup: 5분마다 (Redis 비활성 시 메모리 보드 캐시 정리)

스케줄러는 Ctrl+C로 종료할 수 있습니다.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "등록된 작업 목록",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "특정 작업 즉시 실행",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== BunkerWatch Scheduler ===")

	a, sched, err := initScheduler(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	sched.Start()

	fmt.Println("\n✅ Scheduler started successfully")
	fmt.Println("\nRegistered jobs:")
	PrintList(sched.GetAllJobs())
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	fmt.Println("Scheduler stopped")

	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	a, sched, err := initScheduler(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stats := sched.GetJobStats()

	fmt.Println("Registered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		PrintKeyValue(jobName, stats[jobName].Schedule, 16)
	}

	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	jobName := args[0]
	fmt.Printf("Running job: %s\n", jobName)

	a, sched, err := initScheduler(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := sched.RunJobSync(commandContext(cmd), jobName)
	if err != nil {
		return fmt.Errorf("run job: %w", err)
	}

	PrintSuccess(fmt.Sprintf("Job %s completed in %.2fs (%d attempt(s))", jobName, result.Duration.Seconds(), result.Attempts))
	return nil
}

func initScheduler(cmd *cobra.Command) (*app, *scheduler.Scheduler, error) {
	a, err := newApp(commandContext(cmd), appOptions{withDB: true, source: sourceDB})
	if err != nil {
		return nil, nil, err
	}

	sched := scheduler.New(a.log, scheduler.DefaultOptions())

	register := []scheduler.Job{
		jobs.NewForecastSyncJob(a.service, a.cfg.Procurement.SyncSchedule, a.log),
		jobs.NewSnapshotPruneJob(a.repo, a.cfg.Procurement.RetentionDays, a.cfg.Procurement.PruneSchedule, a.log),
	}
	if a.memCache != nil {
		register = append(register, jobs.NewCacheCleanupJob(a.memCache, a.log))
	}
	for _, job := range register {
		if err := sched.AddJob(job); err != nil {
			a.Close()
			return nil, nil, fmt.Errorf("register job: %w", err)
		}
	}

	return a, sched, nil
}
