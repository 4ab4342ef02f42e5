package services

import (
	"context"
	"log"
	"time"

	"rewardhub/internal/adapters/persistence/repositories"
	"rewardhub/internal/pkg/clock"

	"github.com/robfig/cron/v3"
)

// Cron schedules, evaluated in the reward timezone
const (
	DailyRolloverSpec = "0 0 * * *"
	ExpirySweepSpec   = "@every 15m"
	TokenCleanupSpec  = "30 3 * * *"
)

// jobTimeout bounds a single scheduled run
const jobTimeout = 2 * time.Minute

// CronService runs the background maintenance jobs
type CronService struct {
	cron     *cron.Cron
	wallets  *WalletService
	earnings *EarningService
	store    *repositories.Store
	clock    clock.Clock
}

// NewCronService creates a new cron service
func NewCronService(store *repositories.Store, clk clock.Clock, wallets *WalletService, earnings *EarningService, loc *time.Location) *CronService {
	if loc == nil {
		loc = time.Local
	}
	return &CronService{
		cron:     cron.New(cron.WithLocation(loc), cron.WithChain(cron.Recover(cron.DefaultLogger))),
		wallets:  wallets,
		earnings: earnings,
		store:    store,
		clock:    clk,
	}
}

// Register adds every job to the schedule
func (s *CronService) Register() error {
	jobs := []struct {
		spec string
		name string
		run  func(ctx context.Context) error
	}{
		{DailyRolloverSpec, "daily rollover", s.RunDailyRollover},
		{ExpirySweepSpec, "expiry sweep", s.RunExpirySweep},
		{TokenCleanupSpec, "token cleanup", s.RunTokenCleanup},
	}

	for _, j := range jobs {
		job := j
		if _, err := s.cron.AddFunc(job.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
			defer cancel()
			if err := job.run(ctx); err != nil {
				log.Printf("❌ Cron %s failed: %v", job.name, err)
			}
		}); err != nil {
			return err
		}
	}
	return nil
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if err := s.Register(); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("🚀 CronService started (%d jobs)", len(s.cron.Entries()))
	return nil
}

// Stop waits for running jobs to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// Entries exposes the scheduled jobs
func (s *CronService) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunDailyRollover moves today's income into yesterday
func (s *CronService) RunDailyRollover(ctx context.Context) error {
	_, err := s.wallets.RolloverDaily(ctx)
	return err
}

// RunExpirySweep marks holdings past validity as expired
func (s *CronService) RunExpirySweep(ctx context.Context) error {
	_, err := s.earnings.ExpireHoldings(ctx)
	return err
}

// RunTokenCleanup deletes expired refresh tokens
func (s *CronService) RunTokenCleanup(ctx context.Context) error {
	n, err := s.store.RefreshTokens.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("🧹 Deleted %d expired refresh tokens", n)
	}
	return nil
}
