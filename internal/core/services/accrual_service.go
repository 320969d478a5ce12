package services

import (
	"context"
	"log"

	"fundtrack/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// AccrualService runs the monthly dues accrual: on schedule, every active
// member's due balance grows by one monthly amount. Disabled by default;
// see ACCRUAL_ENABLED.
type AccrualService struct {
	memberRepo repositories.MemberRepository
	spec       string
	cron       *cron.Cron
}

// NewAccrualService creates a new accrual service
func NewAccrualService(memberRepo repositories.MemberRepository, spec string) *AccrualService {
	return &AccrualService{
		memberRepo: memberRepo,
		spec:       spec,
	}
}

// Start schedules the accrual job
func (s *AccrualService) Start() error {
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.spec, s.runAccrual); err != nil {
		return err
	}
	s.cron.Start()

	log.Printf("🚀 AccrualService started [spec: %s]", s.spec)
	return nil
}

// Stop stops the scheduler, waiting for a running job to finish
func (s *AccrualService) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("🛑 AccrualService stopped")
}

func (s *AccrualService) runAccrual() {
	n, err := s.memberRepo.AccrueMonthlyDues(context.Background())
	if err != nil {
		log.Printf("❌ Dues accrual failed: %v", err)
		return
	}
	log.Printf("✅ Dues accrued for %d active members", n)
}
