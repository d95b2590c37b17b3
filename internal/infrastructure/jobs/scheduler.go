package jobs

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/rafabene/blog-backend/internal/domain/ports"
)

// Scheduler agenda os jobs periódicos da aplicação
type Scheduler struct {
	cron   *cron.Cron
	logger ports.Logger
}

// NewScheduler cria um Scheduler; jobs em execução nunca se sobrepõem
func NewScheduler(logger ports.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger: logger,
	}
}

// Add agenda um job com uma expressão cron ou descritor (@hourly, @every 10m)
func (s *Scheduler) Add(schedule string, job cron.Job) error {
	if _, err := s.cron.AddJob(schedule, job); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	s.logger.Info("job scheduled", "schedule", schedule)
	return nil
}

// Start inicia o agendador em background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop para o agendador e espera os jobs em execução terminarem
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
