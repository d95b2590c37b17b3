package jobs

import (
	"context"
	"time"

	"github.com/rafabene/blog-backend/internal/domain/ports"
	"github.com/rafabene/blog-backend/internal/domain/repositories"
)

// TokenCleanupJob remove códigos de verificação e tokens de reset vencidos
type TokenCleanupJob struct {
	users   repositories.UserRepository
	logger  ports.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewTokenCleanupJob cria um novo TokenCleanupJob
func NewTokenCleanupJob(users repositories.UserRepository, logger ports.Logger) *TokenCleanupJob {
	return &TokenCleanupJob{
		users:   users,
		logger:  logger.With("job", "token_cleanup"),
		timeout: time.Minute,
		now:     time.Now,
	}
}

// Run implementa cron.Job
func (j *TokenCleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cleared, err := j.users.ClearExpiredTokens(ctx, j.now())
	if err != nil {
		j.logger.Error("failed to clear expired tokens", "error", err)
		return
	}

	if cleared > 0 {
		j.logger.Info("expired tokens cleared", "count", cleared)
	}
}
