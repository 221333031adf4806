package maintenance

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/avelarm/taskbox-be/internal/services"
)

// Pruner periodically removes aged audit events so the audit table
// stays bounded.
type Pruner struct {
	audit     services.AuditServiceProvider
	retention time.Duration
	cron      *cron.Cron
}

// NewPruner creates a pruner that keeps audit events for the given
// retention window.
func NewPruner(audit services.AuditServiceProvider, retention time.Duration) *Pruner {
	return &Pruner{
		audit:     audit,
		retention: retention,
		cron:      cron.New(),
	}
}

// Run starts the hourly pruning schedule. It runs once immediately so a
// long-stopped instance catches up on start.
func (p *Pruner) Run() {
	log.Info().Dur("retention", p.retention).Msg("Starting audit pruner")
	p.prune()

	if _, err := p.cron.AddFunc("@hourly", p.prune); err != nil {
		log.Error().Err(err).Msg("Failed to schedule audit pruning")
		return
	}
	p.cron.Start()
}

// Stop halts the pruning schedule, waiting for an in-flight run.
func (p *Pruner) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Stopped audit pruner")
}

func (p *Pruner) prune() {
	removed, err := p.audit.Prune(p.retention)
	if err != nil {
		log.Error().Err(err).Msg("Failed to prune audit events")
		return
	}
	if removed > 0 {
		log.Info().Int64("removed", removed).Msg("Pruned aged audit events")
	}
}
