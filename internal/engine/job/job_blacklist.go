package job

import (
	"github.com/corrigo/corrigo/internal/engine/repo"
	"github.com/corrigo/corrigo/pkg/log"
	"github.com/corrigo/corrigo/pkg/safe"
	"github.com/robfig/cron"
)

// BlacklistRefreshSpec keeps the cached active-word set from drifting
// too far from the table when several instances mutate it.
const BlacklistRefreshSpec = "@every 5m"

type BlacklistJob struct {
	blacklistRepo repo.IBlacklistRepository
	cron          *cron.Cron
}

func NewBlacklistJob(blacklistRepo repo.IBlacklistRepository) *BlacklistJob {
	return &BlacklistJob{
		blacklistRepo: blacklistRepo,
		cron:          cron.New(),
	}
}

func (j *BlacklistJob) Start() error {
	if err := j.cron.AddFunc(BlacklistRefreshSpec, func() { safe.Do(j.refresh) }); err != nil {
		return err
	}
	j.cron.Start()
	safe.Do(j.refresh)
	return nil
}

func (j *BlacklistJob) Stop() {
	j.cron.Stop()
}

func (j *BlacklistJob) refresh() {
	if err := j.blacklistRepo.RefreshCache(); err != nil {
		log.Errorf("refresh blacklist cache: %v", err)
		return
	}
	log.Debug("blacklist cache refreshed")
}
