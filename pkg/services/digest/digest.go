package digest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/vedic-tools/jyotish-atlas/pkg/adapters"
	"github.com/vedic-tools/jyotish-atlas/pkg/models/domain"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/transit"
	"github.com/vedic-tools/jyotish-atlas/pkg/services/zodiac"
	"github.com/vedic-tools/jyotish-atlas/pkg/store/sqlite/history"
)

// Job computes the upcoming sign changes of a fixed set of bodies and
// writes a one-line digest to the log and the calculation history.
type Job struct {
	transits transit.Service
	recorder history.Recorder
	bodies   []domain.Body
	loc      *time.Location
	now      func() time.Time
}

func NewJob(transits transit.Service, recorder history.Recorder, bodies []domain.Body, loc *time.Location) *Job {
	if recorder == nil {
		recorder = history.NewNoopRecorder()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Job{
		transits: transits,
		recorder: recorder,
		bodies:   bodies,
		loc:      loc,
		now:      time.Now,
	}
}

// Run produces one digest for the current instant.
func (j *Job) Run(ctx context.Context) (string, error) {
	logger := zerolog.Ctx(ctx)

	changes, err := j.transits.SignChanges(ctx, transit.Request{
		Subject: "digest",
		At:      j.now(),
		Bodies:  j.bodies,
	})
	if err != nil {
		return "", fmt.Errorf("digest sign changes: %w", err)
	}

	summary := Summarize(changes, j.loc)
	logger.Info().Str("digest", summary).Msg("transit digest")

	_, err = j.recorder.Record(ctx, adapters.MapDomainRecordToStore(domain.CalculationRecord{
		Kind:    domain.CalculationDigest,
		Subject: "digest",
		Summary: summary,
	}))
	if err != nil {
		logger.Warn().Err(err).Msg("failed to record digest")
	}
	return summary, nil
}

// Summarize renders the next crossing of every body, earliest first.
func Summarize(changes []domain.SignChange, loc *time.Location) string {
	ordered := make([]domain.SignChange, len(changes))
	copy(ordered, changes)
	sort.SliceStable(ordered, func(i, k int) bool {
		return ordered[i].Next.JulianDay < ordered[k].Next.JulianDay
	})

	lines := make([]string, 0, len(ordered))
	for _, c := range ordered {
		to := zodiac.SignName(domain.SignFromIndex(c.Next.ToSign), zodiac.LangEnglish)
		when := c.Next.Time.In(loc).Format("2006-01-02 15:04 MST")
		if c.Next.Capped {
			lines = append(lines, fmt.Sprintf("%s stays in %s past %s", c.Body, c.Sign, when))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s enters %s on %s", c.Body, to, when))
	}
	return strings.Join(lines, "; ")
}

// Scheduler runs a Job on a cron schedule.
type Scheduler struct {
	Cron *cron.Cron
	job  *Job
	ctx  context.Context
}

func NewScheduler(ctx context.Context, job *Job) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithLocation(job.loc)),
		job:  job,
		ctx:  ctx,
	}
}

// Register adds the digest task under a standard five-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.task); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

func (s *Scheduler) task() {
	if _, err := s.job.Run(s.ctx); err != nil {
		zerolog.Ctx(s.ctx).Error().Err(err).Msg("transit digest failed")
	}
}

func (s *Scheduler) Start() {
	s.Cron.Start()
}

// Stop halts the scheduler and waits for a running digest to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
}
