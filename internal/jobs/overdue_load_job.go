package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"meddrop/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OverdueLoadJob watches for loads in an active movement status whose
// delivery deadline has passed and alerts the dispatch admins by email.
// Each load is alerted once per process lifetime; the deadline does not
// move, so repeating the same alert every minute would only be noise.
type OverdueLoadJob struct {
	loads    ports.LoadRepository
	contacts ports.ContactDirectory
	email    ports.EmailSender
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	alerted map[string]bool
}

// NewOverdueLoadJob creates the job. It scans every minute.
func NewOverdueLoadJob(
	loads ports.LoadRepository,
	contacts ports.ContactDirectory,
	email ports.EmailSender,
	logger *slog.Logger,
) *OverdueLoadJob {
	return &OverdueLoadJob{
		loads:    loads,
		contacts: contacts,
		email:    email,
		cron:     cron.New(),
		logger:   logger.With("component", "overdue_load_job"),
		alerted:  map[string]bool{},
	}
}

// Start begins the overdue scan on a one-minute schedule.
func (j *OverdueLoadJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.runOnce(ctx, time.Now().UTC()); err != nil {
			j.logger.ErrorContext(ctx, "Overdue load scan failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue load job started (running every minute)")
	return nil
}

// Stop stops the overdue load job.
func (j *OverdueLoadJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue load job stopped")
}

// runOnce performs one scan and sends alerts for loads not yet alerted.
func (j *OverdueLoadJob) runOnce(ctx context.Context, now time.Time) error {
	overdue, err := j.loads.GetOverdue(ctx, now)
	if err != nil {
		return err
	}

	fresh := overdue[:0]
	j.mu.Lock()
	for _, aggregate := range overdue {
		id := aggregate.ID().String()
		if j.alerted[id] {
			continue
		}
		j.alerted[id] = true
		fresh = append(fresh, aggregate)
	}
	j.mu.Unlock()

	if len(fresh) == 0 {
		return nil
	}

	admins, err := j.contacts.AdminContacts(ctx)
	if err != nil {
		return err
	}

	var lines []string
	for _, aggregate := range fresh {
		deadline := "unknown"
		if d := aggregate.DeliveryDeadline(); d != nil {
			deadline = d.Format(time.RFC3339)
		}
		lines = append(lines, fmt.Sprintf(
			"%s (%s) %s -> %s, deadline %s, status %s",
			aggregate.TrackingCode(),
			aggregate.ServiceType(),
			aggregate.Pickup().Name(),
			aggregate.Dropoff().Name(),
			deadline,
			aggregate.Status(),
		))

		j.logger.WarnContext(ctx, "Load is past its delivery deadline",
			"load_id", aggregate.ID().String(),
			"tracking_code", aggregate.TrackingCode(),
			"status", aggregate.Status().String())
	}

	subject := fmt.Sprintf("%d load(s) past delivery deadline", len(fresh))
	body := "The following loads are past their delivery deadline:\n\n" +
		strings.Join(lines, "\n")

	for _, admin := range admins {
		if admin.Email == "" {
			continue
		}
		if err := j.email.Send(ctx, admin.Email, subject, body, ""); err != nil {
			j.logger.ErrorContext(ctx, "Overdue alert email failed",
				"to", admin.Email, "error", err)
		}
	}

	return nil
}
