package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// Schedule sets up the periodic scrape of every active project. Disabled
// when SCRAPER_SCHEDULE_HOURS is zero.
func (r *Runner) Schedule(ctx context.Context) error {
	hours := r.config.Scraper.ScheduleHours
	if hours <= 0 {
		r.logger.Info("Scheduled scraping disabled")
		return nil
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(time.Duration(hours)*time.Hour),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				return
			}
			r.scrapeAllProjects(ctx)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule scraping job: %w", err)
	}

	scheduler.Start()
	r.logger.Info("Scheduled scraping enabled", "interval_hours", hours)

	go func() {
		<-ctx.Done()
		r.logger.Info("Stopping scraping scheduler")
		if err := scheduler.Shutdown(); err != nil {
			r.logger.Error("Failed to shut down scheduler", "error", err)
		}
	}()

	return nil
}

func (r *Runner) scrapeAllProjects(ctx context.Context) {
	r.logger.Info("Starting scheduled scrape of all projects")

	projects, err := r.storage.GetActiveProjects(ctx)
	if err != nil {
		r.logger.Error("Failed to list projects for scheduled scrape", "error", err)
		return
	}

	for _, p := range projects {
		if ctx.Err() != nil {
			return
		}

		compSum, err := r.ScrapeCompetitors(ctx, p.ID)
		if err != nil {
			r.logger.Error("Scheduled competitor scrape failed", "project_id", p.ID, "error", err)
		}
		tagSum, err := r.ScrapeHashtags(ctx, p.ID)
		if err != nil {
			r.logger.Error("Scheduled hashtag scrape failed", "project_id", p.ID, "error", err)
		}

		r.logger.Info("Scheduled scrape finished for project",
			"project_id", p.ID,
			"sources", compSum.Sources+tagSum.Sources,
			"found", compSum.Found+tagSum.Found,
			"added", compSum.Added+tagSum.Added,
			"failed", compSum.Failed+tagSum.Failed)
	}
}
