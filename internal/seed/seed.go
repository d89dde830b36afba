// Package seed mirrors the validated fixture snapshot into the SQLite
// content database at startup.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/aimldept/deptbot-go/internal/content"
	"github.com/aimldept/deptbot-go/internal/logger"
	"github.com/aimldept/deptbot-go/internal/storage"
	"golang.org/x/sync/errgroup"
)

// Stats reports how many records each domain seeded.
type Stats struct {
	Faculty        int
	Courses        int
	Calendar       int
	Infrastructure int
	Duration       time.Duration
}

// Run writes every domain of the snapshot into the database.
// Domains are independent, so they seed concurrently; any failure aborts
// the whole run since a partially-mirrored store would serve wrong answers.
func Run(ctx context.Context, db *storage.DB, snap *content.Snapshot, log *logger.Logger) (*Stats, error) {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := db.SaveFacultyBatch(ctx, snap.Faculty); err != nil {
			return fmt.Errorf("seed faculty: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := db.SaveCoursesBatch(ctx, snap.Courses); err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := db.SaveCalendarBatch(ctx, snap.Calendar); err != nil {
			return fmt.Errorf("seed calendar: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := db.SaveInfrastructureBatch(ctx, snap.Infrastructure); err != nil {
			return fmt.Errorf("seed infrastructure: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		Faculty:        len(snap.Faculty),
		Courses:        len(snap.Courses),
		Calendar:       len(snap.Calendar),
		Infrastructure: len(snap.Infrastructure),
		Duration:       time.Since(start),
	}

	log.WithFields(map[string]any{
		"faculty":        stats.Faculty,
		"courses":        stats.Courses,
		"calendar":       stats.Calendar,
		"infrastructure": stats.Infrastructure,
		"duration_ms":    stats.Duration.Milliseconds(),
	}).Info("Content store seeded")

	return stats, nil
}
