package presenter

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/roster/pkg/types"
)

// Bounds for BulkInsertRandom.
const (
	MinRandomCount = 1
	MaxRandomCount = 100
)

var (
	firstNames = []string{"Alice", "Bob", "Charlie", "Diana", "Ethan", "Fiona", "George", "Hannah"}
	lastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller"}
)

// BatchResult describes one BulkInsertRandom call. BatchID tags the log
// lines written for the batch.
type BatchResult struct {
	BatchID string  `json:"batch_id"`
	IDs     []int64 `json:"ids"`
}

// BulkInsertRandom creates count students with random names, a course drawn
// uniformly from the course table and a year drawn uniformly from
// [1, duration(course)]. The snapshot is refreshed once at the end, also
// after a partial failure.
func (p *Presenter) BulkInsertRandom(ctx context.Context, count int) (BatchResult, error) {
	if count < MinRandomCount || count > MaxRandomCount {
		return BatchResult{}, &types.ValidationError{
			Field:  "count",
			Reason: fmt.Sprintf("must be between %d and %d", MinRandomCount, MaxRandomCount),
		}
	}

	batchID, err := uuid.NewV7()
	if err != nil {
		return BatchResult{}, fmt.Errorf("generating batch id: %w", err)
	}
	result := BatchResult{BatchID: batchID.String(), IDs: make([]int64, 0, count)}
	log := p.log.With().Str("batch", result.BatchID).Logger()

	for range count {
		s := p.randomStudent()
		id, err := p.store.Create(ctx, s.Name, s.Course, s.Year)
		if err != nil {
			log.Error().Err(err).Int("inserted", len(result.IDs)).Msg("random insert failed")
			if rerr := p.Refresh(ctx); rerr != nil {
				log.Warn().Err(rerr).Msg("refresh after failed batch")
			}
			return result, err
		}
		result.IDs = append(result.IDs, id)
	}

	log.Info().Int("inserted", len(result.IDs)).Msg("random students inserted")
	return result, p.Refresh(ctx)
}

// randomStudent draws one record without an id.
func (p *Presenter) randomStudent() types.Student {
	course := p.courses[p.intN(len(p.courses))]
	return types.Student{
		Name:   firstNames[p.intN(len(firstNames))] + " " + lastNames[p.intN(len(lastNames))],
		Course: course.Name,
		Year:   p.intN(course.Duration) + 1,
	}
}
