package booking

import (
	"context"
	"sort"
	"sync"

	"tripforge/models"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// holdSegments acquires one supplier hold per bookable segment. Holds toward
// independent suppliers share no state, so they run concurrently; results are
// collected before the step completes. On failure the successfully acquired
// holds are still returned so the caller can release them.
func (s *DefaultBookingService) holdSegments(ctx context.Context, itin *models.StructuredItinerary) ([]models.Hold, error) {
	segments := itin.BookableSegments()
	if len(segments) == 0 {
		return []models.Hold{}, nil
	}

	var (
		mu    sync.Mutex
		holds = make([]models.Hold, 0, len(segments))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, seg := range segments {
		seg := seg
		g.Go(func() error {
			hold, err := s.Suppliers.Hold(gctx, seg)
			if err != nil {
				s.Logger.Warn("supplier hold failed",
					zap.String("offerId", seg.BookingOfferID), zap.Error(err))
				return err
			}
			mu.Lock()
			holds = append(holds, hold)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	// Confirmation later walks the holds sequentially; keep them in itinerary
	// order regardless of which supplier answered first.
	order := make(map[string]int, len(segments))
	for i, seg := range segments {
		order[seg.BookingOfferID] = i
	}
	sort.Slice(holds, func(a, b int) bool {
		return order[holds[a].SegmentRef] < order[holds[b].SegmentRef]
	})
	return holds, err
}
