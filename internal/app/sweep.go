package app

import (
	"context"
	"log/slog"

	"research-tracker/internal/domain"
	"research-tracker/internal/storage"
)

// Sweeper deletes stored blobs no document row references. Blobs go
// unreferenced when a best-effort delete failed earlier; the sweep is the
// backstop that eventually reclaims them. Failures are logged, never
// escalated.
type Sweeper struct {
	docs   domain.DocumentRepository
	blobs  storage.BlobStore
	logger *slog.Logger
}

func NewSweeper(docs domain.DocumentRepository, blobs storage.BlobStore, logger *slog.Logger) *Sweeper {
	return &Sweeper{docs: docs, blobs: blobs, logger: logger}
}

// Run performs one sweep and returns the number of blobs removed.
func (s *Sweeper) Run(ctx context.Context) int {
	refs, err := s.docs.ListStorageRefs(ctx)
	if err != nil {
		s.logger.Warn("orphan sweep: list refs", "error", err)
		return 0
	}
	referenced := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		referenced[ref] = struct{}{}
	}

	stored, err := s.blobs.List(ctx)
	if err != nil {
		s.logger.Warn("orphan sweep: list blobs", "error", err)
		return 0
	}

	removed := 0
	for _, ref := range stored {
		if _, ok := referenced[ref]; ok {
			continue
		}
		if err := s.blobs.Delete(ctx, ref); err != nil {
			s.logger.Warn("orphan sweep: delete blob", "storage_ref", ref, "error", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		s.logger.Info("orphan sweep removed blobs", "count", removed)
	}
	return removed
}
