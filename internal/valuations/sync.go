package valuations

import (
	"context"
	"fmt"

	"github.com/mmynk/valuator/internal/models"
)

// PersistResult reports what Persist did.
type PersistResult int

const (
	// PersistFailed means the document store returned an error. The WIP is unchanged.
	PersistFailed PersistResult = iota
	// PersistInserted means the store assigned a new ID; the WIP is now cached under it.
	PersistInserted
	// PersistUpdated means the existing document was overwritten.
	PersistUpdated
)

func (r PersistResult) String() string {
	switch r {
	case PersistInserted:
		return "inserted"
	case PersistUpdated:
		return "updated"
	default:
		return "failed"
	}
}

// FetchAll loads every valuation owned by ownerUserID into the cache.
// Errors from the document store are returned to the caller. A document that
// cannot be decoded is logged and skipped; the rest are still cached.
func (s *Store) FetchAll(ctx context.Context, ownerUserID string) error {
	docs, err := s.docs.FetchAll(ctx, Collection, ownerUserID)
	if err != nil {
		return fmt.Errorf("fetch valuations for %s: %w", ownerUserID, err)
	}

	cached := 0
	for _, doc := range docs {
		var v models.Valuation
		if err := doc.Decode(&v); err != nil {
			s.logger.Warn("Skipping undecodable valuation", "valuation_id", doc.ID, "error", err)
			continue
		}
		v.ID = doc.ID
		s.SetValuation(doc.ID, &v)
		cached++
	}

	s.logger.Debug("Valuations fetched", "owner", ownerUserID, "count", len(docs), "cached", cached)
	return nil
}

// Persist saves the WIP. The owner and creation time are filled in first when
// missing. If the document store answers with an ID other than the selected
// one, the draft was new: it is cached under that ID and selected. Otherwise
// the existing cache entry is refreshed from the draft.
//
// Store errors are logged and reported only through the result; the draft is
// left as it was.
func (s *Store) Persist(ctx context.Context) PersistResult {
	s.mu.Lock()
	wip := s.selectedValuation
	if wip.UserID == "" && s.session != nil {
		wip.UserID = s.session.CurrentUserID()
	}
	if wip.CreatedOn.IsZero() {
		wip.CreatedOn = s.now()
	}
	localID := s.selectedValuationID
	gen := s.wipGen
	snapshot := wip.Clone()
	s.mu.Unlock()

	docID, err := s.docs.Persist(ctx, Collection, localID, snapshot)
	if err != nil {
		s.logger.Error("Persist valuation failed", "valuation_id", localID, "error", err)
		return PersistFailed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	replaced := s.wipGen != gen || s.selectedValuationID != localID
	if docID != "" && docID != localID {
		if replaced {
			// The WIP was replaced while the request was in flight; cache what was sent.
			snapshot.ID = docID
			s.all[docID] = snapshot
			s.logger.Info("New valuation was inserted", "valuation_id", docID, "selected", false)
			return PersistInserted
		}
		s.selectedValuation.ID = docID
		s.selectedValuationID = docID
		s.all[docID] = s.selectedValuation.Clone()
		s.logger.Info("New valuation was inserted", "valuation_id", docID)
		return PersistInserted
	}

	if _, ok := s.all[localID]; ok && !replaced {
		s.all[localID] = s.selectedValuation.Clone()
	}
	s.logger.Info("Existing valuation was updated", "valuation_id", localID)
	return PersistUpdated
}
