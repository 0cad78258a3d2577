package imagestore

import (
	"context"
	"log"
	"time"

	"soko/images"
	"soko/models"
)

// Cleaner removes listing images from the store. It is always invoked from
// a goroutine after the authoritative record mutation is durable; outcomes
// are observed only via logs, never via the response.
type Cleaner struct {
	Store   Store
	Timeout time.Duration
}

func NewCleaner(store Store, timeout time.Duration) *Cleaner {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Cleaner{Store: store, Timeout: timeout}
}

// CleanUp attempts to delete every given image. Unparseable references are
// skipped with a warning. Per image, candidates are tried in order and the
// first ok or not_found verdict wins; exhausting all candidates is a
// warning, not an error.
func (c *Cleaner) CleanUp(refs []models.ImageRef) {
	for _, ref := range refs {
		candidates := images.DeletionCandidates(ref)
		if len(candidates) == 0 {
			log.Printf("[imagestore] skipping image with no derivable identifier: %s", ref.URL)
			continue
		}
		c.deleteFirst(candidates)
	}
}

// CleanUpRemoved deletes every image present in old but absent from the new
// set, identified by normalized public id. Used when an update replaces the
// image list.
func (c *Cleaner) CleanUpRemoved(old, current []models.ImageRef) {
	keep := make(map[string]bool, len(current))
	for _, ref := range current {
		if pid := images.PublicID(ref); pid != "" {
			keep[pid] = true
		}
	}

	var removed []models.ImageRef
	for _, ref := range old {
		pid := images.PublicID(ref)
		if pid == "" || !keep[pid] {
			removed = append(removed, ref)
		}
	}
	c.CleanUp(removed)
}

func (c *Cleaner) deleteFirst(candidates []string) {
	for _, candidate := range candidates {
		ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
		result, err := c.Store.Delete(ctx, candidate)
		cancel()

		if err != nil {
			log.Printf("[imagestore] delete %q failed: %v", candidate, err)
			continue
		}
		if result == ResultOK || result == ResultNotFound {
			log.Printf("[imagestore] deleted %q (%s)", candidate, result)
			return
		}
	}
	log.Printf("[imagestore] all deletion candidates failed: %v", candidates)
}
