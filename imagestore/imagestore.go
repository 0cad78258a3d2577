// Package imagestore wraps the external image hosting provider. Deletions
// are always best-effort: a failure here is logged and never surfaces as a
// request error, so a slow or broken provider cannot block listing writes.
package imagestore

import (
	"context"
	"log"
)

// Result is the provider's verdict on a deletion attempt. A repeated
// deletion of an already-absent identifier reports ResultNotFound, which
// callers treat as success.
type Result string

const (
	ResultOK       Result = "ok"
	ResultNotFound Result = "not_found"
	ResultError    Result = "error"
)

// Store deletes assets by their stable public identifier.
type Store interface {
	Delete(ctx context.Context, publicID string) (Result, error)
}

// LogStore is the fallback when no provider is configured (local
// development). It logs the request and reports success.
type LogStore struct{}

func (LogStore) Delete(_ context.Context, publicID string) (Result, error) {
	log.Printf("[imagestore] (dev) would delete %q", publicID)
	return ResultOK, nil
}
