// Package kvstore provides the key-value persistence layer backing drafts,
// history, saved templates and the invoice number counter.
package kvstore

import "context"

// Well-known storage keys.
const (
	KeyDraft       = "invoice.draft"
	KeyHistory     = "invoice.history"
	KeyCounter     = "invoice.counter"
	KeyCounterYear = "invoice.counter.year"
	KeyTemplates   = "invoice.templates"
)

// Store is a minimal key-value store. Get reports whether the key exists;
// a missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}
