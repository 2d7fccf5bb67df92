// Package batch accumulates assets and saves them in fixed-size chunks,
// so callers loading thousands of assets do not need to manage bulk API
// limits themselves.
package batch

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/lumenhq/lumen-go/assets"
	"github.com/lumenhq/lumen-go/client"
	"github.com/lumenhq/lumen-go/errors"
	"github.com/lumenhq/lumen-go/logger"
)

// DefaultMaxSize is the flush threshold when none is configured
const DefaultMaxSize = 20

// placeholder GUIDs are negative so they can never collide with
// server-assigned ones; the counter is shared across batches.
var placeholderCounter atomic.Int64

func nextPlaceholderGuid() string {
	return strconv.FormatInt(-placeholderCounter.Add(1), 10)
}

// Saver persists a chunk of assets. The SDK client satisfies this.
type Saver interface {
	Save(ctx context.Context, toSave []assets.Asset, opts ...client.SaveOption) (*client.MutationResponse, error)
}

// FailedChunk records one chunk that could not be saved
type FailedChunk struct {
	Assets []assets.Asset
	Err    error
}

// Stats summarizes what a batch has done so far
type Stats struct {
	Added   int
	Created int
	Updated int
	Skipped int
	Failed  int
}

// SavedAsset identifies one asset that went through a save, by the
// server-assigned GUID and the qualified name.
type SavedAsset struct {
	Guid          string
	QualifiedName string
}

// Batch buffers assets and saves them in chunks of at most maxSize.
// Safe for concurrent Add calls.
type Batch struct {
	saver           Saver
	maxSize         int
	saveOpts        []client.SaveOption
	captureFailures bool

	mu       sync.Mutex
	pending  []assets.Asset
	stats    Stats
	created  []SavedAsset
	updated  []SavedAsset
	skipped  []SavedAsset
	failures []FailedChunk
}

// Option configures a Batch
type Option func(*Batch)

// WithMaxSize sets the flush threshold
func WithMaxSize(n int) Option {
	return func(b *Batch) {
		if n > 0 {
			b.maxSize = n
		}
	}
}

// WithReplaceTags forwards tag replacement to every save
func WithReplaceTags() Option {
	return func(b *Batch) {
		b.saveOpts = append(b.saveOpts, client.WithReplaceTags())
	}
}

// WithReplaceTerms forwards term replacement to every save
func WithReplaceTerms() Option {
	return func(b *Batch) {
		b.saveOpts = append(b.saveOpts, client.WithReplaceTerms())
	}
}

// WithCaptureFailures keeps failed chunks on the batch instead of
// aborting the run on the first failed save.
func WithCaptureFailures() Option {
	return func(b *Batch) {
		b.captureFailures = true
	}
}

// NewBatch creates a batch writing through the given saver
func NewBatch(saver Saver, opts ...Option) (*Batch, error) {
	if saver == nil {
		return nil, errors.NewInvalidRequestError("saver is required")
	}
	b := &Batch{saver: saver, maxSize: DefaultMaxSize}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Add buffers one asset, assigning a negative placeholder GUID when the
// asset has none, and flushes if the buffer reached the threshold.
func (b *Batch) Add(ctx context.Context, a assets.Asset) error {
	if a == nil {
		return errors.NewInvalidRequestError("asset is required")
	}
	if a.Ref().Guid == "" {
		a.Ref().Guid = nextPlaceholderGuid()
	}

	b.mu.Lock()
	b.pending = append(b.pending, a)
	b.stats.Added++
	full := len(b.pending) >= b.maxSize
	b.mu.Unlock()

	if full {
		return b.Flush(ctx)
	}
	return nil
}

// Flush saves everything currently buffered. A no-op when empty.
func (b *Batch) Flush(ctx context.Context) error {
	b.mu.Lock()
	chunk := b.pending
	b.pending = nil
	b.mu.Unlock()

	if len(chunk) == 0 {
		return nil
	}

	resp, err := b.saver.Save(ctx, chunk, b.saveOpts...)
	if err != nil {
		b.mu.Lock()
		b.stats.Failed += len(chunk)
		if b.captureFailures {
			b.failures = append(b.failures, FailedChunk{Assets: chunk, Err: err})
		}
		b.mu.Unlock()

		if b.captureFailures {
			logger.Warnw("Batch chunk failed, captured for retry",
				logger.FieldCount, len(chunk), "error", err)
			return nil
		}
		return errors.Wrapf(err, "saving batch chunk of %d assets", len(chunk))
	}

	created, err := savedAssets(resp.AssetsCreated())
	if err != nil {
		return errors.Wrap(err, "decoding created entities")
	}
	updated, err := savedAssets(resp.AssetsUpdated())
	if err != nil {
		return errors.Wrap(err, "decoding updated entities")
	}

	// Anything the server did not report as mutated was left unchanged
	mutated := make(map[string]bool, len(created)+len(updated))
	for _, s := range created {
		mutated[s.Guid] = true
	}
	for _, s := range updated {
		mutated[s.Guid] = true
	}
	var skipped []SavedAsset
	for _, a := range chunk {
		guid := resp.AssignedGuid(a.Ref().Guid)
		if !mutated[guid] {
			skipped = append(skipped, SavedAsset{Guid: guid, QualifiedName: assets.QualifiedName(a)})
		}
	}

	b.mu.Lock()
	b.created = append(b.created, created...)
	b.updated = append(b.updated, updated...)
	b.skipped = append(b.skipped, skipped...)
	b.stats.Created += len(created)
	b.stats.Updated += len(updated)
	b.stats.Skipped += len(skipped)
	b.mu.Unlock()

	logger.Debugw("Batch chunk saved",
		logger.FieldCount, len(chunk), "created", len(created), "updated", len(updated))
	return nil
}

func savedAssets(list []assets.Asset, err error) ([]SavedAsset, error) {
	if err != nil {
		return nil, err
	}
	out := make([]SavedAsset, 0, len(list))
	for _, a := range list {
		out = append(out, SavedAsset{Guid: a.Ref().Guid, QualifiedName: assets.QualifiedName(a)})
	}
	return out, nil
}

// Stats returns a snapshot of the batch counters
func (b *Batch) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Created returns the GUID and qualified name of every asset the server
// created through this batch.
func (b *Batch) Created() []SavedAsset {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]SavedAsset(nil), b.created...)
}

// Updated returns the GUID and qualified name of every asset the server
// updated through this batch.
func (b *Batch) Updated() []SavedAsset {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]SavedAsset(nil), b.updated...)
}

// Skipped returns the assets the server left unchanged
func (b *Batch) Skipped() []SavedAsset {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]SavedAsset(nil), b.skipped...)
}

// Failures returns the chunks captured by WithCaptureFailures
func (b *Batch) Failures() []FailedChunk {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]FailedChunk, len(b.failures))
	copy(out, b.failures)
	return out
}
