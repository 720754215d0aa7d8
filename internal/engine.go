package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultRecallLimit caps recall results when the caller does not ask for a
// specific count.
const DefaultRecallLimit = 10

// Engine orchestrates the memory log, the vector cache, and the scorers. One
// engine is constructed per vault and holds the loaded cache as a field, so
// repeated recalls reuse it without any package-level state.
type Engine struct {
	vault   Vault
	gateway *Gateway
	cache   *Cache
}

func NewEngine(vault Vault, gateway *Gateway) *Engine {
	return &Engine{
		vault:   vault,
		gateway: gateway,
	}
}

// Vault returns the vault this engine operates on.
func (e *Engine) Vault() Vault {
	return e.vault
}

// Gateway returns the embedding gateway, never nil.
func (e *Engine) Gateway() *Gateway {
	return e.gateway
}

// loadedCache loads the vector cache on first use, applying the model
// invalidation rule, and keeps it in memory for the engine's lifetime.
func (e *Engine) loadedCache() *Cache {
	if e.cache == nil {
		e.cache = LoadCache(e.vault.CachePath(), e.gateway.ModelID())
	}
	return e.cache
}

type SaveOutput struct {
	Entry    Entry
	Embedded bool
}

// Save validates the kind, appends the entry to the memory log, and then
// tries to cache an embedding for it. Save succeeds once the log write
// succeeds; a failed embedding or cache write just leaves the vector for a
// later backfill.
func (e *Engine) Save(ctx context.Context, content, kindStr string) (*SaveOutput, error) {
	kind, err := NewKind(kindStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, kindStr)
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty memory content")
	}

	if err := e.vault.EnsureDir(); err != nil {
		return nil, err
	}

	entry := NewEntry(content, kind, time.Now())
	if err := AppendEntry(e.vault.LogPath(), entry); err != nil {
		return nil, err
	}

	vec := e.gateway.Embed(ctx, content)

	cache := e.loadedCache()
	cache.Upsert(entry.ID, content, kind, vec)
	_ = cache.Save(e.vault.CachePath()) // cache is rebuildable, never fails a save

	entry.Vector = vec
	return &SaveOutput{Entry: entry, Embedded: vec != nil}, nil
}

type RecallInput struct {
	Query string
	Days  int // -1 = no date window
	Limit int
}

type RecallOutput struct {
	Results []Ranked
	// HasLog distinguishes "no memories saved yet" from "nothing matched".
	HasLog bool
}

// Recall loads the log, applies the date window, and ranks. Without a query
// it returns the most recent entries, newest first, unscored. With a query
// BM25 always runs; cosine similarity joins in only while a provider is
// active, and a failed query embedding degrades to a zero semantic signal
// rather than an error.
func (e *Engine) Recall(ctx context.Context, input RecallInput) (*RecallOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultRecallLimit
	}

	entries, err := ReadLog(e.vault.LogPath())
	if errors.Is(err, ErrNoLog) {
		return &RecallOutput{HasLog: false}, nil
	}
	if err != nil {
		return nil, err
	}

	if input.Days >= 0 {
		entries = filterSince(entries, dayCutoff(time.Now(), input.Days))
	}

	// Most-recent-first; this order also breaks score ties later.
	candidates := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		candidates = append(candidates, entries[i])
	}

	query := strings.TrimSpace(input.Query)
	if query == "" {
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}
		results := make([]Ranked, len(candidates))
		for i, c := range candidates {
			results[i] = Ranked{Entry: c}
		}
		return &RecallOutput{Results: results, HasLog: true}, nil
	}

	cache := e.loadedCache()
	for i := range candidates {
		candidates[i].Vector = cache.VectorFor(candidates[i].ID)
	}

	bm25 := ScoreBM25(query, candidates)

	var cosine []float64
	if e.gateway.Active() {
		queryVec := e.gateway.Embed(ctx, query)
		cosine = ScoreCosine(queryVec, candidates)
	}

	ranked := RankCandidates(candidates, bm25, cosine)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return &RecallOutput{Results: ranked, HasLog: true}, nil
}

type BackfillOutput struct {
	Entries int // rows tracked in the cache after sync
	Filled  int // vectors embedded by this run
	Missing int // rows still without a vector
}

// Backfill syncs the cache against the log and embeds only rows still
// missing a vector. Re-running it is safe: filled rows are never touched, so
// a healthy second run is a no-op.
func (e *Engine) Backfill(ctx context.Context) (*BackfillOutput, error) {
	if !e.gateway.Active() {
		return nil, ErrNoProvider
	}

	entries, err := ReadLog(e.vault.LogPath())
	if errors.Is(err, ErrNoLog) {
		return &BackfillOutput{}, nil
	}
	if err != nil {
		return nil, err
	}

	cache := e.loadedCache()
	for _, entry := range entries {
		if cache.Find(entry.ID) == nil {
			cache.Upsert(entry.ID, entry.Content, entry.Kind, nil)
		}
	}

	ids := cache.MissingVectors()
	texts := make([]string, len(ids))
	for i, id := range ids {
		texts[i] = cache.Find(id).Content
	}

	vecs := e.gateway.EmbedBatch(ctx, texts)

	filled := 0
	for i, id := range ids {
		if vecs[i] == nil {
			continue
		}
		row := cache.Find(id)
		cache.Upsert(id, row.Content, row.Kind, vecs[i])
		filled++
	}

	if err := cache.Save(e.vault.CachePath()); err != nil {
		return nil, err
	}

	return &BackfillOutput{
		Entries: len(cache.Entries),
		Filled:  filled,
		Missing: len(cache.MissingVectors()),
	}, nil
}

type StatusOutput struct {
	ModelID string
	Active  bool
	Entries int
	Vectors int
}

// Status reports the active model identity and how much of the log has
// vectors cached.
func (e *Engine) Status() (*StatusOutput, error) {
	out := &StatusOutput{
		ModelID: e.gateway.ModelID(),
		Active:  e.gateway.Active(),
	}

	entries, err := ReadLog(e.vault.LogPath())
	if err != nil && !errors.Is(err, ErrNoLog) {
		return nil, err
	}
	out.Entries = len(entries)

	cache := e.loadedCache()
	for _, row := range cache.Entries {
		if row.Vector != nil {
			out.Vectors++
		}
	}
	return out, nil
}

// dayCutoff returns midnight of the day `days` before now's day, so days=0
// keeps today's entries.
func dayCutoff(now time.Time, days int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -days)
}

func filterSince(entries []Entry, cutoff time.Time) []Entry {
	kept := entries[:0:0]
	for _, entry := range entries {
		t := entry.Time()
		if t.IsZero() || t.Before(cutoff) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept
}
