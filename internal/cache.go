package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// CacheVersion tags the vector cache schema.
const CacheVersion = 1

// CacheEntry correlates one log entry with its embedding vector. Vector is
// null until an embedding under the cache's model succeeds.
type CacheEntry struct {
	ID      string    `json:"id"`
	Content string    `json:"content"`
	Kind    Kind      `json:"kind"`
	Vector  []float32 `json:"vector"`
}

// Cache is the derived vector side-store. It is rebuildable from the memory
// log at any time; deleting the file loses nothing but embedding work.
type Cache struct {
	Version int          `json:"version"`
	ModelID string       `json:"model_id"`
	Entries []CacheEntry `json:"entries"`
}

// LoadCache reads the cache file and enforces the model-coherence invariant:
// every non-null vector was produced by ModelID. A missing, corrupt, or
// schema-mismatched file yields a fresh empty cache tagged with modelID. A
// model change keeps the rows but nulls every vector, so vectors from
// incompatible embedding spaces are never compared.
func LoadCache(path, modelID string) *Cache {
	fresh := &Cache{Version: CacheVersion, ModelID: modelID}

	data, err := os.ReadFile(path)
	if err != nil {
		return fresh
	}

	var cache Cache
	if err := json.Unmarshal(data, &cache); err != nil {
		return fresh
	}
	if cache.Version != CacheVersion {
		return fresh
	}

	if cache.ModelID != modelID {
		for i := range cache.Entries {
			cache.Entries[i].Vector = nil
		}
		cache.ModelID = modelID
	}

	return &cache
}

// Find returns the cached row for id, or nil.
func (c *Cache) Find(id string) *CacheEntry {
	for i := range c.Entries {
		if c.Entries[i].ID == id {
			return &c.Entries[i]
		}
	}
	return nil
}

// Upsert inserts or updates the row for id. A row's vector moves from null
// to a value at most once per model generation: an existing vector is never
// replaced by nil, and backfill only targets rows still missing one.
func (c *Cache) Upsert(id, content string, kind Kind, vector []float32) {
	if row := c.Find(id); row != nil {
		row.Content = content
		row.Kind = kind
		if vector != nil {
			row.Vector = vector
		}
		return
	}
	c.Entries = append(c.Entries, CacheEntry{ID: id, Content: content, Kind: kind, Vector: vector})
}

// VectorFor returns the cached vector for id, or nil.
func (c *Cache) VectorFor(id string) []float32 {
	if row := c.Find(id); row != nil {
		return row.Vector
	}
	return nil
}

// MissingVectors lists ids of rows without a vector, in row order.
func (c *Cache) MissingVectors() []string {
	var ids []string
	for _, row := range c.Entries {
		if row.Vector == nil {
			ids = append(ids, row.ID)
		}
	}
	return ids
}

// Save persists the whole cache as one JSON document. The write goes to a
// temp file in the target directory and is renamed over the destination, so
// a crash mid-write leaves the previous version intact.
func (c *Cache) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal vector cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write vector cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace vector cache: %w", err)
	}
	return nil
}
