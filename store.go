// store.go
//
// Copyright (C) 2025 The GoXword Authors
//
// This file implements persistence of generated puzzle
// collections, either in memory or in Google Cloud Datastore.

package xword

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"cloud.google.com/go/datastore"
)

// ErrPuzzleNotFound is returned when a requested puzzle or
// collection does not exist in the store
var ErrPuzzleNotFound = errors.New("puzzle not found")

// A PuzzleStore saves and loads generated puzzle collections.
// Collections are identified by a caller-chosen name; puzzles
// within a collection by their ID.
type PuzzleStore interface {
	// SaveCollection stores the puzzles and summary of a
	// collection, replacing any previous contents
	SaveCollection(ctx context.Context, collection string, puzzles []*Puzzle, summary *CollectionSummary) error
	// LoadPuzzle retrieves a single puzzle by collection and ID
	LoadPuzzle(ctx context.Context, collection string, id int) (*Puzzle, error)
	// LoadSummary retrieves the summary of a collection
	LoadSummary(ctx context.Context, collection string) (*CollectionSummary, error)
	// ListCollections returns the names of all stored
	// collections, sorted
	ListCollections(ctx context.Context) ([]string, error)
	// Close releases any resources held by the store
	Close() error
}

// memoryStore keeps collections in process memory. It is the
// store used when no Datastore project is configured, and in
// tests.
type memoryStore struct {
	mux         sync.RWMutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	puzzles map[int]*Puzzle
	summary *CollectionSummary
}

// NewMemoryStore returns an empty in-memory puzzle store
func NewMemoryStore() PuzzleStore {
	return &memoryStore{
		collections: make(map[string]*memoryCollection),
	}
}

func (s *memoryStore) SaveCollection(ctx context.Context, collection string,
	puzzles []*Puzzle, summary *CollectionSummary) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	c := &memoryCollection{
		puzzles: make(map[int]*Puzzle, len(puzzles)),
		summary: summary,
	}
	for _, p := range puzzles {
		c.puzzles[p.ID] = p
	}
	s.collections[collection] = c
	return nil
}

func (s *memoryStore) LoadPuzzle(ctx context.Context, collection string, id int) (*Puzzle, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	c := s.collections[collection]
	if c == nil {
		return nil, ErrPuzzleNotFound
	}
	p := c.puzzles[id]
	if p == nil {
		return nil, ErrPuzzleNotFound
	}
	return p, nil
}

func (s *memoryStore) LoadSummary(ctx context.Context, collection string) (*CollectionSummary, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	c := s.collections[collection]
	if c == nil || c.summary == nil {
		return nil, ErrPuzzleNotFound
	}
	return c.summary, nil
}

func (s *memoryStore) ListCollections(ctx context.Context) ([]string, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *memoryStore) Close() error {
	return nil
}

// Datastore entity kinds
const (
	puzzleKind     = "XwordPuzzle"
	collectionKind = "XwordCollection"
)

// datastorePutLimit is the maximum number of entities written
// per commit, staying under the Datastore mutation cap
const datastorePutLimit = 400

// puzzleEntity is the Datastore representation of a puzzle.
// The puzzle itself is stored as a JSON payload; only the
// fields used for filtering are indexed.
type puzzleEntity struct {
	Collection string    `datastore:"collection"`
	PuzzleID   int       `datastore:"puzzleId"`
	Theme      string    `datastore:"theme"`
	Difficulty string    `datastore:"difficulty"`
	Valid      bool      `datastore:"valid"`
	Fallback   bool      `datastore:"fallback"`
	Created    time.Time `datastore:"created"`
	Payload    []byte    `datastore:"payload,noindex"`
}

// collectionEntity is the Datastore representation of a
// collection summary
type collectionEntity struct {
	Collection string    `datastore:"collection"`
	Created    time.Time `datastore:"created"`
	Payload    []byte    `datastore:"payload,noindex"`
}

// datastoreStore persists collections in Google Cloud Datastore
type datastoreStore struct {
	client *datastore.Client
}

// NewDatastoreStore connects to the Datastore instance of the
// given Google Cloud project and returns a store backed by it
func NewDatastoreStore(ctx context.Context, projectID string) (PuzzleStore, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("cannot create datastore client: %w", err)
	}
	return &datastoreStore{client: client}, nil
}

// puzzleKey returns the entity key of a puzzle within a collection
func puzzleKey(collection string, id int) *datastore.Key {
	return datastore.NameKey(puzzleKind, fmt.Sprintf("%s/%d", collection, id), nil)
}

// collectionKey returns the entity key of a collection summary
func collectionKey(collection string) *datastore.Key {
	return datastore.NameKey(collectionKind, collection, nil)
}

func (s *datastoreStore) SaveCollection(ctx context.Context, collection string,
	puzzles []*Puzzle, summary *CollectionSummary) error {
	now := time.Now().UTC()
	keys := make([]*datastore.Key, 0, len(puzzles))
	entities := make([]*puzzleEntity, 0, len(puzzles))
	for _, p := range puzzles {
		payload, err := json.Marshal(p)
		if err != nil {
			return err
		}
		keys = append(keys, puzzleKey(collection, p.ID))
		entities = append(entities, &puzzleEntity{
			Collection: collection,
			PuzzleID:   p.ID,
			Theme:      p.Theme,
			Difficulty: p.Difficulty,
			Valid:      p.Valid,
			Fallback:   p.Fallback,
			Created:    now,
			Payload:    payload,
		})
	}
	// Write in batches to stay under the per-commit mutation cap
	for len(keys) > 0 {
		n := len(keys)
		if n > datastorePutLimit {
			n = datastorePutLimit
		}
		if _, err := s.client.PutMulti(ctx, keys[:n], entities[:n]); err != nil {
			return fmt.Errorf("cannot store puzzles: %w", err)
		}
		keys = keys[n:]
		entities = entities[n:]
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	entity := &collectionEntity{
		Collection: collection,
		Created:    now,
		Payload:    payload,
	}
	if _, err := s.client.Put(ctx, collectionKey(collection), entity); err != nil {
		return fmt.Errorf("cannot store collection summary: %w", err)
	}
	return nil
}

func (s *datastoreStore) LoadPuzzle(ctx context.Context, collection string, id int) (*Puzzle, error) {
	var entity puzzleEntity
	err := s.client.Get(ctx, puzzleKey(collection, id), &entity)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return nil, ErrPuzzleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load puzzle: %w", err)
	}
	var p Puzzle
	if err := json.Unmarshal(entity.Payload, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *datastoreStore) LoadSummary(ctx context.Context, collection string) (*CollectionSummary, error) {
	var entity collectionEntity
	err := s.client.Get(ctx, collectionKey(collection), &entity)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return nil, ErrPuzzleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot load collection summary: %w", err)
	}
	var summary CollectionSummary
	if err := json.Unmarshal(entity.Payload, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *datastoreStore) ListCollections(ctx context.Context) ([]string, error) {
	q := datastore.NewQuery(collectionKind).KeysOnly()
	keys, err := s.client.GetAll(ctx, q, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot list collections: %w", err)
	}
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		names = append(names, key.Name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *datastoreStore) Close() error {
	return s.client.Close()
}
