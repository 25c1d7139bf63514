package scryfall

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmancini/MTG-Proxyshop/internal/testutil"
)

// memSetStore is an in-memory SetStore for tests.
type memSetStore struct {
	records map[string]SetRecord
	saves   int
}

func newMemSetStore() *memSetStore {
	return &memSetStore{records: map[string]SetRecord{}}
}

func (s *memSetStore) Load(code string) (SetRecord, bool) {
	rec, ok := s.records[code]
	return rec, ok
}

func (s *memSetStore) Save(code string, rec SetRecord) error {
	s.records[code] = rec
	s.saves++
	return nil
}

func TestGetSetDataMergesSources(t *testing.T) {
	testutil.SetTestConfig(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sets/MH2":
			writeJSON(t, w, map[string]any{
				"name":         "Modern Horizons 2",
				"code":         "mh2",
				"set_type":     "draft_innovation",
				"card_count":   632,
				"printed_size": 303,
			})
		case "/mtgjson/MH2.json":
			writeJSON(t, w, map[string]any{"data": map[string]any{
				"name":          "MH2 from MTGJSON",
				"baseSetSize":   303,
				"tokens":        []any{map[string]any{}, map[string]any{}},
				"sealedProduct": []any{map[string]any{}},
				"booster":       map[string]any{},
				"cards":         []any{map[string]any{}},
			}})
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
		}
	})

	store := newMemSetStore()
	c := newTestClient(t, handler, WithSetStore(store))

	rec := c.GetSetData(context.Background(), "mh2")

	// Primary fields win, MTGJSON only fills gaps.
	assert.Equal(t, "Modern Horizons 2", rec.Name())
	size, ok := rec.PrintedSize()
	require.True(t, ok)
	assert.Equal(t, 303, size)

	tokens, ok := rec.TokenCount()
	require.True(t, ok)
	assert.Equal(t, 2, tokens)

	// Bulk MTGJSON listings are stripped before the merge.
	for _, field := range mtgjsonExtraFields {
		assert.False(t, hasKey(rec, field), "field %s should be stripped", field)
	}
	assert.False(t, hasKey(rec, "tokens"))

	// Merged record was persisted under the uppercased code.
	assert.Equal(t, 1, store.saves)
	saved, ok := store.Load("MH2")
	require.True(t, ok)
	assert.True(t, saved.Complete())
}

func TestGetSetDataCacheHitSkipsNetwork(t *testing.T) {
	testutil.SetTestConfig(t)

	requests := atomic.Int32{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "should not be called", http.StatusInternalServerError)
	})

	store := newMemSetStore()
	store.records["TSR"] = SetRecord{
		"name":         "Time Spiral Remastered",
		"code":         "tsr",
		"printed_size": float64(289),
		"scryfall":     true,
	}

	c := newTestClient(t, handler, WithSetStore(store))

	first := c.GetSetData(context.Background(), "tsr")
	second := c.GetSetData(context.Background(), "tsr")

	assert.Equal(t, int32(0), requests.Load())
	assert.Equal(t, 0, store.saves)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "Time Spiral Remastered", first.Name())
}

// A persisted record without the scryfall marker is stale and must be
// re-resolved.
func TestGetSetDataIncompleteCacheRecordRefetched(t *testing.T) {
	testutil.SetTestConfig(t)

	requests := atomic.Int32{}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Path {
		case "/sets/TSR":
			writeJSON(t, w, map[string]any{"name": "Time Spiral Remastered", "code": "tsr"})
		case "/mtgjson/TSR.json":
			writeJSON(t, w, map[string]any{"data": map[string]any{"name": "Time Spiral Remastered"}})
		}
	})

	store := newMemSetStore()
	store.records["TSR"] = SetRecord{"name": "Time Spiral Remastered"}

	c := newTestClient(t, handler, WithSetStore(store))
	rec := c.GetSetData(context.Background(), "TSR")

	assert.Equal(t, int32(2), requests.Load())
	assert.True(t, rec.Complete())
	assert.True(t, store.records["TSR"].Complete())
}

func TestGetSetDataTokenSetUsesParentForMTGJSON(t *testing.T) {
	testutil.SetTestConfig(t)

	var mtgjsonPath string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sets/TMH2":
			writeJSON(t, w, map[string]any{
				"name":            "Modern Horizons 2 Tokens",
				"code":            "tmh2",
				"set_type":        "token",
				"parent_set_code": "mh2",
			})
		default:
			mtgjsonPath = r.URL.Path
			writeJSON(t, w, map[string]any{"data": map[string]any{"name": "Modern Horizons 2", "tokens": []any{map[string]any{}}}})
		}
	})

	c := newTestClient(t, handler, WithSetStore(newMemSetStore()))
	rec := c.GetSetData(context.Background(), "tmh2")

	assert.Equal(t, "/mtgjson/MH2.json", mtgjsonPath)
	assert.Equal(t, "Modern Horizons 2 Tokens", rec.Name())
}

func TestGetSetDataDegradesToEmptyRecord(t *testing.T) {
	testutil.SetTestConfig(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	})

	store := newMemSetStore()
	c := newTestClient(t, handler, WithSetStore(store))

	rec := c.GetSetData(context.Background(), "xyz")
	assert.NotNil(t, rec)
	assert.Empty(t, rec)
	assert.Equal(t, 0, store.saves)
}

func TestGetSetDataSingleSourceNotPersisted(t *testing.T) {
	testutil.SetTestConfig(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sets/PLST" {
			writeJSON(t, w, map[string]any{"name": "The List", "code": "plst", "card_count": 1000})
			return
		}
		http.Error(w, "no such set", http.StatusNotFound)
	})

	store := newMemSetStore()
	c := newTestClient(t, handler, WithSetStore(store))

	rec := c.GetSetData(context.Background(), "plst")
	assert.Equal(t, "The List", rec.Name())
	assert.Equal(t, 0, store.saves)
}

func TestGetSetDataSingleSourceWithPrintedSizePersisted(t *testing.T) {
	testutil.SetTestConfig(t)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sets/TSR" {
			writeJSON(t, w, map[string]any{"name": "Time Spiral Remastered", "code": "tsr", "printed_size": 289})
			return
		}
		http.Error(w, "no such set", http.StatusNotFound)
	})

	store := newMemSetStore()
	c := newTestClient(t, handler, WithSetStore(store))

	rec := c.GetSetData(context.Background(), "tsr")
	assert.Equal(t, "Time Spiral Remastered", rec.Name())
	assert.Equal(t, 1, store.saves)
}
