package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nunajera/portfolio-backend/internal"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newHistory(kv KV) *History {
	h := NewHistory(kv, nil)
	h.now = func() time.Time { return t0 }
	return h
}

func sampleConversation() []internal.Message {
	return []internal.Message{
		internal.WelcomeMessage(t0),
		{ID: "u1", Role: internal.RoleUser, Content: "What are your skills?", Timestamp: t0.Add(time.Minute)},
		{
			ID: "a1", Role: internal.RoleAssistant, Content: "• Go\n• Python", Timestamp: t0.Add(2 * time.Minute),
			IsStreaming: true, StreamingContent: "• Go",
			QuickActions: []internal.QuickAction{{Type: internal.ActionScroll, Label: "View skills", Target: "skills"}},
		},
	}
}

func testKVs(t *testing.T) map[string]KV {
	sq, err := NewSQLiteStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sq.Close() })
	return map[string]KV{"memory": NewMemoryStore(), "sqlite": sq}
}

func TestKV(t *testing.T) {
	for name, kv := range testKVs(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get("missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set("k", "v1"))
			require.NoError(t, kv.Set("k", "v2"))
			v, err := kv.Get("k")
			require.NoError(t, err)
			assert.Equal(t, "v2", v)

			require.NoError(t, kv.Delete("k"))
			_, err = kv.Get("k")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestHistory_RoundTrip(t *testing.T) {
	for name, kv := range testKVs(t) {
		t.Run(name, func(t *testing.T) {
			h := newHistory(kv)
			msgs := sampleConversation()
			h.Save(msgs)

			got := h.Load()
			want := make([]internal.Message, len(msgs))
			for i, m := range msgs {
				want[i] = m.Clean()
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("history mismatch (-want +got):\n%s", diff)
			}

			// Idempotent under repeated save/load.
			h.Save(got)
			if diff := cmp.Diff(got, h.Load()); diff != "" {
				t.Errorf("second round trip changed history:\n%s", diff)
			}
		})
	}
}

func TestHistory_TransientFieldsNotStored(t *testing.T) {
	kv := NewMemoryStore()
	newHistory(kv).Save(sampleConversation())

	raw, err := kv.Get(HistoryKey)
	require.NoError(t, err)
	assert.NotContains(t, raw, "isStreaming")
	assert.NotContains(t, raw, "streamingContent")
	assert.NotContains(t, raw, "View skills")
	assert.Contains(t, raw, `"timestamp"`)
}

func TestHistory_LoadFallsBackToWelcome(t *testing.T) {
	tests := map[string]func(kv KV){
		"absent":       func(KV) {},
		"corrupt":      func(kv KV) { _ = kv.Set(HistoryKey, "{not json") },
		"empty array":  func(kv KV) { _ = kv.Set(HistoryKey, "[]") },
		"wrong shape":  func(kv KV) { _ = kv.Set(HistoryKey, `{"role":"user"}`) },
		"unknown role": func(kv KV) { _ = kv.Set(HistoryKey, `[{"role":"system","content":"x"}]`) },
	}
	for name, seed := range tests {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryStore()
			seed(kv)
			got := newHistory(kv).Load()
			assert.Equal(t, []internal.Message{internal.WelcomeMessage(t0)}, got)
		})
	}
}

type brokenKV struct{}

func (brokenKV) Get(string) (string, error) { return "", errors.New("disk on fire") }
func (brokenKV) Set(string, string) error   { return errors.New("disk on fire") }
func (brokenKV) Delete(string) error        { return errors.New("disk on fire") }

func TestHistory_StorageFailuresAreSwallowed(t *testing.T) {
	h := newHistory(brokenKV{})
	assert.NotPanics(t, func() {
		h.Save(sampleConversation())
		h.SetTheme("light")
	})
	assert.Len(t, h.Load(), 1)
	assert.Equal(t, "", h.Theme())
}

func TestHistory_Clear(t *testing.T) {
	kv := NewMemoryStore()
	h := newHistory(kv)
	h.Save(sampleConversation())

	msgs := h.Clear()
	require.Len(t, msgs, 1)
	assert.Equal(t, internal.WelcomeMessageID, msgs[0].ID)

	stored := h.Load()
	require.Len(t, stored, 1)
	assert.Equal(t, internal.WelcomeMessageID, stored[0].ID)
}

func TestHistory_Theme(t *testing.T) {
	h := newHistory(NewMemoryStore())
	assert.Equal(t, "", h.Theme())
	h.SetTheme("light")
	assert.Equal(t, "light", h.Theme())
}

func TestSQLiteStore_Persists(t *testing.T) {
	dir := t.TempDir()
	s1, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ThemeKey, "light"))
	require.NoError(t, s1.Close())

	s2, err := NewSQLiteStore(dir)
	require.NoError(t, err)
	defer s2.Close()
	v, err := s2.Get(ThemeKey)
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}
