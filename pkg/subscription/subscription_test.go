package subscription

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddEventHandlerStoresInFirstEmptySlot(t *testing.T) {
	m := NewManagerWithSize(4)
	called := false
	err := m.AddEventHandler("foo", func(name string, data []byte) { called = true }, ScopeMyDevices, "")
	require.NoError(t, err)
	require.Equal(t, 1, m.Count())

	m.Dispatch("foo", nil)
	require.True(t, called)
}

func TestAddEventHandlerDedupesIdenticalEntry(t *testing.T) {
	m := NewManagerWithSize(4)
	h := func(name string, data []byte) {}

	require.NoError(t, m.AddEventHandler("foo", h, ScopeMyDevices, ""))
	require.NoError(t, m.AddEventHandler("foo", h, ScopeMyDevices, ""))
	require.Equal(t, 1, m.Count())
}

func TestAddEventHandlerDistinguishesDifferentHandlers(t *testing.T) {
	m := NewManagerWithSize(4)
	require.NoError(t, m.AddEventHandler("foo", func(string, []byte) {}, ScopeMyDevices, ""))
	require.NoError(t, m.AddEventHandler("foo", func(string, []byte) {}, ScopeMyDevices, ""))
	require.Equal(t, 2, m.Count())
}

func TestAddEventHandlerFailsWhenTableFull(t *testing.T) {
	m := NewManagerWithSize(2)
	require.NoError(t, m.AddEventHandler("a", func(string, []byte) {}, ScopeMyDevices, ""))
	require.NoError(t, m.AddEventHandler("b", func(string, []byte) {}, ScopeMyDevices, ""))
	err := m.AddEventHandler("c", func(string, []byte) {}, ScopeMyDevices, "")
	require.ErrorIs(t, err, ErrTableFull)
}

func TestAddEventHandlerTruncatesLongFilter(t *testing.T) {
	m := NewManagerWithSize(4)
	long := strings.Repeat("x", MaxFilterLength+10)
	require.NoError(t, m.AddEventHandler(long, func(string, []byte) {}, ScopeMyDevices, ""))
	require.Len(t, m.Entries()[0].Filter, MaxFilterLength)
}

func TestDispatchFirstPrefixMatchWins(t *testing.T) {
	m := NewManagerWithSize(4)
	var gotFoo, gotFoobar bool
	require.NoError(t, m.AddEventHandler("foo", func(string, []byte) { gotFoo = true }, ScopeMyDevices, ""))
	require.NoError(t, m.AddEventHandler("foobar", func(string, []byte) { gotFoobar = true }, ScopeMyDevices, ""))

	dispatched := m.Dispatch("foobar", []byte("payload"))
	require.True(t, dispatched)
	require.True(t, gotFoo)
	require.False(t, gotFoobar)
}

func TestDispatchStopsAtFirstEmptySlot(t *testing.T) {
	m := NewManagerWithSize(4)
	require.NoError(t, m.AddEventHandler("foo", func(string, []byte) {}, ScopeMyDevices, ""))
	m.entries[2] = Entry{Filter: "bar", Handler: func(string, []byte) {}}

	dispatched := m.Dispatch("bar", nil)
	require.False(t, dispatched)
}

func TestDispatchReturnsFalseWhenNoMatch(t *testing.T) {
	m := NewManagerWithSize(4)
	require.NoError(t, m.AddEventHandler("foo", func(string, []byte) {}, ScopeMyDevices, ""))
	require.False(t, m.Dispatch("bar", nil))
}

func TestRemoveEventHandlersByNameCompactsStably(t *testing.T) {
	m := NewManagerWithSize(4)
	require.NoError(t, m.AddEventHandler("a", func(string, []byte) {}, ScopeMyDevices, ""))
	require.NoError(t, m.AddEventHandler("b", func(string, []byte) {}, ScopeMyDevices, ""))
	require.NoError(t, m.AddEventHandler("a", func(string, []byte) {}, ScopeMyDevices, "dev2"))
	require.NoError(t, m.AddEventHandler("c", func(string, []byte) {}, ScopeMyDevices, ""))

	m.RemoveEventHandlers("a")

	entries := m.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "b", entries[0].Filter)
	require.Equal(t, "c", entries[1].Filter)
}

func TestRemoveEventHandlersEmptyNameClearsAll(t *testing.T) {
	m := NewManagerWithSize(4)
	require.NoError(t, m.AddEventHandler("a", func(string, []byte) {}, ScopeMyDevices, ""))
	require.NoError(t, m.AddEventHandler("b", func(string, []byte) {}, ScopeMyDevices, ""))

	m.RemoveEventHandlers("")
	require.Equal(t, 0, m.Count())
}

func TestScopeString(t *testing.T) {
	require.Equal(t, "MY_DEVICES", ScopeMyDevices.String())
	require.Equal(t, "FIREHOSE", ScopeFirehose.String())
	require.Equal(t, "UNKNOWN", Scope(99).String())
}
