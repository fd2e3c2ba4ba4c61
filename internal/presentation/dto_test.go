package presentation

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	appadapter "github.com/zjrosen/lattice/internal/application/adapter"
)

func TestFromSnapshot(t *testing.T) {
	snap := appadapter.Snapshot{
		Generation: 5,
		Interfaces: []appadapter.InterfaceInfo{
			{Name: "IArticle", Bases: []string{"IContent"}, Ancestors: []string{"IArticle", "IContent", "Any"}},
		},
		Adapters: []appadapter.AdapterDef{
			{For: []string{"IContent"}, Provides: "IView", Factory: "render"},
		},
		Subscriptions: []appadapter.SubscriptionDef{
			{For: []string{"IContent"}, Factory: "on-change"},
		},
	}

	dto := FromSnapshot(snap)

	require.Equal(t, uint64(5), dto.Generation)
	require.Len(t, dto.Interfaces, 1)
	require.Equal(t, []string{"IArticle", "IContent", "Any"}, dto.Interfaces[0].Ancestors)
	require.Len(t, dto.Adapters, 1)
	require.True(t, dto.Subscriptions[0].Handler, "empty provides marks a handler")
}

func TestFromLookup(t *testing.T) {
	q := appadapter.Query{Required: []string{"IContent"}, Provided: "IView", Name: "raw"}

	found := FromLookup(q, "render")
	require.True(t, found.Found)
	require.Equal(t, "render", found.Value)

	missed := FromLookup(q, nil)
	require.False(t, missed.Found)
	require.Empty(t, missed.Value)
}

func TestFormatter_FormatLookup(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewFormatter(&buf)

	err := formatter.FormatLookup(LookupResultDTO{
		Required: []string{"IContent"},
		Provided: "IView",
		Found:    true,
		Value:    "render",
	})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, true, decoded["found"])
	require.Equal(t, "render", decoded["value"])
}
