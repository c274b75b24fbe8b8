package notification

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func strp(s string) *string { return &s }

func TestNormalizeContainerShapes(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bare array":    `[{"id":"a","title":"T"}]`,
		"data":          `{"data":[{"id":"a","title":"T"}]}`,
		"rows":          `{"rows":[{"id":"a","title":"T"}]}`,
		"notifications": `{"notifications":[{"id":"a","title":"T"}]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := Normalize([]byte(payload))
			require.NoError(t, err)
			require.Len(t, got, 1)
			require.Equal(t, "a", got[0].ID)
			require.Equal(t, "T", got[0].Title)
		})
	}
}

func TestNormalizeContainerPriority(t *testing.T) {
	t.Parallel()

	got, err := Normalize([]byte(`{"notifications":[{"title":"n"}],"rows":[{"title":"r"}],"data":[{"title":"d"}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "d", got[0].Title)

	// an empty-string data field is falsy and falls through to rows
	got, err = Normalize([]byte(`{"data":"","rows":[{"title":"r"}]}`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "r", got[0].Title)

	// a truthy non-array container claims the payload and fails it
	got, err = Normalize([]byte(`{"data":{"x":1},"rows":[{"title":"r"}]}`))
	require.ErrorIs(t, err, ErrNotArray)
	require.Nil(t, got)
}

func TestNormalizeRejectsNonArrayContainer(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{
		`{"data":{"error":"maintenance"}}`,
		`{"rows":"unavailable"}`,
		`{"notifications":7}`,
		`{"data":true}`,
	} {
		_, err := Normalize([]byte(payload))
		require.ErrorIs(t, err, ErrNotArray, payload)
	}

	var v any
	require.NoError(t, json.Unmarshal([]byte(`{"data":{"error":"maintenance"}}`), &v))
	require.Empty(t, NormalizeValue(v))
}

func TestNormalizeUnknownShape(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`{}`, `{"items":[{"id":1}]}`, `"text"`, `42`, `null`} {
		got, err := Normalize([]byte(payload))
		require.NoError(t, err, payload)
		require.Empty(t, got, payload)
	}
}

func TestNormalizeInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Normalize([]byte(`<html>`))
	require.Error(t, err)
}

func TestNormalizeDropsFalsyEntriesBeforeIndexing(t *testing.T) {
	t.Parallel()

	got, err := Normalize([]byte(`[null, {"title":"first"}, false, 0, "", {"title":"second"}]`))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "0", got[0].ID)
	require.Equal(t, "1", got[1].ID)
	require.Equal(t, "second", got[1].Title)
}

func TestNormalizeDefaultsAndFallbacks(t *testing.T) {
	t.Parallel()

	got, err := Normalize([]byte(`[
		{},
		{"heading":"H","body":"B","time":"01/02/2024"},
		{"title":null,"heading":"H2","message":null,"body":"B2","timestamp":null,"time":null,"created_at":"2024-01-01T00:00:00Z"},
		{"title":"","message":"","read":1}
	]`))
	require.NoError(t, err)
	require.Len(t, got, 4)

	require.Equal(t, Notification{ID: "0", Title: "Untitled", Message: ""}, got[0])

	require.Equal(t, "H", got[1].Title)
	require.Equal(t, "B", got[1].Message)
	require.Equal(t, strp("01/02/2024"), got[1].Timestamp)

	require.Equal(t, "H2", got[2].Title)
	require.Equal(t, "B2", got[2].Message)
	require.Equal(t, strp("2024-01-01T00:00:00Z"), got[2].Timestamp)

	// present-but-empty values are kept, not defaulted
	require.Equal(t, "", got[3].Title)
	require.Equal(t, "", got[3].Message)
	require.True(t, got[3].Read)
}

func TestNormalizeCoercesScalars(t *testing.T) {
	t.Parallel()

	got, err := Normalize([]byte(`[{"id":12345678901234567890,"title":7,"message":true,"timestamp":1700000000000,"read":"yes"},{"title":{"a":1},"message":[1,2]}]`))
	require.NoError(t, err)
	require.Len(t, got, 2)

	require.Equal(t, "12345678901234567890", got[0].ID)
	require.Equal(t, "7", got[0].Title)
	require.Equal(t, "true", got[0].Message)
	require.Equal(t, strp("1700000000000"), got[0].Timestamp)
	require.True(t, got[0].Read)

	require.Equal(t, `{"a":1}`, got[1].Title)
	require.Equal(t, `[1,2]`, got[1].Message)
	require.False(t, got[1].Read)
}

func TestNormalizeNonObjectEntries(t *testing.T) {
	t.Parallel()

	got, err := Normalize([]byte(`["hello", 3, [1]]`))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, n := range got {
		require.Equal(t, DefaultTitle, n.Title)
		require.Equal(t, "", n.Message)
		require.Nil(t, n.Timestamp)
		require.False(t, n.Read)
		require.Equal(t, []string{"0", "1", "2"}[i], n.ID)
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	t.Parallel()

	records := []Notification{
		{ID: "n-1", Title: "Exam tomorrow", Message: "Room 4", Timestamp: strp("03/02/2025 08:30:00"), Read: true},
		{ID: "9", Title: "", Message: "", Timestamp: nil, Read: false},
	}
	for _, rec := range records {
		data, err := json.Marshal([]Notification{rec})
		require.NoError(t, err)
		got, err := Normalize(data)
		require.NoError(t, err)
		require.Equal(t, []Notification{rec}, got)
	}
}

func TestNewestAndUnread(t *testing.T) {
	t.Parallel()

	items := []Notification{{ID: "a", Read: true}, {ID: "b"}, {ID: "c"}}
	require.Equal(t, 2, Unread(items))
	newest := Newest(items)
	require.Equal(t, "c", newest[0].ID)
	require.Equal(t, "a", newest[2].ID)
	require.Equal(t, "a", items[0].ID)

	clone := Clone(items)
	clone[0].Read = false
	require.True(t, items[0].Read)
	require.Nil(t, Clone(nil))
}
