package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashu-suve/chat/app/storage/engine"
	"github.com/ashu-suve/chat/lib/spamcheck"
)

func TestDetectedSpam_NewDetectedSpam(t *testing.T) {
	ctx := context.Background()
	db, teardown := providers["sqlite"](t, ctx, "gr1")
	defer teardown()

	_, err := NewDetectedSpam(ctx, db)
	require.NoError(t, err)

	var exists int
	err = db.Get(&exists, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='detected_spam'")
	require.NoError(t, err)
	assert.Equal(t, 1, exists)
}

func TestDetectedSpam_WriteRead(t *testing.T) {
	forEachEngine(t, func(t *testing.T, db *engine.SQL) {
		ctx := context.Background()
		ds, err := NewDetectedSpam(ctx, db)
		require.NoError(t, err)

		ts := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
		entry := DetectedSpamInfo{
			Text:      "CLICK HERE NOW!!!!! buy now http://bit.ly/free",
			Score:     81,
			Reasons:   []string{spamcheck.ReasonURLs, spamcheck.ReasonKeywords},
			Summary:   "score:81",
			Timestamp: ts,
		}
		require.NoError(t, ds.Write(ctx, entry))
		require.NoError(t, ds.Write(ctx, DetectedSpamInfo{Text: "no reasons", Score: 60, Timestamp: ts.Add(time.Minute)}))

		res, err := ds.Read(ctx, 10)
		require.NoError(t, err)
		require.Len(t, res, 2)

		assert.Equal(t, "no reasons", res[0].Text, "newest first")
		assert.Equal(t, []string{}, res[0].Reasons)
		assert.Equal(t, entry.Text, res[1].Text)
		assert.Equal(t, 81, res[1].Score)
		assert.Equal(t, entry.Reasons, res[1].Reasons)
		assert.Equal(t, "score:81", res[1].Summary)
		assert.Equal(t, ts, res[1].Timestamp)
	})
}

func TestDetectedSpam_WriteDefaultTimestamp(t *testing.T) {
	ctx := context.Background()
	db, teardown := providers["sqlite"](t, ctx, "gr1")
	defer teardown()
	ds, err := NewDetectedSpam(ctx, db)
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	require.NoError(t, ds.Write(ctx, DetectedSpamInfo{Text: "spam", Score: 70}))

	res, err := ds.Read(ctx, 1)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.True(t, res[0].Timestamp.After(before), "timestamp %v set on write", res[0].Timestamp)
}

func TestDetectedSpam_ReadLimit(t *testing.T) {
	ctx := context.Background()
	db, teardown := providers["sqlite"](t, ctx, "gr1")
	defer teardown()
	ds, err := NewDetectedSpam(ctx, db)
	require.NoError(t, err)

	for i := 0; i < maxDetectedSpamEntries+10; i++ {
		require.NoError(t, ds.Write(ctx, DetectedSpamInfo{Text: fmt.Sprintf("spam %d", i), Score: 60}))
	}

	tests := []struct {
		limit    int
		expected int
	}{
		{limit: 5, expected: 5},
		{limit: 0, expected: maxDetectedSpamEntries},
		{limit: -1, expected: maxDetectedSpamEntries},
		{limit: maxDetectedSpamEntries * 2, expected: maxDetectedSpamEntries},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit %d", tt.limit), func(t *testing.T) {
			res, err := ds.Read(ctx, tt.limit)
			require.NoError(t, err)
			assert.Len(t, res, tt.expected)
			assert.Equal(t, fmt.Sprintf("spam %d", maxDetectedSpamEntries+9), res[0].Text)
		})
	}
}

func TestDetectedSpam_ReadEmpty(t *testing.T) {
	ctx := context.Background()
	db, teardown := providers["sqlite"](t, ctx, "gr1")
	defer teardown()
	ds, err := NewDetectedSpam(ctx, db)
	require.NoError(t, err)

	res, err := ds.Read(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, res)
}
