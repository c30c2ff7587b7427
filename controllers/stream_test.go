package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/socal-mls/map-api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceCursor serves listings from memory in a fixed order.
type sliceCursor struct {
	items  []types.ListingSummary
	pos    int
	err    error
	closed bool
}

func (c *sliceCursor) Next() (types.ListingSummary, bool, error) {
	if c.err != nil && c.pos == len(c.items) {
		return types.ListingSummary{}, false, c.err
	}
	if c.pos >= len(c.items) {
		return types.ListingSummary{}, false, nil
	}
	s := c.items[c.pos]
	c.pos++
	return s, true, nil
}

func (c *sliceCursor) Close() error {
	c.closed = true
	return nil
}

func makeListings(n int) []types.ListingSummary {
	out := make([]types.ListingSummary, n)
	for i := range out {
		out[i] = types.ListingSummary{
			ListingID: fmt.Sprintf("L%04d", i),
			Latitude:  33.7 + float64(i)*0.001,
			Longitude: -116.3,
			ListPrice: 500000,
		}
	}
	return out
}

func decodeFrames(t *testing.T, raw string) []map[string]interface{} {
	t.Helper()
	var frames []map[string]interface{}
	for _, line := range strings.Split(raw, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var frame map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &frame))
		frames = append(frames, frame)
	}
	return frames
}

func TestStreamListingFramesBatching(t *testing.T) {
	var buf bytes.Buffer
	cur := &sliceCursor{items: makeListings(120)}

	sent, err := streamListingFrames(context.Background(), &buf, nil, cur)
	require.NoError(t, err)
	assert.Equal(t, 120, sent)

	frames := decodeFrames(t, buf.String())
	require.Len(t, frames, 3)

	assert.Equal(t, float64(50), frames[0]["count"])
	assert.Equal(t, float64(50), frames[1]["count"])
	assert.Equal(t, float64(20), frames[2]["count"])
	assert.Equal(t, float64(50), frames[0]["totalSent"])
	assert.Equal(t, float64(100), frames[1]["totalSent"])
	assert.Equal(t, float64(120), frames[2]["totalSent"])
}

func TestStreamListingFramesPreservesOrder(t *testing.T) {
	var buf bytes.Buffer
	cur := &sliceCursor{items: makeListings(75)}

	_, err := streamListingFrames(context.Background(), &buf, nil, cur)
	require.NoError(t, err)

	var ids []string
	for _, frame := range decodeFrames(t, buf.String()) {
		for _, item := range frame["listings"].([]interface{}) {
			ids = append(ids, item.(map[string]interface{})["listingId"].(string))
		}
	}
	require.Len(t, ids, 75)
	for i, id := range ids {
		assert.Equal(t, fmt.Sprintf("L%04d", i), id)
	}
}

func TestStreamListingFramesEmptyCursor(t *testing.T) {
	var buf bytes.Buffer
	cur := &sliceCursor{}

	sent, err := streamListingFrames(context.Background(), &buf, nil, cur)
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, decodeFrames(t, buf.String()))
}

func TestStreamListingFramesCursorError(t *testing.T) {
	var buf bytes.Buffer
	cur := &sliceCursor{items: makeListings(60), err: errors.New("connection reset")}

	sent, err := streamListingFrames(context.Background(), &buf, nil, cur)
	assert.Error(t, err)
	// The first full batch went out before the cursor failed.
	assert.Equal(t, 50, sent)
}

func TestStreamListingFramesCancellationAborts(t *testing.T) {
	var buf bytes.Buffer
	cur := &sliceCursor{items: makeListings(500)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sent, err := streamListingFrames(ctx, &buf, nil, cur)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sent)
	// The cursor must not have been drained.
	assert.Zero(t, cur.pos)
}

func TestWriteFrameFormat(t *testing.T) {
	var buf bytes.Buffer
	flushed := false

	err := writeFrame(&buf, func() { flushed = true }, completeFrame{Type: "complete", TotalSent: 7, TotalCount: 7})
	require.NoError(t, err)
	assert.True(t, flushed)
	assert.Equal(t, "data: {\"type\":\"complete\",\"totalSent\":7,\"totalCount\":7}\n\n", buf.String())
}
