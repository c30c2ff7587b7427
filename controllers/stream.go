package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/socal-mls/map-api/cluster"
	"github.com/socal-mls/map-api/types"
)

// streamBatchSize is the maximum listings per streamed frame.
const streamBatchSize = 50

// Stream frame order is fixed: exactly one metadata frame, zero or more
// listings frames in cursor order, then one complete frame. A single
// error frame may replace the remainder, after which the stream closes.
type metadataFrame struct {
	Type             string          `json:"type"`
	Zoom             int             `json:"zoom"`
	TotalCount       int             `json:"totalCount"`
	BatchSize        int             `json:"batchSize"`
	ClusteringMethod string          `json:"clusteringMethod,omitempty"`
	Clusters         []types.Cluster `json:"clusters,omitempty"`
	ClusterCount     int             `json:"clusterCount,omitempty"`
}

type listingsFrame struct {
	Type      string                 `json:"type"`
	Listings  []types.ListingSummary `json:"listings"`
	Count     int                    `json:"count"`
	TotalSent int                    `json:"totalSent"`
}

type completeFrame struct {
	Type       string `json:"type"`
	TotalSent  int    `json:"totalSent"`
	TotalCount int    `json:"totalCount"`
}

type errorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func writeFrame(w io.Writer, flush func(), v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", b); err != nil {
		return err
	}
	if flush != nil {
		flush()
	}
	return nil
}

// streamListingFrames drains the cursor into ≤streamBatchSize frames,
// preserving cursor order. It aborts, rather than drains, when the
// request context is cancelled so the datastore cursor is released
// promptly on client disconnect.
func streamListingFrames(ctx context.Context, w io.Writer, flush func(), cur cluster.ListingCursor) (int, error) {
	sent := 0
	batch := make([]types.ListingSummary, 0, streamBatchSize)

	emit := func() error {
		if len(batch) == 0 {
			return nil
		}
		frame := listingsFrame{
			Type:      "listings",
			Listings:  batch,
			Count:     len(batch),
			TotalSent: sent + len(batch),
		}
		if err := writeFrame(w, flush, frame); err != nil {
			return err
		}
		sent += len(batch)
		batch = make([]types.ListingSummary, 0, streamBatchSize)
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		s, ok, err := cur.Next()
		if err != nil {
			return sent, err
		}
		if !ok {
			break
		}
		batch = append(batch, s)
		if len(batch) >= streamBatchSize {
			if err := emit(); err != nil {
				return sent, err
			}
		}
	}
	if err := emit(); err != nil {
		return sent, err
	}
	return sent, nil
}

func (mc *MapController) streamMapResponse(c *gin.Context, req cluster.Request) {
	ctx := c.Request.Context()
	requestID := c.GetString("requestID")

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	flush := func() { c.Writer.Flush() }

	prep, err := mc.Engine.Prepare(ctx, req)
	if err != nil {
		log.Printf("stream %s: prepare failed: %v", requestID, err)
		writeFrame(c.Writer, flush, errorFrame{Type: "error", Message: "Failed to stream listings"})
		return
	}
	res := prep.Result

	meta := metadataFrame{
		Type:       "metadata",
		Zoom:       res.Zoom,
		TotalCount: res.TotalCount,
		BatchSize:  streamBatchSize,
	}
	if res.Type == "clusters" {
		meta.ClusteringMethod = res.ClusteringMethod
		meta.Clusters = res.Clusters
		meta.ClusterCount = len(res.Clusters)
	}
	if err := writeFrame(c.Writer, flush, meta); err != nil {
		return
	}

	sent := 0
	if prep.ListingLimit > 0 {
		cur, err := prep.OpenListings(ctx)
		if err != nil {
			log.Printf("stream %s: cursor open failed: %v", requestID, err)
			writeFrame(c.Writer, flush, errorFrame{Type: "error", Message: "Failed to stream listings"})
			return
		}
		defer cur.Close()

		sent, err = streamListingFrames(ctx, c.Writer, flush, cur)
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("stream %s: client disconnected after %d listings", requestID, sent)
				return
			}
			log.Printf("stream %s: cursor iteration failed: %v", requestID, err)
			writeFrame(c.Writer, flush, errorFrame{Type: "error", Message: "Failed to stream listings"})
			return
		}
	}

	writeFrame(c.Writer, flush, completeFrame{
		Type:       "complete",
		TotalSent:  sent,
		TotalCount: res.TotalCount,
	})
}
