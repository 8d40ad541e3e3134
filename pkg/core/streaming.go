package core

import (
	"context"

	"github.com/agentline/threadpulse-go/pkg/storage"
)

// StreamingListResult contains a batch of threads from a streaming list.
type StreamingListResult struct {
	// Threads is a batch of threads.
	Threads []*Thread

	// BatchIndex is the index of this batch (0-based).
	BatchIndex int

	// IsLastBatch indicates whether this is the last batch.
	IsLastBatch bool

	// Error contains any error that occurred during streaming (if any).
	Error error
}

// ListStream performs streaming retrieval of threads for large datasets.
//
// Instead of loading all threads into memory at once, this method streams
// results in batches through a channel, making it suitable for processing
// large workspaces without exhausting system resources.
//
// The stream pages through the store with offset-based pagination, so
// threads opened or closed while the stream runs may shift batches.
//
// Parameters:
//   - ctx: Context for cancellation
//   - batchSize: Number of threads per batch
//   - opts: Optional parameters (WorkspaceID, AgentID, Statuses, Limit, Offset)
//
// Returns a channel that receives StreamingListResult batches.
// The channel is closed when all threads have been sent or an error occurs.
//
// Example:
//
//	resultChan := client.ListStream(ctx, 100, // batch size
//	    core.WithWorkspaceIDForList("ws_acme"),
//	    core.WithOpenOnly(),
//	)
//
//	for result := range resultChan {
//	    if result.Error != nil {
//	        log.Fatal(result.Error)
//	    }
//	    for _, thread := range result.Threads {
//	        processThread(thread)
//	    }
//	}
func (c *Client) ListStream(ctx context.Context, batchSize int, opts ...ListOption) <-chan *StreamingListResult {
	resultChan := make(chan *StreamingListResult, 1)

	go func() {
		defer close(resultChan)

		c.mu.RLock()
		defer c.mu.RUnlock()

		listOpts := applyListOptions(opts)

		if batchSize <= 0 {
			batchSize = 100
		}

		// Determine maximum results
		maxResults := listOpts.Limit
		if maxResults <= 0 {
			maxResults = 10000 // Default maximum for streaming
		}

		storageOpts := &storage.ListOptions{
			WorkspaceID: listOpts.WorkspaceID,
			AgentID:     listOpts.AgentID,
			Statuses:    statusStrings(listOpts.Statuses),
			Ascending:   listOpts.OldestFirst,
		}

		batchIndex := 0
		offset := listOpts.Offset

		for {
			// Check context cancellation
			select {
			case <-ctx.Done():
				resultChan <- &StreamingListResult{
					BatchIndex: batchIndex,
					Error:      ctx.Err(),
				}
				return
			default:
			}

			storageOpts.Offset = offset
			storageOpts.Limit = batchSize

			// Adjust batch size for the last batch
			remaining := maxResults - (offset - listOpts.Offset)
			if remaining <= 0 {
				break
			}
			if remaining < batchSize {
				storageOpts.Limit = remaining
			}

			recs, err := c.store.List(ctx, storageOpts)
			if err != nil {
				resultChan <- &StreamingListResult{
					BatchIndex: batchIndex,
					Error:      NewThreadError("ListStream", err),
				}
				return
			}

			if len(recs) == 0 {
				// An empty first batch still reports itself so consumers
				// observe a terminating batch.
				if batchIndex == 0 {
					resultChan <- &StreamingListResult{
						Threads:     []*Thread{},
						BatchIndex:  0,
						IsLastBatch: true,
					}
				}
				return
			}

			isLastBatch := len(recs) < storageOpts.Limit || offset-listOpts.Offset+len(recs) >= maxResults

			resultChan <- &StreamingListResult{
				Threads:     fromStorageThreads(recs),
				BatchIndex:  batchIndex,
				IsLastBatch: isLastBatch,
			}

			if isLastBatch {
				return
			}

			offset += len(recs)
			batchIndex++
		}
	}()

	return resultChan
}
