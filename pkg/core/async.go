package core

import (
	"context"
	"sync"
)

// AsyncClient provides asynchronous ThreadPulse operations.
//
// It wraps the synchronous Client and executes operations in separate
// goroutines, making it suitable for agents that fold thread bookkeeping
// into an event loop without blocking on storage.
//
// All async methods return channels that will receive the results when
// operations complete. The client tracks all goroutines and provides
// Wait() to ensure all operations finish.
//
// Example:
//
//	asyncClient, _ := core.NewAsyncClient(config)
//	defer asyncClient.Close()
//
//	resultChan := asyncClient.OpenAsync(ctx, "Fix auth timeout", core.WithWorkspaceID("ws_acme"))
//	result := <-resultChan
//	if result.Error != nil {
//	    log.Fatal(result.Error)
//	}
type AsyncClient struct {
	*Client
	wg sync.WaitGroup
}

// NewAsyncClient creates a new asynchronous ThreadPulse client.
//
// Parameters:
//   - cfg: ThreadPulse configuration
//   - opts: Optional construction overrides (WithStore, WithEmbedder,
//     WithNodeID)
//
// Returns:
//   - *AsyncClient: The asynchronous client instance
//   - error: Error if configuration is invalid or initialization fails
func NewAsyncClient(cfg *Config, opts ...ClientOption) (*AsyncClient, error) {
	client, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}

	return &AsyncClient{
		Client: client,
	}, nil
}

// OpenAsync opens a thread asynchronously.
//
// The operation executes in a separate goroutine and returns results via a channel.
//
// Parameters:
//   - ctx: Context for controlling request lifecycle
//   - text: Thread summary text
//   - opts: Optional open options (WorkspaceID, AgentID, Class, etc.)
//
// Returns:
//   - <-chan *ThreadResult: Channel that receives the result containing Thread and error
func (ac *AsyncClient) OpenAsync(ctx context.Context, text string, opts ...OpenOption) <-chan *ThreadResult {
	resultChan := make(chan *ThreadResult, 1)
	ac.wg.Add(1)

	go func() {
		defer ac.wg.Done()
		thread, err := ac.Open(ctx, text, opts...)
		resultChan <- &ThreadResult{
			Thread: thread,
			Error:  err,
		}
		close(resultChan)
	}()

	return resultChan
}

// TouchAsync records activity on a thread asynchronously.
//
// The operation executes in a separate goroutine and returns results via a channel.
//
// Parameters:
//   - ctx: Context for controlling request lifecycle
//   - id: Thread ID
//   - opts: Optional touch options (WorkspaceID, AgentID, TouchTime)
//
// Returns:
//   - <-chan *ThreadResult: Channel that receives the result containing Thread and error
func (ac *AsyncClient) TouchAsync(ctx context.Context, id int64, opts ...TouchOption) <-chan *ThreadResult {
	resultChan := make(chan *ThreadResult, 1)
	ac.wg.Add(1)

	go func() {
		defer ac.wg.Done()
		thread, err := ac.Touch(ctx, id, opts...)
		resultChan <- &ThreadResult{
			Thread: thread,
			Error:  err,
		}
		close(resultChan)
	}()

	return resultChan
}

// SweepAsync runs a lifecycle sweep asynchronously.
//
// The operation executes in a separate goroutine and returns results via a channel.
//
// Parameters:
//   - ctx: Context for controlling request lifecycle
//   - opts: Optional sweep options (WorkspaceID, SweepTime, Cleanse, etc.)
//
// Returns:
//   - <-chan *SweepResult: Channel that receives the result containing SweepReport and error
func (ac *AsyncClient) SweepAsync(ctx context.Context, opts ...SweepOption) <-chan *SweepResult {
	resultChan := make(chan *SweepResult, 1)
	ac.wg.Add(1)

	go func() {
		defer ac.wg.Done()
		report, err := ac.Sweep(ctx, opts...)
		resultChan <- &SweepResult{
			Report: report,
			Error:  err,
		}
		close(resultChan)
	}()

	return resultChan
}

// ListAsync retrieves threads asynchronously.
//
// The operation executes in a separate goroutine and returns results via a channel.
//
// Parameters:
//   - ctx: Context for controlling request lifecycle
//   - opts: Optional list options (WorkspaceID, AgentID, Statuses, Limit, Offset)
//
// Returns:
//   - <-chan *ThreadListResult: Channel that receives results containing Threads and error
func (ac *AsyncClient) ListAsync(ctx context.Context, opts ...ListOption) <-chan *ThreadListResult {
	resultChan := make(chan *ThreadListResult, 1)
	ac.wg.Add(1)

	go func() {
		defer ac.wg.Done()
		threads, err := ac.List(ctx, opts...)
		resultChan <- &ThreadListResult{
			Threads: threads,
			Error:   err,
		}
		close(resultChan)
	}()

	return resultChan
}

// ResolveAsync resolves a thread asynchronously.
//
// Parameters:
//   - ctx: Context for controlling request lifecycle
//   - id: Thread ID
//   - opts: Optional resolve options (WorkspaceID, AgentID)
//
// Returns:
//   - <-chan *ThreadResult: Channel that receives the result containing Thread and error
func (ac *AsyncClient) ResolveAsync(ctx context.Context, id int64, opts ...ResolveOption) <-chan *ThreadResult {
	resultChan := make(chan *ThreadResult, 1)
	ac.wg.Add(1)

	go func() {
		defer ac.wg.Done()
		thread, err := ac.Resolve(ctx, id, opts...)
		resultChan <- &ThreadResult{
			Thread: thread,
			Error:  err,
		}
		close(resultChan)
	}()

	return resultChan
}

// Wait waits for all asynchronous operations to complete.
//
// This method blocks until all goroutines started by async methods have finished.
// It should be called before program exit to ensure all operations complete.
func (ac *AsyncClient) Wait() {
	ac.wg.Wait()
}

// Close closes the asynchronous client.
//
// It first waits for all asynchronous operations to complete, then closes the underlying client.
func (ac *AsyncClient) Close() error {
	ac.Wait()
	return ac.Client.Close()
}

// ThreadResult contains the result of a thread operation.
type ThreadResult struct {
	// Thread is the thread returned by the operation (nil if error occurred).
	Thread *Thread

	// Error is the error returned by the operation (nil if operation succeeded).
	Error error
}

// SweepResult contains the result of an asynchronous Sweep operation.
type SweepResult struct {
	// Report describes what the sweep run did.
	Report *SweepReport

	// Error is the error returned by the operation (nil if operation succeeded).
	Error error
}

// ThreadListResult contains the result of an asynchronous List operation.
type ThreadListResult struct {
	// Threads is the list of threads.
	Threads []*Thread

	// Error is the error returned by the operation (nil if operation succeeded).
	Error error
}
