package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/agentline/threadpulse-go/pkg/embedder"
	openaiEmbedder "github.com/agentline/threadpulse-go/pkg/embedder/openai"
	qwenEmbedder "github.com/agentline/threadpulse-go/pkg/embedder/qwen"
	"github.com/agentline/threadpulse-go/pkg/engine"
	"github.com/agentline/threadpulse-go/pkg/storage"
	mysqlStore "github.com/agentline/threadpulse-go/pkg/storage/mysql"
	postgresStore "github.com/agentline/threadpulse-go/pkg/storage/postgres"
	sqliteStore "github.com/agentline/threadpulse-go/pkg/storage/sqlite"
)

// Client is the main ThreadPulse client for thread management.
//
// It provides a complete interface for opening, touching, and sweeping
// long-lived work threads with support for:
//   - Vitality scoring and lifecycle transitions
//   - Duplicate refusal at open time (embedding and text tiers)
//   - Batch duplicate cleansing
//   - Multi-workspace and multi-agent scoping
//
// All scoring and matching happens locally; no external service is
// consulted at decision time. The optional embedding provider is only
// called to produce vectors for new text.
//
// The client is thread-safe and can be used concurrently from multiple
// goroutines.
//
// Example usage:
//
//	config, _ := core.LoadConfigFromEnv()
//	client, _ := core.NewClient(config)
//	defer client.Close()
//
//	thread, _ := client.Open(ctx, "Fix authentication timeout in login flow",
//	    core.WithWorkspaceID("ws_acme"),
//	    core.WithClass(engine.ClassOperational),
//	)
type Client struct {
	// config contains the client configuration.
	config *Config

	// store is the thread store for persistence.
	store storage.ThreadStore

	// embedder is the embedding provider for vector generation.
	// Nil when the client runs without embeddings.
	embedder embedder.Provider

	// node generates unique IDs for threads.
	node *snowflake.Node

	// mu protects concurrent access to the client.
	mu sync.RWMutex
}

// ClientOption customizes client construction.
type ClientOption func(*clientOptions)

type clientOptions struct {
	store    storage.ThreadStore
	embedder embedder.Provider
	nodeID   int64
}

// WithStore injects a pre-built thread store, bypassing the Store section
// of the configuration. Useful for custom backends and tests.
func WithStore(store storage.ThreadStore) ClientOption {
	return func(opts *clientOptions) {
		opts.store = store
	}
}

// WithEmbedder injects a pre-built embedding provider, bypassing the
// Embedder section of the configuration.
func WithEmbedder(provider embedder.Provider) ClientOption {
	return func(opts *clientOptions) {
		opts.embedder = provider
	}
}

// WithNodeID sets the snowflake node ID used for thread IDs. Give each
// client instance writing to a shared store its own node ID. Default: 1.
func WithNodeID(nodeID int64) ClientOption {
	return func(opts *clientOptions) {
		opts.nodeID = nodeID
	}
}

// NewClient creates a new ThreadPulse client.
//
// The client is initialized with:
//   - Thread store (SQLite, PostgreSQL, or MySQL)
//   - Embedding provider (OpenAI, Qwen, or none)
//
// Parameters:
//   - cfg: Configuration containing store and embedder settings. May be
//     nil when both collaborators are injected via options.
//   - opts: Optional construction overrides (WithStore, WithEmbedder,
//     WithNodeID)
//
// Returns a new Client instance, or an error if initialization fails.
//
// Example:
//
//	config := &core.Config{
//	    Store: core.StoreConfig{
//	        Provider: "sqlite",
//	        Config:   map[string]interface{}{"db_path": "./threads.db"},
//	    },
//	}
//	client, err := core.NewClient(config)
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	co := &clientOptions{nodeID: 1}
	for _, opt := range opts {
		opt(co)
	}
	if cfg == nil {
		cfg = &Config{}
	}

	store := co.store
	if store == nil {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		var err error
		store, err = initStore(cfg.Store)
		if err != nil {
			return nil, err
		}
	}

	provider := co.embedder
	if provider == nil {
		var err error
		provider, err = initEmbedder(cfg.Embedder)
		if err != nil {
			return nil, err
		}
	}

	node, err := snowflake.NewNode(co.nodeID)
	if err != nil {
		return nil, NewThreadError("NewClient", err)
	}

	return &Client{
		config:   cfg,
		store:    store,
		embedder: provider,
		node:     node,
	}, nil
}

// Open opens a new thread, refusing duplicates of open ones.
//
// The method:
//  1. Resolves a vector for the text (caller-supplied, provider, or none)
//  2. Checks the text against the open threads in the workspace
//  3. On a duplicate, touches the matched thread and returns it
//  4. Otherwise inserts a fresh thread in the emerging status
//
// A provider failure degrades the duplicate check to its text tiers;
// opening a thread never fails because embeddings were unavailable.
//
// Parameters:
//   - ctx: Context for cancellation
//   - text: Thread summary text
//   - opts: Optional parameters (WorkspaceID, AgentID, Class, Metadata,
//     Embedding, WithoutDedup)
//
// Returns the created thread, or the existing duplicate after touching it.
//
// Example:
//
//	thread, err := client.Open(ctx, "OD-692 migrate workspace database",
//	    core.WithWorkspaceID("ws_acme"),
//	    core.WithClass(engine.ClassBacklog),
//	    core.WithMetadata(map[string]interface{}{"issue": "OD-692"}),
//	)
func (c *Client) Open(ctx context.Context, text string, opts ...OpenOption) (*Thread, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	openOpts := applyOpenOptions(opts)

	if strings.TrimSpace(text) == "" {
		return nil, NewThreadError("Open", ErrInvalidInput)
	}

	// Check context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	now := time.Now().UTC()

	embedding := engine.NormalizeVector(openOpts.Embedding)
	if embedding == nil && c.embedder != nil {
		vec, err := c.embedder.Embed(ctx, text)
		if err != nil {
			// Embeddings sharpen the duplicate check but are not required
			// for it; the text tiers still run below.
			log.Printf("threadpulse: Open: embedding unavailable, using text tiers: %v", err)
		} else {
			embedding = engine.NormalizeVector(vec)
		}
	}

	if !openOpts.SkipDedup {
		existing, err := c.openThreads(ctx, openOpts.WorkspaceID, "")
		if err != nil {
			return nil, NewThreadError("Open", err)
		}

		candidates := make([]engine.Candidate, len(existing))
		for i, rec := range existing {
			candidates[i] = toCandidate(rec)
		}

		verdict := engine.CheckDuplicate(text, embedding, candidates)
		if verdict.IsDuplicate {
			if id, ok := candidateID(verdict.MatchedID); ok {
				log.Printf("threadpulse: Open: duplicate of thread %d via %s, touching it", id, verdict.Method)
				thread, _, err := c.touchThread(ctx, id, now, openOpts.WorkspaceID, "")
				if err != nil {
					return nil, NewThreadError("Open", err)
				}
				return thread, nil
			}
		}
	}

	status, vit := engine.ComputeLifecycleStatus(engine.LifecycleInput{
		VitalityInput: engine.VitalityInput{
			LastTouchedAt: now,
			TouchCount:    1,
			CreatedAt:     now,
			Class:         openOpts.Class,
		},
	}, now)

	thread := &Thread{
		ID:            c.node.Generate().Int64(),
		WorkspaceID:   openOpts.WorkspaceID,
		AgentID:       openOpts.AgentID,
		Text:          text,
		Class:         openOpts.Class,
		Status:        status,
		TouchCount:    1, // opening is the first touch
		VitalityScore: vit.Score,
		Embedding:     embedding,
		Metadata:      openOpts.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastTouchedAt: now,
	}

	if err := c.store.Insert(ctx, toStorageThread(thread)); err != nil {
		return nil, NewThreadError("Open", err)
	}

	return thread, nil
}

// Touch records activity on a thread.
//
// The method increments the touch count, moves the last-touched timestamp
// forward, recomputes the lifecycle from the updated state, and persists
// the result. A thread touched out of dormancy has its dormancy watermark
// cleared.
//
// Parameters:
//   - ctx: Context for cancellation
//   - id: Thread ID
//   - opts: Optional parameters (WorkspaceID, AgentID, TouchTime)
//
// Returns the updated thread.
//
// Example:
//
//	thread, err := client.Touch(ctx, threadID,
//	    core.WithWorkspaceIDForTouch("ws_acme"))
func (c *Client) Touch(ctx context.Context, id int64, opts ...TouchOption) (*Thread, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	touchOpts := applyTouchOptions(opts)
	at := touchOpts.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	thread, _, err := c.touchThread(ctx, id, at, touchOpts.WorkspaceID, touchOpts.AgentID)
	if err != nil {
		return nil, NewThreadError("Touch", err)
	}
	return thread, nil
}

// Refresh recomputes one thread's lifecycle from its stored snapshot.
//
// The method applies the lifecycle rules at the evaluation instant: it
// sets the dormancy watermark when the thread first turns dormant, clears
// it when the thread leaves dormancy, and archives the thread once it has
// been dormant past the archival threshold. Nothing is written when the
// persisted state already matches.
//
// Parameters:
//   - ctx: Context for cancellation
//   - id: Thread ID
//   - opts: Optional parameters (WorkspaceID, AgentID, RefreshTime)
//
// Returns the updated thread together with the full vitality breakdown
// it was evaluated against.
//
// Example:
//
//	thread, vit, err := client.Refresh(ctx, threadID)
//	fmt.Println(thread.Status, vit.Score, vit.Recency, vit.Frequency)
func (c *Client) Refresh(ctx context.Context, id int64, opts ...RefreshOption) (*Thread, *engine.VitalityResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	refreshOpts := applyRefreshOptions(opts)
	at := refreshOpts.At
	if at.IsZero() {
		at = time.Now().UTC()
	}

	rec, err := c.store.Get(ctx, id, &storage.GetOptions{
		WorkspaceID: refreshOpts.WorkspaceID,
		AgentID:     refreshOpts.AgentID,
	})
	if err != nil {
		return nil, nil, NewThreadError("Refresh", err)
	}

	updated, vit, err := c.applyLifecycle(ctx, rec, at, refreshOpts.WorkspaceID, refreshOpts.AgentID)
	if err != nil {
		return nil, nil, NewThreadError("Refresh", err)
	}

	return fromStorageThread(updated), &vit, nil
}

// CheckDuplicate reports whether the given text duplicates an open thread,
// without opening or modifying anything.
//
// When an embedding provider is configured (and the call does not opt out
// with WithTextOnlyCheck), the probe text is embedded and the embedding
// tier decides. Otherwise the token-overlap and normalized-text tiers run.
//
// Parameters:
//   - ctx: Context for cancellation
//   - text: Probe text
//   - opts: Optional parameters (WorkspaceID, AgentID, Embedding, TextOnly)
//
// Returns the verdict with the matched thread ID, the similarity measure
// where one applies, and the tier that decided.
//
// Example:
//
//	verdict, err := client.CheckDuplicate(ctx, "Fix auth timeout",
//	    core.WithWorkspaceIDForCheck("ws_acme"))
//	if verdict.IsDuplicate {
//	    fmt.Println("duplicate of", verdict.MatchedID, "via", verdict.Method)
//	}
func (c *Client) CheckDuplicate(ctx context.Context, text string, opts ...CheckOption) (*engine.DedupResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	checkOpts := applyCheckOptions(opts)

	embedding := engine.NormalizeVector(checkOpts.Embedding)
	if embedding == nil && !checkOpts.TextOnly && c.embedder != nil {
		vec, err := c.embedder.Embed(ctx, text)
		if err != nil {
			return nil, NewThreadError("CheckDuplicate", fmt.Errorf("%w: %v", ErrEmbeddingFailed, err))
		}
		embedding = engine.NormalizeVector(vec)
	}

	existing, err := c.openThreads(ctx, checkOpts.WorkspaceID, checkOpts.AgentID)
	if err != nil {
		return nil, NewThreadError("CheckDuplicate", err)
	}

	candidates := make([]engine.Candidate, len(existing))
	for i, rec := range existing {
		candidates[i] = toCandidate(rec)
	}

	verdict := engine.CheckDuplicate(text, embedding, candidates)
	return &verdict, nil
}

// Resolve moves a thread into the resolved terminal status.
//
// Resolution is caller-owned: the lifecycle rules never resolve a thread
// on their own, and a resolved thread stays resolved through sweeps.
//
// Example:
//
//	thread, err := client.Resolve(ctx, threadID,
//	    core.WithWorkspaceIDForResolve("ws_acme"))
func (c *Client) Resolve(ctx context.Context, id int64, opts ...ResolveOption) (*Thread, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	resolveOpts := applyResolveOptions(opts)
	thread, err := c.closeThread(ctx, id, engine.StatusResolved, resolveOpts.WorkspaceID, resolveOpts.AgentID)
	if err != nil {
		return nil, NewThreadError("Resolve", err)
	}
	return thread, nil
}

// Archive moves a thread into the archived terminal status immediately,
// without waiting for the dormancy watermark to age out.
//
// Example:
//
//	thread, err := client.Archive(ctx, threadID)
func (c *Client) Archive(ctx context.Context, id int64, opts ...ArchiveOption) (*Thread, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	archiveOpts := applyArchiveOptions(opts)
	thread, err := c.closeThread(ctx, id, engine.StatusArchived, archiveOpts.WorkspaceID, archiveOpts.AgentID)
	if err != nil {
		return nil, NewThreadError("Archive", err)
	}
	return thread, nil
}

// Get retrieves a thread by its ID with optional access control.
//
// Parameters:
//   - ctx: Context for cancellation
//   - id: Thread ID
//   - opts: Optional Get options for access control (WorkspaceID, AgentID)
//
// Returns the thread if found and access is granted, or an error otherwise.
//
// Example:
//
//	// Get without access control
//	thread, err := client.Get(ctx, threadID)
//
//	// Get with workspace access control (multi-tenant)
//	thread, err := client.Get(ctx, threadID, core.WithWorkspaceIDForGet("ws_acme"))
func (c *Client) Get(ctx context.Context, id int64, opts ...GetOption) (*Thread, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	getOpts := applyGetOptions(opts)

	rec, err := c.store.Get(ctx, id, &storage.GetOptions{
		WorkspaceID: getOpts.WorkspaceID,
		AgentID:     getOpts.AgentID,
	})
	if err != nil {
		return nil, NewThreadError("Get", err)
	}

	return fromStorageThread(rec), nil
}

// List retrieves threads with optional filtering.
//
// Results can be filtered by WorkspaceID, AgentID, and lifecycle status,
// and paginated using Limit and Offset.
//
// Parameters:
//   - ctx: Context for cancellation
//   - opts: Optional parameters (WorkspaceID, AgentID, Statuses, Limit,
//     Offset, OldestFirst)
//
// Returns a list of threads, newest first unless WithOldestFirst is given.
//
// Example:
//
//	threads, err := client.List(ctx,
//	    core.WithWorkspaceIDForList("ws_acme"),
//	    core.WithOpenOnly(),
//	    core.WithLimit(50),
//	)
func (c *Client) List(ctx context.Context, opts ...ListOption) ([]*Thread, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	listOpts := applyListOptions(opts)

	recs, err := c.store.List(ctx, &storage.ListOptions{
		WorkspaceID: listOpts.WorkspaceID,
		AgentID:     listOpts.AgentID,
		Statuses:    statusStrings(listOpts.Statuses),
		Limit:       listOpts.Limit,
		Offset:      listOpts.Offset,
		Ascending:   listOpts.OldestFirst,
	})
	if err != nil {
		return nil, NewThreadError("List", err)
	}

	return fromStorageThreads(recs), nil
}

// Delete deletes a thread by its ID with optional access control.
//
// Deletion removes the record entirely. To close a thread while keeping
// its record, use Resolve or Archive.
//
// Example:
//
//	err := client.Delete(ctx, threadID, core.WithWorkspaceIDForDelete("ws_acme"))
func (c *Client) Delete(ctx context.Context, id int64, opts ...DeleteOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	deleteOpts := applyDeleteOptions(opts)

	if err := c.store.Delete(ctx, id, &storage.DeleteOptions{
		WorkspaceID: deleteOpts.WorkspaceID,
		AgentID:     deleteOpts.AgentID,
	}); err != nil {
		return NewThreadError("Delete", err)
	}

	return nil
}

// DeleteAll deletes all threads matching the given filters.
//
// If no filters are provided, deletes ALL threads (use with caution).
//
// Example:
//
//	err := client.DeleteAll(ctx, core.WithWorkspaceIDForDeleteAll("ws_acme"))
func (c *Client) DeleteAll(ctx context.Context, opts ...DeleteAllOption) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	deleteAllOpts := applyDeleteAllOptions(opts)

	if err := c.store.DeleteAll(ctx, &storage.DeleteAllOptions{
		WorkspaceID: deleteAllOpts.WorkspaceID,
		AgentID:     deleteAllOpts.AgentID,
	}); err != nil {
		return NewThreadError("DeleteAll", err)
	}

	return nil
}

// Close closes the client and releases all resources.
//
// This method:
//   - Closes the thread store connection
//   - Closes the embedding provider, when one is configured
//
// Returns the first error encountered during cleanup, or nil if all
// resources were closed successfully.
//
// Example:
//
//	defer client.Close()
func (c *Client) Close() error {
	var errs []error

	if c.store != nil {
		if err := c.store.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if c.embedder != nil {
		if err := c.embedder.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errs[0] // Return the first error
	}

	return nil
}

// openThreads lists every open thread in scope, oldest first. The caller
// must hold c.mu.
func (c *Client) openThreads(ctx context.Context, workspaceID, agentID string) ([]*storage.Thread, error) {
	return c.store.List(ctx, &storage.ListOptions{
		WorkspaceID: workspaceID,
		AgentID:     agentID,
		Statuses:    statusStrings(OpenStatuses()),
		Ascending:   true,
	})
}

// touchThread records activity and reapplies the lifecycle rules.
// The caller must hold c.mu.
func (c *Client) touchThread(ctx context.Context, id int64, at time.Time, workspaceID, agentID string) (*Thread, *engine.VitalityResult, error) {
	rec, err := c.store.RecordTouch(ctx, id, at, &storage.UpdateOptions{
		WorkspaceID: workspaceID,
		AgentID:     agentID,
	})
	if err != nil {
		return nil, nil, err
	}

	updated, vit, err := c.applyLifecycle(ctx, rec, at, workspaceID, agentID)
	if err != nil {
		return nil, nil, err
	}

	return fromStorageThread(updated), &vit, nil
}

// closeThread moves a thread into a terminal status, keeping its last
// score and watermark on the record. The caller must hold c.mu.
func (c *Client) closeThread(ctx context.Context, id int64, status engine.LifecycleStatus, workspaceID, agentID string) (*Thread, error) {
	rec, err := c.store.Get(ctx, id, &storage.GetOptions{
		WorkspaceID: workspaceID,
		AgentID:     agentID,
	})
	if err != nil {
		return nil, err
	}

	updated, err := c.store.SetLifecycle(ctx, rec.ID, &storage.LifecycleUpdate{
		Status:        string(status),
		VitalityScore: rec.VitalityScore,
		DormantSince:  rec.DormantSince,
	}, &storage.UpdateOptions{
		WorkspaceID: workspaceID,
		AgentID:     agentID,
	})
	if err != nil {
		return nil, err
	}

	return fromStorageThread(updated), nil
}

// lifecyclePlan stages the lifecycle write needed to reconcile a stored
// record with a computed decision.
type lifecyclePlan struct {
	update   storage.LifecycleUpdate
	updated  bool
	archived bool
	marked   bool // dormancy watermark set
	cleared  bool // dormancy watermark cleared
}

// planLifecycle compares a computed lifecycle decision against the stored
// state and stages the write needed to reconcile them, if any.
//
// The watermark records when dormancy began. It is set on the first
// evaluation that lands on dormant, kept while the thread stays dormant
// or crosses into archived, and cleared when activity revives the thread.
func planLifecycle(rec *storage.Thread, status engine.LifecycleStatus, vit engine.VitalityResult, now time.Time) lifecyclePlan {
	watermark := rec.DormantSince
	switch status {
	case engine.StatusDormant:
		if watermark == nil {
			w := now
			watermark = &w
		}
	case engine.StatusEmerging, engine.StatusActive, engine.StatusCooling:
		watermark = nil
	}

	var plan lifecyclePlan
	if string(status) == rec.Status && vit.Score == rec.VitalityScore && sameWatermark(watermark, rec.DormantSince) {
		return plan
	}

	plan.updated = true
	plan.archived = status == engine.StatusArchived && rec.Status != string(engine.StatusArchived)
	plan.marked = watermark != nil && rec.DormantSince == nil
	plan.cleared = watermark == nil && rec.DormantSince != nil
	plan.update = storage.LifecycleUpdate{
		Status:        string(status),
		VitalityScore: vit.Score,
		DormantSince:  watermark,
	}
	return plan
}

// applyLifecycle evaluates the lifecycle rules for a stored record at the
// given instant and persists the result when it differs from the stored
// state. The caller must hold c.mu.
func (c *Client) applyLifecycle(ctx context.Context, rec *storage.Thread, now time.Time, workspaceID, agentID string) (*storage.Thread, engine.VitalityResult, error) {
	status, vit := engine.ComputeLifecycleStatus(lifecycleInput(rec), now)

	plan := planLifecycle(rec, status, vit, now)
	if !plan.updated {
		return rec, vit, nil
	}

	updated, err := c.store.SetLifecycle(ctx, rec.ID, &plan.update, &storage.UpdateOptions{
		WorkspaceID: workspaceID,
		AgentID:     agentID,
	})
	if err != nil {
		return nil, vit, err
	}

	return updated, vit, nil
}

// sameWatermark compares two dormancy watermarks for equality.
func sameWatermark(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// initStore initializes the storage backend.
func initStore(cfg StoreConfig) (storage.ThreadStore, error) {
	switch cfg.Provider {
	case "sqlite":
		return sqliteStore.NewClient(&sqliteStore.Config{
			DBPath:    configString(cfg.Config, "db_path", "./threadpulse.db"),
			TableName: configString(cfg.Config, "table_name", "threads"),
		})
	case "postgres":
		return postgresStore.NewClient(&postgresStore.Config{
			Host:      configString(cfg.Config, "host", "localhost"),
			Port:      configInt(cfg.Config, "port", 5432),
			User:      configString(cfg.Config, "user", "postgres"),
			Password:  configString(cfg.Config, "password", ""),
			DBName:    configString(cfg.Config, "db_name", "threadpulse"),
			TableName: configString(cfg.Config, "table_name", "threads"),
			SSLMode:   configString(cfg.Config, "ssl_mode", "disable"),
		})
	case "mysql":
		return mysqlStore.NewClient(&mysqlStore.Config{
			Host:      configString(cfg.Config, "host", "127.0.0.1"),
			Port:      configInt(cfg.Config, "port", 3306),
			User:      configString(cfg.Config, "user", "root"),
			Password:  configString(cfg.Config, "password", ""),
			DBName:    configString(cfg.Config, "db_name", "threadpulse"),
			TableName: configString(cfg.Config, "table_name", "threads"),
		})
	default:
		return nil, NewThreadError("initStore", ErrInvalidConfig)
	}
}

// initEmbedder initializes the embedder provider. A "none" or empty
// provider yields a nil embedder and the client runs text-only.
func initEmbedder(cfg EmbedderConfig) (embedder.Provider, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "openai":
		return openaiEmbedder.NewClient(&openaiEmbedder.Config{
			APIKey:            cfg.APIKey,
			BaseURL:           cfg.BaseURL,
			Dimensions:        cfg.Dimensions,
			RequestsPerMinute: cfg.RequestsPerMinute,
		})
	case "qwen":
		return qwenEmbedder.NewClient(&qwenEmbedder.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			Dimensions: cfg.Dimensions,
		})
	default:
		return nil, NewThreadError("initEmbedder", ErrInvalidConfig)
	}
}
