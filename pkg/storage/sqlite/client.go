// Package sqlite provides the SQLite implementation of thread storage.
//
// SQLite is a lightweight, file-based database suitable for local development
// and small-scale deployments. Embeddings are stored as JSON strings in TEXT
// fields; similarity math runs in the engine, so no vector extension is
// needed.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/agentline/threadpulse-go/pkg/storage"
)

// Client implements ThreadStore using SQLite as the backend.
type Client struct {
	// db is the SQLite database connection.
	db *sql.DB

	// tableName is the name of the table storing threads.
	tableName string
}

var _ storage.ThreadStore = (*Client)(nil)

// Config contains configuration for creating a SQLite ThreadStore.
type Config struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// TableName is the name of the table to use.
	TableName string
}

// NewClient creates a new SQLite ThreadStore client.
//
// Parameters:
//   - cfg: Configuration containing the database path and table name
//
// Returns:
//   - *Client: The SQLite client instance
//   - error: Error if database connection or table creation fails
func NewClient(cfg *Config) (*Client, error) {
	// Create parent directory if it doesn't exist
	dbDir := filepath.Dir(cfg.DBPath)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("NewSQLiteClient: failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_foreign_keys=1&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("NewSQLiteClient: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("NewSQLiteClient: %w", err)
	}

	client := &Client{
		db:        db,
		tableName: cfg.TableName,
	}

	// Initialize table structure
	if err := client.initTables(context.Background()); err != nil {
		return nil, err
	}

	return client, nil
}

// initTables initializes the database table structure.
//
// SQLite stores embeddings as JSON strings in TEXT fields.
func (c *Client) initTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY,
			workspace_id TEXT NOT NULL,
			agent_id TEXT,
			content TEXT NOT NULL,
			class TEXT NOT NULL,
			status TEXT NOT NULL,
			touch_count INTEGER NOT NULL DEFAULT 0,
			vitality_score REAL NOT NULL DEFAULT 0,
			embedding TEXT,
			metadata TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			last_touched_at DATETIME NOT NULL,
			dormant_since DATETIME
		)
	`, c.tableName)

	_, err := c.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("initTables: %w", err)
	}

	// Scope index for tenant-filtered reads
	indexQuery := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_%s_workspace_agent ON %s(workspace_id, agent_id)
	`, c.tableName, c.tableName)
	if _, err := c.db.ExecContext(ctx, indexQuery); err != nil {
		return fmt.Errorf("initTables: %w", err)
	}

	// Status index for sweep and status-filtered listings
	statusIndexQuery := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_%s_workspace_status ON %s(workspace_id, status)
	`, c.tableName, c.tableName)
	if _, err := c.db.ExecContext(ctx, statusIndexQuery); err != nil {
		return fmt.Errorf("initTables: %w", err)
	}

	return nil
}

// Insert inserts a thread into the SQLite database.
//
// All timestamps are written exactly as supplied on the record; the store
// never substitutes its own clock for thread state.
func (c *Client) Insert(ctx context.Context, thread *storage.Thread) error {
	query := fmt.Sprintf(`
		INSERT INTO %s
		(id, workspace_id, agent_id, content, class, status, touch_count, vitality_score,
		 embedding, metadata, created_at, updated_at, last_touched_at, dormant_since)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.tableName)

	embeddingArg, err := encodeEmbedding(thread.Embedding)
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}

	metadataJSON, err := json.Marshal(thread.Metadata)
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}

	_, err = c.db.ExecContext(ctx, query,
		thread.ID,
		thread.WorkspaceID,
		thread.AgentID,
		thread.Text,
		thread.Class,
		thread.Status,
		thread.TouchCount,
		thread.VitalityScore,
		embeddingArg,
		string(metadataJSON),
		thread.CreatedAt,
		thread.UpdatedAt,
		thread.LastTouchedAt,
		thread.DormantSince,
	)
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}

	return nil
}

// Get retrieves a thread by ID with optional access control.
func (c *Client) Get(ctx context.Context, id int64, opts *storage.GetOptions) (*storage.Thread, error) {
	if opts == nil {
		opts = &storage.GetOptions{}
	}

	// Build WHERE clause with access control
	whereClause := "WHERE id = ?"
	args := []interface{}{id}

	if opts.WorkspaceID != "" {
		whereClause += " AND workspace_id = ?"
		args = append(args, opts.WorkspaceID)
	}
	if opts.AgentID != "" {
		whereClause += " AND agent_id = ?"
		args = append(args, opts.AgentID)
	}

	query := fmt.Sprintf(`
		SELECT id, workspace_id, agent_id, content, class, status, touch_count,
		       vitality_score, embedding, metadata, created_at, updated_at,
		       last_touched_at, dormant_since
		FROM %s
		%s
	`, c.tableName, whereClause)

	row := c.db.QueryRowContext(ctx, query, args...)

	thread, err := scanThread(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("Get: %w", storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}

	return thread, nil
}

// List retrieves threads with optional filtering and pagination.
func (c *Client) List(ctx context.Context, opts *storage.ListOptions) ([]*storage.Thread, error) {
	if opts == nil {
		opts = &storage.ListOptions{}
	}

	whereClause, args := buildWhereClause(opts.WorkspaceID, opts.AgentID, opts.Statuses)

	order := "DESC"
	if opts.Ascending {
		order = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT id, workspace_id, agent_id, content, class, status, touch_count,
		       vitality_score, embedding, metadata, created_at, updated_at,
		       last_touched_at, dormant_since
		FROM %s
		%s
		ORDER BY created_at %s, id %s
	`, c.tableName, whereClause, order, order)

	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var threads []*storage.Thread
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}

	return threads, nil
}

// UpdateText replaces a thread's text and embedding with optional access control.
func (c *Client) UpdateText(ctx context.Context, id int64, text string, embedding []float64, opts *storage.UpdateOptions) (*storage.Thread, error) {
	embeddingArg, err := encodeEmbedding(embedding)
	if err != nil {
		return nil, fmt.Errorf("UpdateText: %w", err)
	}

	setClause := "SET content = ?, embedding = ?, updated_at = ?"
	args := []interface{}{text, embeddingArg, time.Now()}

	return c.update(ctx, "UpdateText", id, setClause, args, opts)
}

// RecordTouch increments the touch count and advances the last-touched
// timestamp to touchedAt.
func (c *Client) RecordTouch(ctx context.Context, id int64, touchedAt time.Time, opts *storage.UpdateOptions) (*storage.Thread, error) {
	setClause := "SET touch_count = touch_count + 1, last_touched_at = ?, updated_at = ?"
	args := []interface{}{touchedAt, touchedAt}

	return c.update(ctx, "RecordTouch", id, setClause, args, opts)
}

// SetLifecycle overwrites the thread's lifecycle state.
func (c *Client) SetLifecycle(ctx context.Context, id int64, update *storage.LifecycleUpdate, opts *storage.UpdateOptions) (*storage.Thread, error) {
	setClause := "SET status = ?, vitality_score = ?, dormant_since = ?, updated_at = ?"
	args := []interface{}{update.Status, update.VitalityScore, update.DormantSince, time.Now()}

	return c.update(ctx, "SetLifecycle", id, setClause, args, opts)
}

// update applies a SET clause under access control and returns the updated
// thread via re-read.
func (c *Client) update(ctx context.Context, op string, id int64, setClause string, args []interface{}, opts *storage.UpdateOptions) (*storage.Thread, error) {
	if opts == nil {
		opts = &storage.UpdateOptions{}
	}

	whereClause := "WHERE id = ?"
	args = append(args, id)

	if opts.WorkspaceID != "" {
		whereClause += " AND workspace_id = ?"
		args = append(args, opts.WorkspaceID)
	}
	if opts.AgentID != "" {
		whereClause += " AND agent_id = ?"
		args = append(args, opts.AgentID)
	}

	query := fmt.Sprintf("UPDATE %s %s %s", c.tableName, setClause, whereClause)

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return c.Get(ctx, id, &storage.GetOptions{
		WorkspaceID: opts.WorkspaceID,
		AgentID:     opts.AgentID,
	})
}

// Delete deletes a thread by ID with optional access control.
func (c *Client) Delete(ctx context.Context, id int64, opts *storage.DeleteOptions) error {
	if opts == nil {
		opts = &storage.DeleteOptions{}
	}

	whereClause := "WHERE id = ?"
	args := []interface{}{id}

	if opts.WorkspaceID != "" {
		whereClause += " AND workspace_id = ?"
		args = append(args, opts.WorkspaceID)
	}
	if opts.AgentID != "" {
		whereClause += " AND agent_id = ?"
		args = append(args, opts.AgentID)
	}

	query := fmt.Sprintf("DELETE FROM %s %s", c.tableName, whereClause)

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("Delete: %w", storage.ErrNotFound)
	}

	return nil
}

// DeleteAll deletes all threads matching the given filters.
func (c *Client) DeleteAll(ctx context.Context, opts *storage.DeleteAllOptions) error {
	if opts == nil {
		opts = &storage.DeleteAllOptions{}
	}

	whereClause, args := buildWhereClause(opts.WorkspaceID, opts.AgentID, nil)

	query := fmt.Sprintf("DELETE FROM %s %s", c.tableName, whereClause)

	_, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("DeleteAll: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// scanThread scans a thread from a database row or rows.
func scanThread(scanner interface{}) (*storage.Thread, error) {
	var thread storage.Thread
	var agentID sql.NullString
	var embeddingStr sql.NullString
	var metadataStr sql.NullString
	var dormantSince sql.NullTime

	dest := []interface{}{
		&thread.ID,
		&thread.WorkspaceID,
		&agentID,
		&thread.Text,
		&thread.Class,
		&thread.Status,
		&thread.TouchCount,
		&thread.VitalityScore,
		&embeddingStr,
		&metadataStr,
		&thread.CreatedAt,
		&thread.UpdatedAt,
		&thread.LastTouchedAt,
		&dormantSince,
	}

	var err error
	switch s := scanner.(type) {
	case *sql.Row:
		err = s.Scan(dest...)
	case *sql.Rows:
		err = s.Scan(dest...)
	default:
		return nil, fmt.Errorf("unsupported scanner type")
	}
	if err != nil {
		return nil, err
	}

	thread.AgentID = agentID.String

	// Parse embedding, preserving "absent" as nil
	if embeddingStr.Valid && embeddingStr.String != "" {
		if err := json.Unmarshal([]byte(embeddingStr.String), &thread.Embedding); err != nil {
			return nil, fmt.Errorf("parse embedding: %w", err)
		}
	}

	// Parse metadata
	if metadataStr.Valid && metadataStr.String != "" {
		if err := json.Unmarshal([]byte(metadataStr.String), &thread.Metadata); err != nil {
			return nil, fmt.Errorf("parse metadata: %w", err)
		}
	}

	if dormantSince.Valid {
		thread.DormantSince = &dormantSince.Time
	}

	return &thread, nil
}

// encodeEmbedding renders an embedding as a JSON argument, mapping the
// absent vector (nil) to SQL NULL rather than "[]" or "null" text.
func encodeEmbedding(embedding []float64) (interface{}, error) {
	if embedding == nil {
		return nil, nil
	}
	data, err := json.Marshal(embedding)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
