// Package postgres provides the PostgreSQL implementation of thread storage.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/agentline/threadpulse-go/pkg/storage"
)

// Client is a PostgreSQL thread store.
type Client struct {
	db        *sql.DB
	tableName string
}

var _ storage.ThreadStore = (*Client)(nil)

// Config contains PostgreSQL configuration.
type Config struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	TableName string
	SSLMode   string
}

// NewClient creates a new PostgreSQL client.
func NewClient(cfg *Config) (*Client, error) {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, sslMode)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("NewPostgresClient: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("NewPostgresClient: %w", err)
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

// initTables initializes the database table. Embeddings live in a plain
// TEXT column as JSON; similarity runs in the engine, so no vector
// extension is required.
func (c *Client) initTables(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGINT PRIMARY KEY,
			workspace_id VARCHAR(255) NOT NULL,
			agent_id VARCHAR(255),
			content TEXT NOT NULL,
			class VARCHAR(32) NOT NULL,
			status VARCHAR(32) NOT NULL,
			touch_count INTEGER NOT NULL DEFAULT 0,
			vitality_score DOUBLE PRECISION NOT NULL DEFAULT 0,
			embedding TEXT,
			metadata JSONB,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL,
			last_touched_at TIMESTAMP NOT NULL,
			dormant_since TIMESTAMP
		)
	`, c.tableName)

	if _, err := c.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("initTables: create table: %w", err)
	}

	scopeIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_%s_workspace_agent ON %s(workspace_id, agent_id)
	`, c.tableName, c.tableName)
	if _, err := c.db.ExecContext(ctx, scopeIndex); err != nil {
		return fmt.Errorf("initTables: create index: %w", err)
	}

	statusIndex := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_%s_workspace_status ON %s(workspace_id, status)
	`, c.tableName, c.tableName)
	if _, err := c.db.ExecContext(ctx, statusIndex); err != nil {
		return fmt.Errorf("initTables: create index: %w", err)
	}

	return nil
}

// Insert inserts a thread.
func (c *Client) Insert(ctx context.Context, thread *storage.Thread) error {
	query := fmt.Sprintf(`
		INSERT INTO %s
		(id, workspace_id, agent_id, content, class, status, touch_count, vitality_score,
		 embedding, metadata, created_at, updated_at, last_touched_at, dormant_since)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
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

	b := &argBuilder{}
	whereClause := "WHERE id = " + b.add(id)
	if opts.WorkspaceID != "" {
		whereClause += " AND workspace_id = " + b.add(opts.WorkspaceID)
	}
	if opts.AgentID != "" {
		whereClause += " AND agent_id = " + b.add(opts.AgentID)
	}

	query := fmt.Sprintf(`
		SELECT id, workspace_id, agent_id, content, class, status, touch_count,
		       vitality_score, embedding, metadata, created_at, updated_at,
		       last_touched_at, dormant_since
		FROM %s
		%s
	`, c.tableName, whereClause)

	row := c.db.QueryRowContext(ctx, query, b.args...)

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

	b := &argBuilder{}
	whereClause := buildWhereClause(b, opts.WorkspaceID, opts.AgentID, opts.Statuses)

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
		query += fmt.Sprintf(" LIMIT %s OFFSET %s", b.add(opts.Limit), b.add(opts.Offset))
	}

	rows, err := c.db.QueryContext(ctx, query, b.args...)
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

	b := &argBuilder{}
	setClause := fmt.Sprintf("SET content = %s, embedding = %s, updated_at = %s",
		b.add(text), b.add(embeddingArg), b.add(time.Now()))

	return c.update(ctx, "UpdateText", id, setClause, b, opts)
}

// RecordTouch increments the touch count and advances the last-touched
// timestamp to touchedAt.
func (c *Client) RecordTouch(ctx context.Context, id int64, touchedAt time.Time, opts *storage.UpdateOptions) (*storage.Thread, error) {
	b := &argBuilder{}
	setClause := fmt.Sprintf("SET touch_count = touch_count + 1, last_touched_at = %s, updated_at = %s",
		b.add(touchedAt), b.add(touchedAt))

	return c.update(ctx, "RecordTouch", id, setClause, b, opts)
}

// SetLifecycle overwrites the thread's lifecycle state.
func (c *Client) SetLifecycle(ctx context.Context, id int64, update *storage.LifecycleUpdate, opts *storage.UpdateOptions) (*storage.Thread, error) {
	b := &argBuilder{}
	setClause := fmt.Sprintf("SET status = %s, vitality_score = %s, dormant_since = %s, updated_at = %s",
		b.add(update.Status), b.add(update.VitalityScore), b.add(update.DormantSince), b.add(time.Now()))

	return c.update(ctx, "SetLifecycle", id, setClause, b, opts)
}

// update applies a SET clause under access control and returns the updated
// thread via re-read.
func (c *Client) update(ctx context.Context, op string, id int64, setClause string, b *argBuilder, opts *storage.UpdateOptions) (*storage.Thread, error) {
	if opts == nil {
		opts = &storage.UpdateOptions{}
	}

	whereClause := "WHERE id = " + b.add(id)
	if opts.WorkspaceID != "" {
		whereClause += " AND workspace_id = " + b.add(opts.WorkspaceID)
	}
	if opts.AgentID != "" {
		whereClause += " AND agent_id = " + b.add(opts.AgentID)
	}

	query := fmt.Sprintf("UPDATE %s %s %s", c.tableName, setClause, whereClause)

	result, err := c.db.ExecContext(ctx, query, b.args...)
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

	b := &argBuilder{}
	whereClause := "WHERE id = " + b.add(id)
	if opts.WorkspaceID != "" {
		whereClause += " AND workspace_id = " + b.add(opts.WorkspaceID)
	}
	if opts.AgentID != "" {
		whereClause += " AND agent_id = " + b.add(opts.AgentID)
	}

	query := fmt.Sprintf("DELETE FROM %s %s", c.tableName, whereClause)

	result, err := c.db.ExecContext(ctx, query, b.args...)
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

	b := &argBuilder{}
	whereClause := buildWhereClause(b, opts.WorkspaceID, opts.AgentID, nil)

	query := fmt.Sprintf("DELETE FROM %s %s", c.tableName, whereClause)

	_, err := c.db.ExecContext(ctx, query, b.args...)
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

	if embeddingStr.Valid && embeddingStr.String != "" {
		if err := json.Unmarshal([]byte(embeddingStr.String), &thread.Embedding); err != nil {
			return nil, fmt.Errorf("parse embedding: %w", err)
		}
	}

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
// absent vector (nil) to SQL NULL.
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
