package db

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries holds the hand-maintained statements for every table.
type Queries struct {
	db DBTX
}

// New binds queries to a connection or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a copy of q that runs inside tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Notification mirrors a row of the notifications table. Times are unix nanos.
type Notification struct {
	ID         string
	Kind       string
	Title      string
	Message    string
	DurationMs int64
	CreatedAt  int64
	Reason     string
	RemovedAt  sql.NullInt64
}

// InsertNotificationParams are the columns written when a notification is archived.
type InsertNotificationParams struct {
	ID         string
	Kind       string
	Title      string
	Message    string
	DurationMs int64
	CreatedAt  int64
}

const insertNotification = `
INSERT INTO notifications (id, kind, title, message, duration_ms, created_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    kind = excluded.kind,
    title = excluded.title,
    message = excluded.message,
    duration_ms = excluded.duration_ms,
    created_at = excluded.created_at`

func (q *Queries) InsertNotification(ctx context.Context, arg InsertNotificationParams) error {
	_, err := q.db.ExecContext(ctx, insertNotification,
		arg.ID, arg.Kind, arg.Title, arg.Message, arg.DurationMs, arg.CreatedAt,
	)
	return err
}

// MarkNotificationRemovedParams records how and when a notification left the screen.
type MarkNotificationRemovedParams struct {
	ID        string
	Reason    string
	RemovedAt int64
}

const markNotificationRemoved = `
UPDATE notifications SET reason = ?, removed_at = ?
WHERE id = ? AND removed_at IS NULL`

func (q *Queries) MarkNotificationRemoved(ctx context.Context, arg MarkNotificationRemovedParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, markNotificationRemoved, arg.Reason, arg.RemovedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const markAllNotificationsRemoved = `
UPDATE notifications SET reason = ?, removed_at = ?
WHERE removed_at IS NULL`

func (q *Queries) MarkAllNotificationsRemoved(ctx context.Context, reason string, removedAt int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, markAllNotificationsRemoved, reason, removedAt)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listNotifications = `
SELECT id, kind, title, message, duration_ms, created_at, reason, removed_at
FROM notifications
ORDER BY created_at DESC, rowid DESC`

func (q *Queries) ListNotifications(ctx context.Context) ([]Notification, error) {
	rows, err := q.db.QueryContext(ctx, listNotifications)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []Notification
	for rows.Next() {
		var i Notification
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.Title,
			&i.Message,
			&i.DurationMs,
			&i.CreatedAt,
			&i.Reason,
			&i.RemovedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countNotifications = `SELECT COUNT(*) FROM notifications`

func (q *Queries) CountNotifications(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countNotifications).Scan(&count)
	return count, err
}

const countNotificationsBefore = `SELECT COUNT(*) FROM notifications WHERE created_at < ?`

func (q *Queries) CountNotificationsBefore(ctx context.Context, before int64) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countNotificationsBefore, before).Scan(&count)
	return count, err
}

const deleteAllNotifications = `DELETE FROM notifications`

func (q *Queries) DeleteAllNotifications(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteAllNotifications)
	return err
}

const deleteNotificationsBefore = `DELETE FROM notifications WHERE created_at < ?`

func (q *Queries) DeleteNotificationsBefore(ctx context.Context, before int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteNotificationsBefore, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const listSearchHistory = `SELECT query FROM search_history ORDER BY position`

func (q *Queries) ListSearchHistory(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listSearchHistory)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const deleteSearchHistory = `DELETE FROM search_history`

func (q *Queries) DeleteSearchHistory(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteSearchHistory)
	return err
}

// InsertSearchHistoryParams is one history row.
type InsertSearchHistoryParams struct {
	Position  int64
	Query     string
	UpdatedAt int64
}

const insertSearchHistory = `
INSERT INTO search_history (position, query, updated_at) VALUES (?, ?, ?)`

func (q *Queries) InsertSearchHistory(ctx context.Context, arg InsertSearchHistoryParams) error {
	_, err := q.db.ExecContext(ctx, insertSearchHistory, arg.Position, arg.Query, arg.UpdatedAt)
	return err
}

// KVEntry mirrors a row of the kv_store table. Times are unix nanos.
type KVEntry struct {
	Key       string
	Value     []byte
	ExpiresAt sql.NullInt64
	UpdatedAt int64
}

const kvGet = `SELECT key, value, expires_at, updated_at FROM kv_store WHERE key = ?`

func (q *Queries) KVGet(ctx context.Context, key string) (KVEntry, error) {
	var e KVEntry
	err := q.db.QueryRowContext(ctx, kvGet, key).Scan(&e.Key, &e.Value, &e.ExpiresAt, &e.UpdatedAt)
	return e, err
}

// KVSetParams is one kv_store upsert.
type KVSetParams struct {
	Key       string
	Value     []byte
	ExpiresAt sql.NullInt64
	UpdatedAt int64
}

const kvSet = `
INSERT INTO kv_store (key, value, expires_at, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT (key) DO UPDATE SET
    value = excluded.value,
    expires_at = excluded.expires_at,
    updated_at = excluded.updated_at`

func (q *Queries) KVSet(ctx context.Context, arg KVSetParams) error {
	_, err := q.db.ExecContext(ctx, kvSet, arg.Key, arg.Value, arg.ExpiresAt, arg.UpdatedAt)
	return err
}

const kvDelete = `DELETE FROM kv_store WHERE key = ?`

func (q *Queries) KVDelete(ctx context.Context, key string) error {
	_, err := q.db.ExecContext(ctx, kvDelete, key)
	return err
}

const kvSweepExpired = `DELETE FROM kv_store WHERE expires_at IS NOT NULL AND expires_at < ?`

func (q *Queries) KVSweepExpired(ctx context.Context, now int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, kvSweepExpired, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
