// Package pgstore PostgreSQL 存储（store.driver=postgres），行结构与 MySQL 共用 db.Entry
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"daybook-backend/internal/db"
	"daybook-backend/internal/journal"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         VARCHAR(64) PRIMARY KEY,
	email      VARCHAR(128) NOT NULL DEFAULT '',
	preference TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS entries (
	id                VARCHAR(36) PRIMARY KEY,
	author_id         VARCHAR(64) NOT NULL,
	status            VARCHAR(16) NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL,
	journal_entry     JSONB,
	journal_entry2    JSONB,
	user_response     TEXT NOT NULL DEFAULT '',
	user_response2    TEXT NOT NULL DEFAULT '',
	summary           TEXT NOT NULL DEFAULT '',
	sentiment         DOUBLE PRECISION NOT NULL DEFAULT 0,
	sentiment_history JSONB,
	tags              JSONB,
	negative_phrases  JSONB
);
CREATE INDEX IF NOT EXISTS idx_entries_author_created ON entries (author_id, created_at);
CREATE INDEX IF NOT EXISTS idx_entries_status ON entries (status);
`

const entryColumns = `id, author_id, status, created_at, updated_at, journal_entry, journal_entry2,
	user_response, user_response2, summary, sentiment, sentiment_history, tags, negative_phrases`

type Store struct {
	pool *pgxpool.Pool
}

// Open 建立连接池并确认可用
func Open(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Close() {
	s.pool.Close()
}

// Migrate 建表
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return journal.WrapStore("migrate", err)
	}
	return nil
}

func storeErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return journal.ErrNotFound
	}
	return journal.WrapStore(op, err)
}

func (s *Store) Create(ctx context.Context, e *journal.Entry) error {
	op := "pgstore.Create"
	args, err := rowArgs(e)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	_, err = s.pool.Exec(ctx, `INSERT INTO entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, args...)
	if err != nil {
		return storeErr(op, err)
	}
	return nil
}

func (s *Store) FindByID(ctx context.Context, id string) (*journal.Entry, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1`, id)
	e, err := scanEntry(row)
	if err != nil {
		return nil, storeErr("pgstore.FindByID", err)
	}
	return e, nil
}

func (s *Store) FindMany(ctx context.Context, f journal.Filter, order journal.OrderBy) ([]*journal.Entry, error) {
	op := "pgstore.FindMany"
	query, args := buildFindMany(f, order)
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, storeErr(op, err)
	}
	defer rows.Close()

	out := make([]*journal.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, storeErr(op, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr(op, err)
	}
	return out, nil
}

// buildFindMany 拼接查询，参数全部走占位符
func buildFindMany(f journal.Filter, order journal.OrderBy) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.AuthorID != "" {
		add("author_id = $%d", f.AuthorID)
	}
	if !f.CreatedFrom.IsZero() {
		add("created_at >= $%d", f.CreatedFrom)
	}
	if !f.CreatedTo.IsZero() {
		add("created_at < $%d", f.CreatedTo)
	}
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, st := range f.Statuses {
			statuses[i] = string(st)
		}
		add("status = ANY($%d)", statuses)
	}

	var b strings.Builder
	b.WriteString("SELECT " + entryColumns + " FROM entries")
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	col := "created_at"
	if order.Field == journal.OrderByUpdatedAt {
		col = "updated_at"
	}
	dir := "ASC"
	if order.Desc {
		dir = "DESC"
	}
	b.WriteString(" ORDER BY " + col + " " + dir + ", id " + dir)
	return b.String(), args
}

func (s *Store) Update(ctx context.Context, id string, p journal.Patch) error {
	op := "pgstore.Update"
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Apply(current)
	args, err := rowArgs(current)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	tag, err := s.pool.Exec(ctx, `UPDATE entries SET
		author_id = $2, status = $3, created_at = $4, updated_at = $5,
		journal_entry = $6, journal_entry2 = $7, user_response = $8, user_response2 = $9,
		summary = $10, sentiment = $11, sentiment_history = $12, tags = $13, negative_phrases = $14
		WHERE id = $1`, args...)
	if err != nil {
		return storeErr(op, err)
	}
	if tag.RowsAffected() == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return storeErr("pgstore.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return journal.ErrNotFound
	}
	return nil
}

func (s *Store) FindUser(ctx context.Context, id string) (*journal.User, error) {
	var u journal.User
	err := s.pool.QueryRow(ctx, `SELECT id, email, preference FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Preference)
	if err != nil {
		return nil, storeErr("pgstore.FindUser", err)
	}
	return &u, nil
}

func (s *Store) UpsertUser(ctx context.Context, u *journal.User) error {
	_, err := s.pool.Exec(ctx, `INSERT INTO users (id, email, preference) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email, preference = EXCLUDED.preference`,
		u.ID, u.Email, u.Preference)
	if err != nil {
		return storeErr("pgstore.UpsertUser", err)
	}
	return nil
}

func rowArgs(e *journal.Entry) ([]any, error) {
	row, err := db.FromDomain(e)
	if err != nil {
		return nil, err
	}
	morning, err := jsonb(row.JournalEntry)
	if err != nil {
		return nil, err
	}
	evening, err := jsonb(row.JournalEntry2)
	if err != nil {
		return nil, err
	}
	history, err := jsonb(row.SentimentHistory)
	if err != nil {
		return nil, err
	}
	tags, err := jsonb(row.Tags)
	if err != nil {
		return nil, err
	}
	phrases, err := jsonb(row.NegativePhrases)
	if err != nil {
		return nil, err
	}
	return []any{
		row.ID, row.AuthorID, row.Status, row.CreatedAt, row.UpdatedAt,
		morning, evening, row.UserResponse, row.UserResponse2, row.Summary,
		row.Sentiment, history, tags, phrases,
	}, nil
}

// jsonb nil 切片存为 NULL
func jsonb(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb: %w", err)
	}
	if string(b) == "null" {
		return nil, nil
	}
	return b, nil
}

func scanEntry(row pgx.Row) (*journal.Entry, error) {
	var (
		r                                        db.Entry
		morning, evening, history, tags, phrases []byte
	)
	if err := row.Scan(&r.ID, &r.AuthorID, &r.Status, &r.CreatedAt, &r.UpdatedAt,
		&morning, &evening, &r.UserResponse, &r.UserResponse2, &r.Summary,
		&r.Sentiment, &history, &tags, &phrases); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		raw []byte
		dst any
	}{
		{morning, &r.JournalEntry},
		{evening, &r.JournalEntry2},
		{history, &r.SentimentHistory},
		{tags, &r.Tags},
		{phrases, &r.NegativePhrases},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decode entry %s: %w", r.ID, err)
		}
	}
	return db.ToDomain(&r)
}
