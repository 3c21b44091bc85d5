package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const createDocumentsTable = `
CREATE TABLE IF NOT EXISTS documents (
    name       TEXT PRIMARY KEY,
    body       JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)
`

func (q *Queries) CreateDocumentsTable(ctx context.Context) error {
	_, err := q.db.Exec(ctx, createDocumentsTable)
	return err
}

const getDocument = `SELECT body FROM documents WHERE name = $1`

func (q *Queries) GetDocument(ctx context.Context, name string) ([]byte, error) {
	row := q.db.QueryRow(ctx, getDocument, name)
	var body []byte
	err := row.Scan(&body)
	return body, err
}

const insertDocumentIfAbsent = `
INSERT INTO documents (name, body) VALUES ($1, $2)
ON CONFLICT (name) DO NOTHING
`

type InsertDocumentIfAbsentParams struct {
	Name string
	Body []byte
}

func (q *Queries) InsertDocumentIfAbsent(ctx context.Context, arg InsertDocumentIfAbsentParams) error {
	_, err := q.db.Exec(ctx, insertDocumentIfAbsent, arg.Name, arg.Body)
	return err
}

const upsertDocument = `
INSERT INTO documents (name, body, updated_at) VALUES ($1, $2, now())
ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
`

type UpsertDocumentParams struct {
	Name string
	Body []byte
}

func (q *Queries) UpsertDocument(ctx context.Context, arg UpsertDocumentParams) error {
	_, err := q.db.Exec(ctx, upsertDocument, arg.Name, arg.Body)
	return err
}
