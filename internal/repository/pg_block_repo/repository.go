package pg_block_repo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table     = "nv_blocks"
	colOffset = "block_offset"
	colData   = "data"
	colAt     = "updated_at"

	erased = 0xFF
)

const schema = `CREATE TABLE IF NOT EXISTS ` + table + ` (
	` + colOffset + ` INTEGER PRIMARY KEY,
	` + colData + ` BYTEA NOT NULL,
	` + colAt + ` TIMESTAMPTZ NOT NULL DEFAULT now()
)`

var ErrOutOfRange = errors.New("nv_blocks: block out of range")

// Repo - non-volatile block store in a PostgreSQL table, one row per written block.
// Blocks never written read as erased. Writes join the transaction found in ctx.
type Repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
	size   int
}

func NewBlockRepository(dbc *pgxpool.Pool, size int) *Repo {
	return &Repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
		size:   size,
	}
}

// Migrate - creates the block table if it does not exist
func (r *Repo) Migrate(ctx context.Context) error {
	if _, err := r.dbc.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate %s: %w", table, err)
	}
	return nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.dbc.Ping(ctx)
}

func (r *Repo) checkRange(offset uint16, n int) error {
	if r.size > 0 && int(offset)+n > r.size {
		return fmt.Errorf("%w: offset %d len %d", ErrOutOfRange, offset, n)
	}
	return nil
}

func selectBlock(offset uint16) (string, []any, error) {
	return sq.Select(colData).
		From(table).
		Where(sq.Eq{colOffset: int(offset)}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func updateBlock(offset uint16, data []byte) (string, []any, error) {
	return sq.Update(table).
		Set(colData, data).
		Set(colAt, sq.Expr("now()")).
		Where(sq.Eq{colOffset: int(offset)}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

func insertBlock(offset uint16, data []byte) (string, []any, error) {
	return sq.Insert(table).
		Columns(colOffset, colData).
		Values(int(offset), data).
		Suffix("ON CONFLICT (" + colOffset + ") DO UPDATE SET " + colData + " = EXCLUDED." + colData + ", " + colAt + " = now()").
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// ReadBlock - fills buf from the block at offset; missing rows and short blocks read as 0xFF
func (r *Repo) ReadBlock(ctx context.Context, offset uint16, buf []byte) error {
	if err := r.checkRange(offset, len(buf)); err != nil {
		return err
	}
	sqlStr, args, err := selectBlock(offset)
	if err != nil {
		return err
	}

	var data []byte
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&data)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("read block %d: %w", offset, err)
	}

	n := copy(buf, data)
	for i := n; i < len(buf); i++ {
		buf[i] = erased
	}
	return nil
}

// WriteBlock - updates the block row, inserting it when the offset was never written
func (r *Repo) WriteBlock(ctx context.Context, offset uint16, data []byte) error {
	if err := r.checkRange(offset, len(data)); err != nil {
		return err
	}
	tr := r.getter.DefaultTrOrDB(ctx, r.dbc)

	sqlStr, args, err := updateBlock(offset, data)
	if err != nil {
		return err
	}
	res, err := tr.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("write block %d: %w", offset, err)
	}
	if res.RowsAffected() > 0 {
		return nil
	}

	// first write to this offset
	sqlStr, args, err = insertBlock(offset, data)
	if err != nil {
		return err
	}
	if _, err = tr.Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("write block %d: %w", offset, err)
	}
	return nil
}
