package pg_block_repo

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"slot_kiosk/internal/repository"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.NVStore = (*Repo)(nil)

func TestQueries(t *testing.T) {
	sqlStr, args, err := selectBlock(8)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if sqlStr != "SELECT data FROM nv_blocks WHERE block_offset = $1" || len(args) != 1 || args[0] != 8 {
		t.Fatalf("select = %q %v", sqlStr, args)
	}

	sqlStr, args, err = updateBlock(16, []byte{1, 2})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.HasPrefix(sqlStr, "UPDATE nv_blocks SET data = $1, updated_at = now() WHERE block_offset = $2") || len(args) != 2 {
		t.Fatalf("update = %q %v", sqlStr, args)
	}

	sqlStr, _, err = insertBlock(16, []byte{1, 2})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if !strings.Contains(sqlStr, "ON CONFLICT (block_offset) DO UPDATE") {
		t.Fatalf("insert = %q", sqlStr)
	}
}

func TestRangeCheck(t *testing.T) {
	r := NewBlockRepository(nil, 16)
	if err := r.WriteBlock(context.Background(), 12, make([]byte, 8)); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("WriteBlock = %v, want ErrOutOfRange", err)
	}
}

// TestRoundTrip runs against a real database when KIOSK_TEST_PG_DSN is set
func TestRoundTrip(t *testing.T) {
	dsn := os.Getenv("KIOSK_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("KIOSK_TEST_PG_DSN not set")
	}
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	r := NewBlockRepository(pool, 4096)
	if err := r.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, "DELETE FROM "+table+" WHERE "+colOffset+" >= 4000"); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	buf := make([]byte, 8)
	if err := r.ReadBlock(ctx, 4000, buf); err != nil {
		t.Fatalf("read erased: %v", err)
	}
	if !bytes.Equal(buf, bytes.Repeat([]byte{erased}, 8)) {
		t.Fatalf("erased block = % x", buf)
	}

	tm, err := manager.New(trmpgx.NewDefaultFactory(pool))
	if err != nil {
		t.Fatalf("trm: %v", err)
	}
	block := []byte{80, 243, 109, 20, 0, 1, 56, 128}
	err = tm.Do(ctx, func(ctx context.Context) error {
		if err := r.WriteBlock(ctx, 4000, block); err != nil {
			return err
		}
		return r.WriteBlock(ctx, 4008, block)
	})
	if err != nil {
		t.Fatalf("write in tx: %v", err)
	}

	if err := r.ReadBlock(ctx, 4008, buf); err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(buf, block) {
		t.Fatalf("read back % x", buf)
	}
}
