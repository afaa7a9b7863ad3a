package redis_block_repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultKey = "kiosk:nv_blocks"
	erased     = 0xFF
)

var ErrOutOfRange = errors.New("redis nv store: block out of range")

// Repo - non-volatile block store in one Redis hash, field = block offset
type Repo struct {
	rdb  redis.Cmdable
	key  string
	size int
}

func NewBlockRepository(rdb redis.Cmdable, key string, size int) *Repo {
	if key == "" {
		key = DefaultKey
	}
	return &Repo{rdb: rdb, key: key, size: size}
}

func (r *Repo) checkRange(offset uint16, n int) error {
	if r.size > 0 && int(offset)+n > r.size {
		return fmt.Errorf("%w: offset %d len %d", ErrOutOfRange, offset, n)
	}
	return nil
}

func field(offset uint16) string {
	return strconv.Itoa(int(offset))
}

func (r *Repo) ReadBlock(ctx context.Context, offset uint16, buf []byte) error {
	if err := r.checkRange(offset, len(buf)); err != nil {
		return err
	}
	data, err := r.rdb.HGet(ctx, r.key, field(offset)).Bytes()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("read block %d: %w", offset, err)
	}

	n := copy(buf, data)
	for i := n; i < len(buf); i++ {
		buf[i] = erased
	}
	return nil
}

func (r *Repo) WriteBlock(ctx context.Context, offset uint16, data []byte) error {
	if err := r.checkRange(offset, len(data)); err != nil {
		return err
	}
	if err := r.rdb.HSet(ctx, r.key, field(offset), data).Err(); err != nil {
		return fmt.Errorf("write block %d: %w", offset, err)
	}
	return nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}
