package eeprom_repo

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

const (
	// DefaultSize - 24C32, 4 KiB
	DefaultSize = 4096
	erased      = 0xFF
)

var ErrOutOfRange = errors.New("eeprom: block out of range")

func checkRange(size int, offset uint16, n int) error {
	if int(offset)+n > size {
		return fmt.Errorf("%w: offset %d len %d size %d", ErrOutOfRange, offset, n, size)
	}
	return nil
}

// Memory - EEPROM image kept in RAM, erased to 0xFF
type Memory struct {
	mu   sync.RWMutex
	data []byte
}

func NewMemory(size int) *Memory {
	if size <= 0 {
		size = DefaultSize
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = erased
	}
	return &Memory{data: data}
}

func (m *Memory) ReadBlock(ctx context.Context, offset uint16, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := checkRange(len(m.data), offset, len(buf)); err != nil {
		return err
	}
	copy(buf, m.data[offset:])
	return nil
}

func (m *Memory) WriteBlock(ctx context.Context, offset uint16, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := checkRange(len(m.data), offset, len(data)); err != nil {
		return err
	}
	copy(m.data[offset:], data)
	return nil
}

// Snapshot - copy of the whole image
func (m *Memory) Snapshot() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]byte(nil), m.data...)
}
