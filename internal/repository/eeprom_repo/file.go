package eeprom_repo

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sync"
)

// File - EEPROM image backed by a file. Every write is synced before it returns.
type File struct {
	mu   sync.Mutex
	f    *os.File
	size int
}

// OpenFile opens or creates the image at path, padding it to size with erased bytes
func OpenFile(path string, size int) (*File, error) {
	if size <= 0 {
		size = DefaultSize
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open eeprom image: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat eeprom image: %w", err)
	}
	if cur := info.Size(); cur < int64(size) {
		pad := bytes.Repeat([]byte{erased}, size-int(cur))
		if _, err := f.WriteAt(pad, cur); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("erase eeprom image: %w", err)
		}
		if err := f.Sync(); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("sync eeprom image: %w", err)
		}
	}

	return &File{f: f, size: size}, nil
}

func (s *File) ReadBlock(ctx context.Context, offset uint16, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkRange(s.size, offset, len(buf)); err != nil {
		return err
	}
	if _, err := s.f.ReadAt(buf, int64(offset)); err != nil {
		return fmt.Errorf("read eeprom image: %w", err)
	}
	return nil
}

func (s *File) WriteBlock(ctx context.Context, offset uint16, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := checkRange(s.size, offset, len(data)); err != nil {
		return err
	}
	if _, err := s.f.WriteAt(data, int64(offset)); err != nil {
		return fmt.Errorf("write eeprom image: %w", err)
	}
	if err := s.f.Sync(); err != nil {
		return fmt.Errorf("sync eeprom image: %w", err)
	}
	return nil
}

func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
