package model

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

const (
	// IdentityLen Length of a card UID in bytes
	IdentityLen = 4
	// RecordSize Identity bytes followed by a big-endian u32 balance
	RecordSize = IdentityLen + 4
)

// Identity - fixed-length card UID
type Identity [IdentityLen]byte

func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}

// Blank reports whether the identity belongs to an erased slot (all 0x00 or all 0xFF)
func (id Identity) Blank() bool {
	zero, erased := true, true
	for _, b := range id {
		if b != 0x00 {
			zero = false
		}
		if b != 0xFF {
			erased = false
		}
	}
	return zero || erased
}

// ParseIdentity accepts a hex UID ("50f36d14", "50:f3:6d:14")
func ParseIdentity(s string) (Identity, error) {
	var id Identity
	clean := strings.NewReplacer(":", "", "-", "", " ", "").Replace(s)
	raw, err := hex.DecodeString(clean)
	if err != nil {
		return id, fmt.Errorf("parse identity %q: %w", s, err)
	}
	if len(raw) != IdentityLen {
		return id, fmt.Errorf("parse identity %q: want %d bytes, got %d", s, IdentityLen, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// CardRecord - persisted (identity, balance) pair of one slot
type CardRecord struct {
	ID      Identity
	Balance uint32
}

// BlankRecord - contents of an erased slot
func BlankRecord() CardRecord {
	var r CardRecord
	for i := range r.ID {
		r.ID[i] = 0xFF
	}
	r.Balance = 0xFFFFFFFF
	return r
}

func (r CardRecord) MarshalBinary() ([]byte, error) {
	buf := make([]byte, RecordSize)
	copy(buf[:IdentityLen], r.ID[:])
	binary.BigEndian.PutUint32(buf[IdentityLen:], r.Balance)
	return buf, nil
}

func (r *CardRecord) UnmarshalBinary(data []byte) error {
	if len(data) != RecordSize {
		return errors.New("card record: invalid length")
	}
	copy(r.ID[:], data[:IdentityLen])
	r.Balance = binary.BigEndian.Uint32(data[IdentityLen:])
	return nil
}
