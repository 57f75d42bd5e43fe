// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/binary"
	"unicode/utf8"

	"github.com/holiman/uint256"

	"github.com/ava-labs/nearsdk/consts"
)

// Packer appends little-endian values to a byte slice. The first error
// encountered is kept and every later Pack call becomes a no-op, so
// callers can check [Packer.Err] once at the end.
type Packer struct {
	b   []byte
	err error
}

// NewWriter returns a Packer with [initial] bytes of capacity.
func NewWriter(initial int) *Packer {
	return &Packer{b: make([]byte, 0, initial)}
}

func (p *Packer) Bytes() []byte { return p.b }

func (p *Packer) Err() error { return p.err }

func (p *Packer) addErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Packer) PackByte(b byte) {
	if p.err != nil {
		return
	}
	p.b = append(p.b, b)
}

func (p *Packer) PackUint16(v uint16) {
	if p.err != nil {
		return
	}
	p.b = binary.LittleEndian.AppendUint16(p.b, v)
}

func (p *Packer) PackUint32(v uint32) {
	if p.err != nil {
		return
	}
	p.b = binary.LittleEndian.AppendUint32(p.b, v)
}

func (p *Packer) PackUint64(v uint64) {
	if p.err != nil {
		return
	}
	p.b = binary.LittleEndian.AppendUint64(p.b, v)
}

// PackUint128 writes the low 128 bits of [v]. Callers must have checked
// that the upper limbs are zero.
func (p *Packer) PackUint128(v *uint256.Int) {
	if p.err != nil {
		return
	}
	p.b = binary.LittleEndian.AppendUint64(p.b, v[0])
	p.b = binary.LittleEndian.AppendUint64(p.b, v[1])
}

// PackLen writes a u32 length or count prefix.
func (p *Packer) PackLen(n int) {
	if uint64(n) > uint64(consts.MaxUint32) {
		p.addErr(ErrTooManyItems)
		return
	}
	p.PackUint32(uint32(n))
}

// PackFixedBytes writes [b] verbatim.
func (p *Packer) PackFixedBytes(b []byte) {
	if p.err != nil {
		return
	}
	p.b = append(p.b, b...)
}

// PackBytes writes a u32 length followed by [b].
func (p *Packer) PackBytes(b []byte) {
	p.PackLen(len(b))
	p.PackFixedBytes(b)
}

// PackString writes a u32 byte length followed by the UTF-8 bytes of [s].
func (p *Packer) PackString(s string) {
	if !utf8.ValidString(s) {
		p.addErr(ErrInvalidUTF8)
		return
	}
	p.PackLen(len(s))
	if p.err != nil {
		return
	}
	p.b = append(p.b, s...)
}
