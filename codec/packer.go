// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/fuelvm/fuels-go/consts"
)

// Writer accumulates the word-oriented binary form of a value. Methods
// record the first error encountered; callers check [Writer.Err] once after
// packing instead of after every write.
type Writer struct {
	b     []byte
	limit int
	err   error
}

// NewWriter returns a [Writer] that will not grow beyond [limit] bytes.
func NewWriter(initial int, limit int) *Writer {
	return &Writer{
		b:     make([]byte, 0, initial),
		limit: limit,
	}
}

// PackWord appends [v] as one big-endian word.
func (w *Writer) PackWord(v uint64) {
	if !w.ensure(consts.WordSize) {
		return
	}
	w.b = binary.BigEndian.AppendUint64(w.b, v)
}

// PackByte appends a single raw byte, unpadded.
func (w *Writer) PackByte(v byte) {
	if !w.ensure(1) {
		return
	}
	w.b = append(w.b, v)
}

// PackFixedBytes appends [v] verbatim.
func (w *Writer) PackFixedBytes(v []byte) {
	if !w.ensure(len(v)) {
		return
	}
	w.b = append(w.b, v...)
}

// PackZeroes appends [n] zero bytes.
func (w *Writer) PackZeroes(n int) {
	if !w.ensure(n) {
		return
	}
	w.b = append(w.b, make([]byte, n)...)
}

func (w *Writer) ensure(n int) bool {
	if w.err != nil {
		return false
	}
	if len(w.b)+n > w.limit {
		w.err = fmt.Errorf("%w: %d + %d > %d", ErrLimitExceeded, len(w.b), n, w.limit)
		return false
	}
	return true
}

func (w *Writer) Len() int {
	return len(w.b)
}

func (w *Writer) Bytes() []byte {
	return w.b
}

func (w *Writer) Err() error {
	return w.err
}

// Reader consumes the word-oriented binary form of a value. Like [Writer],
// it records the first error and keeps returning zero values afterwards.
type Reader struct {
	b      []byte
	offset int
	err    error
}

func NewReader(src []byte) *Reader {
	return &Reader{b: src}
}

// UnpackWord consumes one big-endian word.
func (r *Reader) UnpackWord() uint64 {
	if !r.ensure(consts.WordSize) {
		return 0
	}
	v := binary.BigEndian.Uint64(r.b[r.offset:])
	r.offset += consts.WordSize
	return v
}

// UnpackByte consumes a single raw byte.
func (r *Reader) UnpackByte() byte {
	if !r.ensure(1) {
		return 0
	}
	v := r.b[r.offset]
	r.offset++
	return v
}

// UnpackFixedBytes consumes [n] bytes and returns a copy.
func (r *Reader) UnpackFixedBytes(n int) []byte {
	if n < 0 {
		r.setErr(fmt.Errorf("%w: %d bytes", ErrInvalidSize, n))
		return nil
	}
	if !r.ensure(n) {
		return nil
	}
	v := make([]byte, n)
	copy(v, r.b[r.offset:])
	r.offset += n
	return v
}

// SkipZeroes consumes [n] padding bytes without validating their content.
func (r *Reader) SkipZeroes(n int) {
	if n < 0 {
		r.setErr(fmt.Errorf("%w: %d bytes", ErrInvalidSize, n))
		return
	}
	if !r.ensure(n) {
		return
	}
	r.offset += n
}

// Seek repositions the cursor at [offset], used to follow argument
// indirection pointers.
func (r *Reader) Seek(offset int) {
	if offset < 0 || offset > len(r.b) {
		r.setErr(fmt.Errorf("%w: seek to %d of %d", ErrTruncatedPayload, offset, len(r.b)))
		return
	}
	if r.err != nil {
		return
	}
	r.offset = offset
}

func (r *Reader) ensure(n int) bool {
	if r.err != nil {
		return false
	}
	if r.offset+n > len(r.b) {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d of %d", ErrTruncatedPayload, n, r.offset, len(r.b))
		return false
	}
	return true
}

func (r *Reader) setErr(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) Offset() int {
	return r.offset
}

func (r *Reader) Remaining() int {
	return len(r.b) - r.offset
}

func (r *Reader) Empty() bool {
	return r.offset == len(r.b)
}

func (r *Reader) Err() error {
	return r.err
}
