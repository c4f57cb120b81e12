// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abi

import (
	"fmt"
	"math"

	"github.com/fuelvm/fuels-go/codec"
	"github.com/fuelvm/fuels-go/consts"
)

// Encode serializes [token] against [typ] into [w]. Encoding is a pure
// function of its inputs: sub-word primitives are right-aligned and
// zero-padded to one word, Byte and B256 keep their native widths, composite
// members are packed back-to-back in declared order, and enums are sized to
// their widest variant with the zero padding between discriminant and
// payload.
func Encode(w *codec.Writer, typ ParamType, token Token) error {
	if token.Kind() != typ.Kind() {
		return fmt.Errorf("%w: cannot encode %s token as %s", ErrSchemaMismatch, token.Kind(), typ.describe())
	}

	switch typ.Kind() {
	case KindUnit:
		// Zero width.
	case KindBool, KindU8, KindU16, KindU32, KindU64:
		if err := checkRange(typ, token.Uint64()); err != nil {
			return err
		}
		w.PackWord(token.Uint64())
	case KindByte:
		w.PackByte(byte(token.Uint64()))
	case KindB256:
		b := token.B256()
		w.PackFixedBytes(b[:])
	case KindString:
		if len(token.Str()) != typ.Len() {
			return fmt.Errorf("%w: %s expects %d bytes, token has %d",
				ErrSchemaMismatch, typ.describe(), typ.Len(), len(token.Str()))
		}
		w.PackFixedBytes([]byte(token.Str()))
		w.PackZeroes(wordAligned(typ.Len()) - typ.Len())
	case KindArray:
		if len(token.Elems()) != typ.Len() {
			return fmt.Errorf("%w: %s expects %d elements, token has %d",
				ErrSchemaMismatch, typ.describe(), typ.Len(), len(token.Elems()))
		}
		for i, elem := range token.Elems() {
			if err := Encode(w, typ.Elem(), elem); err != nil {
				return fmt.Errorf("%s[%d]: %w", typ.describe(), i, err)
			}
		}
	case KindVector:
		return fmt.Errorf("%w: vec<%s>", ErrNestedVector, typ.Elem().Signature())
	case KindTuple, KindStruct:
		if err := encodeComponents(w, typ, token); err != nil {
			return err
		}
	case KindEnum:
		if err := encodeEnum(w, typ, token); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown kind %s", ErrSchemaMismatch, typ.Kind())
	}
	return w.Err()
}

func encodeComponents(w *codec.Writer, typ ParamType, token Token) error {
	components := typ.Components()
	if len(token.Elems()) != len(components) {
		return fmt.Errorf("%w: %s expects %d members, token has %d",
			ErrSchemaMismatch, typ.describe(), len(components), len(token.Elems()))
	}
	for i, c := range components {
		if err := Encode(w, c.Type, token.Elems()[i]); err != nil {
			return fmt.Errorf("%s.%s: %w", typ.describe(), componentName(c, i), err)
		}
	}
	return nil
}

// encodeEnum writes the discriminant word, padding up to the widest variant
// width, and then the active variant's payload. The decoder skips the same
// padding, so enum records keep a fixed footprint inside larger layouts.
func encodeEnum(w *codec.Writer, typ ParamType, token Token) error {
	variants := typ.Components()
	discriminant := token.Variant()
	if discriminant >= uint64(len(variants)) {
		return fmt.Errorf("%w: %s has %d variants, discriminant is %d",
			ErrInvalidVariant, typ.describe(), len(variants), discriminant)
	}
	active := variants[discriminant]

	widest, err := typ.widestVariant()
	if err != nil {
		return err
	}
	activeWidth, err := active.Type.FixedWidth()
	if err != nil {
		return err
	}

	w.PackWord(discriminant)
	w.PackZeroes(widest - activeWidth)
	if err := Encode(w, active.Type, token.Payload()); err != nil {
		return fmt.Errorf("%s::%s: %w", typ.describe(), componentName(active, int(discriminant)), err)
	}
	return nil
}

// encodeVector writes the element count as one word followed by the
// elements. Only fixed-width element types are accepted; the calling
// convention cannot relocate an inner dynamic segment.
func encodeVector(w *codec.Writer, typ ParamType, token Token) error {
	if token.Kind() != KindVector {
		return fmt.Errorf("%w: cannot encode %s token as %s", ErrSchemaMismatch, token.Kind(), typ.describe())
	}
	if _, err := typ.Elem().FixedWidth(); err != nil {
		return fmt.Errorf("%w: vec<%s>", ErrNestedVector, typ.Elem().Signature())
	}
	w.PackWord(uint64(len(token.Elems())))
	for i, elem := range token.Elems() {
		if err := Encode(w, typ.Elem(), elem); err != nil {
			return fmt.Errorf("vec<%s>[%d]: %w", typ.Elem().Signature(), i, err)
		}
	}
	return w.Err()
}

func checkRange(typ ParamType, v uint64) error {
	var max uint64
	switch typ.Kind() {
	case KindBool:
		max = 1
	case KindU8:
		max = math.MaxUint8
	case KindU16:
		max = math.MaxUint16
	case KindU32:
		max = math.MaxUint32
	default:
		return nil
	}
	if v > max {
		return fmt.Errorf("%w: %d overflows %s", ErrSchemaMismatch, v, typ.describe())
	}
	return nil
}

func componentName(c Component, i int) string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("%d", i)
}

// EncodeValue serializes a single value with no argument indirection. This
// is the form used for return-value payloads and for the body of each call
// argument.
func EncodeValue(typ ParamType, token Token) ([]byte, error) {
	w := codec.NewWriter(0, consts.MaxCallDataSize)
	if typ.Kind() == KindVector {
		if err := encodeVector(w, typ, token); err != nil {
			return nil, err
		}
		return w.Bytes(), nil
	}
	if err := Encode(w, typ, token); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// EncodeArguments serializes a call's argument list into the flat blob the
// VM expects. Arguments whose encoded body fits in one word are inlined into
// the fixed region; wider arguments and vectors leave a pointer word behind
// and have their body appended after all fixed slots. Pointers are byte
// offsets from the start of the returned blob.
func EncodeArguments(types []ParamType, tokens []Token) ([]byte, error) {
	if len(types) != len(tokens) {
		return nil, fmt.Errorf("%w: %d types, %d tokens", ErrWrongArgumentCount, len(types), len(tokens))
	}

	bodies := make([][]byte, len(types))
	fixed := 0
	for i, typ := range types {
		body, err := EncodeValue(typ, tokens[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		bodies[i] = body
		if indirect(typ, body) {
			fixed += consts.WordSize
		} else {
			fixed += len(body)
		}
	}

	w := codec.NewWriter(fixed, consts.MaxCallDataSize)
	heap := fixed
	for i, typ := range types {
		if indirect(typ, bodies[i]) {
			w.PackWord(uint64(heap))
			heap += len(bodies[i])
		} else {
			w.PackFixedBytes(bodies[i])
		}
	}
	for i, typ := range types {
		if indirect(typ, bodies[i]) {
			w.PackFixedBytes(bodies[i])
		}
	}
	return w.Bytes(), w.Err()
}

// indirect reports whether an argument is passed by pointer. Vectors always
// are, even when empty: the decoder could not otherwise tell a length word
// from a pointer word.
func indirect(typ ParamType, body []byte) bool {
	return typ.IsDynamic() || len(body) > consts.WordSize
}
