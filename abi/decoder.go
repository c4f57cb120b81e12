// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abi

import (
	"fmt"

	"github.com/fuelvm/fuels-go/codec"
	"github.com/fuelvm/fuels-go/consts"
)

// Decode consumes exactly the bytes [typ] demands from [r] and produces the
// matching token. It is the left inverse of [Encode]: for every valid
// (schema, token) pair, decoding the encoded bytes yields the original
// token. Running out of bytes is a decode failure, never a panic.
func Decode(r *codec.Reader, typ ParamType) (Token, error) {
	switch typ.Kind() {
	case KindUnit:
		return UnitToken(), nil
	case KindBool:
		v := r.UnpackWord()
		if err := r.Err(); err != nil {
			return Token{}, err
		}
		if v > 1 {
			return Token{}, fmt.Errorf("%w: bool word is %d", ErrSchemaMismatch, v)
		}
		return BoolToken(v == 1), nil
	case KindU8, KindU16, KindU32, KindU64:
		v := r.UnpackWord()
		if err := r.Err(); err != nil {
			return Token{}, err
		}
		if err := checkRange(typ, v); err != nil {
			return Token{}, err
		}
		return numericToken(typ.Kind(), v), nil
	case KindByte:
		v := r.UnpackByte()
		if err := r.Err(); err != nil {
			return Token{}, err
		}
		return ByteToken(v), nil
	case KindB256:
		raw := r.UnpackFixedBytes(consts.B256Len)
		if err := r.Err(); err != nil {
			return Token{}, err
		}
		var b [consts.B256Len]byte
		copy(b[:], raw)
		return B256Token(b), nil
	case KindString:
		raw := r.UnpackFixedBytes(typ.Len())
		r.SkipZeroes(wordAligned(typ.Len()) - typ.Len())
		if err := r.Err(); err != nil {
			return Token{}, err
		}
		return StringToken(string(raw)), nil
	case KindArray:
		elems := make([]Token, typ.Len())
		for i := range elems {
			elem, err := Decode(r, typ.Elem())
			if err != nil {
				return Token{}, fmt.Errorf("%s[%d]: %w", typ.describe(), i, err)
			}
			elems[i] = elem
		}
		return ArrayToken(elems...), nil
	case KindVector:
		// Mirrors the encoder: vectors are only legal at top level, where
		// [DecodeValue] and [DecodeArguments] route them directly.
		return Token{}, fmt.Errorf("%w: vec<%s>", ErrNestedVector, typ.Elem().Signature())
	case KindTuple, KindStruct:
		components := typ.Components()
		elems := make([]Token, len(components))
		for i, c := range components {
			elem, err := Decode(r, c.Type)
			if err != nil {
				return Token{}, fmt.Errorf("%s.%s: %w", typ.describe(), componentName(c, i), err)
			}
			elems[i] = elem
		}
		if typ.Kind() == KindTuple {
			return TupleToken(elems...), nil
		}
		return StructToken(elems...), nil
	case KindEnum:
		return decodeEnum(r, typ)
	default:
		return Token{}, fmt.Errorf("%w: unknown kind %s", ErrSchemaMismatch, typ.Kind())
	}
}

// decodeEnum reads the discriminant word, bounds-checks it against the
// declared variant count, skips the widest-variant padding, and recurses
// into the active variant's schema.
func decodeEnum(r *codec.Reader, typ ParamType) (Token, error) {
	variants := typ.Components()
	discriminant := r.UnpackWord()
	if err := r.Err(); err != nil {
		return Token{}, err
	}
	if discriminant >= uint64(len(variants)) {
		return Token{}, fmt.Errorf("%w: %s has %d variants, discriminant is %d",
			ErrInvalidVariant, typ.describe(), len(variants), discriminant)
	}
	active := variants[discriminant]

	widest, err := typ.widestVariant()
	if err != nil {
		return Token{}, err
	}
	activeWidth, err := active.Type.FixedWidth()
	if err != nil {
		return Token{}, err
	}
	r.SkipZeroes(widest - activeWidth)

	payload, err := Decode(r, active.Type)
	if err != nil {
		return Token{}, fmt.Errorf("%s::%s: %w", typ.describe(), componentName(active, int(discriminant)), err)
	}
	return EnumToken(discriminant, payload), nil
}

// decodeVector reads the length word and then that many elements. A length
// inconsistent with the remaining buffer fails fast instead of allocating
// unbounded memory.
func decodeVector(r *codec.Reader, typ ParamType) (Token, error) {
	elemWidth, err := typ.Elem().FixedWidth()
	if err != nil {
		return Token{}, fmt.Errorf("%w: vec<%s>", ErrNestedVector, typ.Elem().Signature())
	}

	length := r.UnpackWord()
	if err := r.Err(); err != nil {
		return Token{}, err
	}
	if elemWidth > 0 && length > uint64(r.Remaining())/uint64(elemWidth) {
		return Token{}, fmt.Errorf("%w: %d elements of %d bytes exceed %d remaining",
			codec.ErrMalformedLength, length, elemWidth, r.Remaining())
	}
	// Zero-width elements consume no bytes, so the buffer cannot bound the
	// count; cap it instead.
	if elemWidth == 0 && length > consts.MaxCallDataSize {
		return Token{}, fmt.Errorf("%w: %d zero-width elements", codec.ErrMalformedLength, length)
	}

	elems := make([]Token, length)
	for i := range elems {
		elem, err := Decode(r, typ.Elem())
		if err != nil {
			return Token{}, fmt.Errorf("vec<%s>[%d]: %w", typ.Elem().Signature(), i, err)
		}
		elems[i] = elem
	}
	return VectorToken(elems...), nil
}

func numericToken(kind Kind, v uint64) Token {
	switch kind {
	case KindU8:
		return U8Token(uint8(v))
	case KindU16:
		return U16Token(uint16(v))
	case KindU32:
		return U32Token(uint32(v))
	default:
		return U64Token(v)
	}
}

// DecodeValue decodes a single value, such as a method's return payload,
// against the schema the caller expects. The schema is never discovered
// from the bytes.
func DecodeValue(data []byte, typ ParamType) (Token, error) {
	r := codec.NewReader(data)
	if typ.Kind() == KindVector {
		return decodeVector(r, typ)
	}
	return Decode(r, typ)
}

// DecodeArguments is the inverse of [EncodeArguments]: it walks the fixed
// region slot by slot and follows pointer words into the appended bodies.
func DecodeArguments(data []byte, types []ParamType) ([]Token, error) {
	r := codec.NewReader(data)
	tokens := make([]Token, len(types))
	for i, typ := range types {
		width, err := typ.FixedWidth()
		inline := err == nil && width <= consts.WordSize
		if inline {
			tokens[i], err = Decode(r, typ)
			if err != nil {
				return nil, fmt.Errorf("argument %d: %w", i, err)
			}
			continue
		}

		offset := r.UnpackWord()
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		if offset > uint64(len(data)) {
			return nil, fmt.Errorf("argument %d: %w: pointer %d of %d",
				i, codec.ErrMalformedLength, offset, len(data))
		}
		body := codec.NewReader(data)
		body.Seek(int(offset))
		if typ.Kind() == KindVector {
			tokens[i], err = decodeVector(body, typ)
		} else {
			tokens[i], err = Decode(body, typ)
		}
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
	}
	return tokens, nil
}
