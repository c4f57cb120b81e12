// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package abi

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// genFixedType draws a schema from the fixed-width grammar. Depth bounds the
// nesting so generation terminates.
func genFixedType(rng *rand.Rand, depth int) ParamType {
	if depth <= 0 {
		switch rng.Intn(8) {
		case 0:
			return Unit()
		case 1:
			return Bool()
		case 2:
			return U8()
		case 3:
			return U16()
		case 4:
			return U32()
		case 5:
			return U64()
		case 6:
			return B256()
		default:
			return String(1 + rng.Intn(20))
		}
	}
	switch rng.Intn(4) {
	case 0:
		return Array(genFixedType(rng, depth-1), 1+rng.Intn(3))
	case 1:
		n := 1 + rng.Intn(3)
		elems := make([]ParamType, n)
		for i := range elems {
			elems[i] = genFixedType(rng, depth-1)
		}
		return Tuple(elems...)
	case 2:
		n := 1 + rng.Intn(3)
		fields := make([]Component, n)
		for i := range fields {
			fields[i] = Field("f", genFixedType(rng, depth-1))
		}
		return Struct("S", fields...)
	default:
		n := 1 + rng.Intn(3)
		variants := make([]Component, n)
		for i := range variants {
			variants[i] = Field("v", genFixedType(rng, depth-1))
		}
		return Enum("E", variants...)
	}
}

// genToken draws a token matching [typ].
func genToken(rng *rand.Rand, typ ParamType) Token {
	switch typ.Kind() {
	case KindUnit:
		return UnitToken()
	case KindBool:
		return BoolToken(rng.Intn(2) == 1)
	case KindU8:
		return U8Token(uint8(rng.Uint32()))
	case KindU16:
		return U16Token(uint16(rng.Uint32()))
	case KindU32:
		return U32Token(rng.Uint32())
	case KindU64:
		return U64Token(rng.Uint64())
	case KindByte:
		return ByteToken(byte(rng.Uint32()))
	case KindB256:
		var b [32]byte
		rng.Read(b[:])
		return B256Token(b)
	case KindString:
		s := make([]byte, typ.Len())
		for i := range s {
			s[i] = byte('a' + rng.Intn(26))
		}
		return StringToken(string(s))
	case KindArray:
		elems := make([]Token, typ.Len())
		for i := range elems {
			elems[i] = genToken(rng, typ.Elem())
		}
		return ArrayToken(elems...)
	case KindVector:
		elems := make([]Token, rng.Intn(4))
		for i := range elems {
			elems[i] = genToken(rng, typ.Elem())
		}
		return VectorToken(elems...)
	case KindTuple, KindStruct:
		elems := make([]Token, len(typ.Components()))
		for i, c := range typ.Components() {
			elems[i] = genToken(rng, c.Type)
		}
		if typ.Kind() == KindTuple {
			return TupleToken(elems...)
		}
		return StructToken(elems...)
	case KindEnum:
		variant := rng.Intn(len(typ.Components()))
		return EnumToken(uint64(variant), genToken(rng, typ.Components()[variant].Type))
	default:
		return UnitToken()
	}
}

func TestRoundTripGeneratedSchemas(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(0))

	for i := 0; i < 500; i++ {
		typ := genFixedType(rng, 1+rng.Intn(3))
		token := genToken(rng, typ)

		encoded, err := EncodeValue(typ, token)
		require.NoError(err, "schema %s", typ.Signature())

		decoded, err := DecodeValue(encoded, typ)
		require.NoError(err, "schema %s", typ.Signature())
		require.Equal(token, decoded, "schema %s", typ.Signature())
	}
}

func TestRoundTripGeneratedArguments(t *testing.T) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(4)
		types := make([]ParamType, n)
		tokens := make([]Token, n)
		for j := range types {
			if rng.Intn(4) == 0 {
				types[j] = Vector(genFixedType(rng, 1))
			} else {
				types[j] = genFixedType(rng, rng.Intn(3))
			}
			tokens[j] = genToken(rng, types[j])
		}

		encoded, err := EncodeArguments(types, tokens)
		require.NoError(err)

		decoded, err := DecodeArguments(encoded, types)
		require.NoError(err)
		require.Equal(tokens, decoded)
	}
}

func TestRoundTripVector(t *testing.T) {
	require := require.New(t)

	typ := Vector(Struct("Point", Field("x", U64()), Field("y", U64())))
	token := VectorToken(
		StructToken(U64Token(1), U64Token(2)),
		StructToken(U64Token(3), U64Token(4)),
	)

	encoded, err := EncodeValue(typ, token)
	require.NoError(err)
	require.Equal(40, len(encoded)) // length word + 2 * 2 words

	decoded, err := DecodeValue(encoded, typ)
	require.NoError(err)
	require.Equal(token, decoded)
}
