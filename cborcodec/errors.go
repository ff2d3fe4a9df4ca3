// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cborcodec implements the deterministic CBOR subset (RFC 8949
// §4.2 canonical rules plus the Cardano ledger's tag-258 set convention)
// used to serialize and deserialize ledger objects.
package cborcodec

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every decode/encode failure wraps one of these so
// callers can classify with errors.Is.
var (
	ErrEndOfBuffer         = errors.New("cborcodec: end of buffer")
	ErrUnexpectedCborType  = errors.New("cborcodec: unexpected cbor type")
	ErrInvalidArraySize    = errors.New("cborcodec: invalid array size")
	ErrInvalidMapSize      = errors.New("cborcodec: invalid map size")
	ErrMalformedTag        = errors.New("cborcodec: malformed tag")
	ErrIntegerOutOfRange   = errors.New("cborcodec: integer out of range")
	ErrInvalidUtf8         = errors.New("cborcodec: invalid utf-8")
	ErrNotCanonical        = errors.New("cborcodec: not canonical")
	ErrUnknownDiscriminator = errors.New("cborcodec: unknown discriminator")
	ErrDuplicateKey        = errors.New("cborcodec: duplicate key")
	ErrInvalidOperation    = errors.New("cborcodec: invalid operation")
	ErrInvariantViolation  = errors.New("cborcodec: invariant violation")
)

// wrap attaches context to a sentinel error.
func wrap(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
