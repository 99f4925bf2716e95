// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package asset is an api for an lz4 backed bundle format holding
// shaders and other small resources a session loads at startup. The
// bundle itself is not compressed, every entry is individually
// compressed, so each one can be located from the index and decompressed
// on the fly. Bundles are designed to be memory mapped and can be read
// from concurrently.
package asset

import (
	"bytes"
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// package errors
var (
	ErrFileFormat = errors.New("corrupted or not an asset bundle")
	ErrNotFound   = errors.New("no entry with that name in the bundle")
)

// Sizes relevant to the bundle prologue
const (
	MagicLength            = 4
	HeaderSizeNumberLength = 16
)

var magic = [MagicLength]byte{'K', 'S', 'B', '\x00'}

// IndexEntry is info for one entry in the bundle index. Offsets are
// absolute within the bundle file.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the bundle header, gob encoded after the prologue.
type Header struct {
	Author      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

func int64ToBinary(num int64) []byte {
	numBytes := make([]byte, HeaderSizeNumberLength)
	binary.PutVarint(numBytes, num)
	return numBytes
}

func binaryToInt64(bts []byte) (int64, error) {
	num, err := binary.ReadVarint(bytes.NewReader(bts))
	if err != nil {
		return 0, err
	}
	return num, nil
}
