// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"bytes"
	"encoding/gob"
	"io"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/pierrec/lz4"
	"golang.org/x/exp/mmap"
)

// Open reads the bundle index from r. It checks the magic prologue and
// returns ErrFileFormat when r is not a bundle.
func Open(r io.ReaderAt) (*Bundle, error) {
	prologue := make([]byte, MagicLength)
	if num, err := r.ReadAt(prologue, 0); err != nil {
		return nil, err
	} else if num < MagicLength || !bytes.Equal(prologue, magic[:]) {
		return nil, ErrFileFormat
	}

	headerSizeBytes := make([]byte, HeaderSizeNumberLength)
	if num, err := r.ReadAt(headerSizeBytes, MagicLength); err != nil {
		return nil, err
	} else if num < HeaderSizeNumberLength {
		return nil, ErrFileFormat
	}
	headerSize, err := binaryToInt64(headerSizeBytes)
	if err != nil || headerSize <= 0 {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, MagicLength+HeaderSizeNumberLength); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrFileFormat
	}

	var header Header
	dec := gob.NewDecoder(bytes.NewReader(headerBytes))
	if err := dec.Decode(&header); err != nil {
		return nil, ErrFileFormat
	}

	bundle := &Bundle{
		reader: r,
		header: header,
		index:  make(map[string]IndexEntry, len(header.Index)),
	}
	for _, entry := range header.Index {
		bundle.index[entry.Name] = entry
	}
	return bundle, nil
}

// OpenFile memory maps the bundle at path and opens it. Close releases
// the mapping.
func OpenFile(path string) (*Bundle, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	bundle, err := Open(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	bundle.closer = r
	return bundle, nil
}

// Bundle provides concurrent reads from an opened bundle. Every Load
// decompresses independently off the shared ReaderAt.
type Bundle struct {
	reader io.ReaderAt
	closer io.Closer
	header Header
	index  map[string]IndexEntry
}

// Header returns the bundle's descriptive header.
func (b *Bundle) Header() Header {
	return b.header
}

// Names lists every entry in the bundle in lexical order.
func (b *Bundle) Names() []string {
	names := make([]string, 0, len(b.index))
	for name := range b.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load returns the decompressed contents of the named entry.
func (b *Bundle) Load(name string) ([]byte, error) {
	entry, ok := b.index[name]
	if !ok {
		return nil, errors.Wrap(ErrNotFound, name)
	}

	compressed := make([]byte, entry.CompressedSize)
	if num, err := b.reader.ReadAt(compressed, entry.Offset); err != nil {
		return nil, err
	} else if int64(num) < entry.CompressedSize {
		return nil, ErrFileFormat
	}

	data := make([]byte, entry.Size)
	decompressor := lz4.NewReader(bytes.NewReader(compressed))
	if _, err := io.ReadFull(decompressor, data); err != nil {
		return nil, errors.Wrap(err, "lz4 decompress")
	}
	return data, nil
}

// Close releases the underlying mapping if the bundle owns one.
func (b *Bundle) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer.Close()
}
