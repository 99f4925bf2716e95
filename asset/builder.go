// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset

import (
	"bytes"
	"encoding/gob"
	"io"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in
// the header, it will be overwritten anyway.
func NewBuilder(header Header) *Builder {
	header.Index = nil
	return &Builder{header: header}
}

type pendingEntry struct {
	name       string
	size       int64
	compressed []byte
}

// Builder assembles a bundle in memory. Bundles are versioned and cannot
// be appended to once written. Add compresses immediately, WriteTo lays
// out the index and entry data. Add is safe to use concurrently in
// different goroutines.
type Builder struct {
	header Header

	mutex   sync.Mutex
	entries []pendingEntry
}

// Add compresses data and appends it to the builder with a given name.
// Will block until lz4 finishes compression.
func (b *Builder) Add(name string, data []byte) error {
	var compressed bytes.Buffer
	writer := lz4.NewWriter(&compressed)
	if _, err := writer.Write(data); err != nil {
		return errors.Wrap(err, "lz4 compress")
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(err, "lz4 compress")
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	for _, e := range b.entries {
		if e.name == name {
			return errors.Newf("duplicate entry name %s", name)
		}
	}
	b.entries = append(b.entries, pendingEntry{
		name:       name,
		size:       int64(len(data)),
		compressed: compressed.Bytes(),
	})
	return nil
}

// WriteTo bundles and writes all of the entries added to the Builder
// into a bundle that is ready to use.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	header.Index = make([]IndexEntry, len(b.entries))
	for i, e := range b.entries {
		header.Index[i] = IndexEntry{
			Name:           e.name,
			Size:           e.size,
			CompressedSize: int64(len(e.compressed)),
		}
	}

	// Offsets depend on the encoded header size, which itself holds the
	// offsets. Re-encode until the size settles; the gob length only
	// grows with offset digit width, so this converges in a round or two.
	rawHeader, err := encode(header)
	if err != nil {
		return 0, err
	}
	dataStart := int64(MagicLength+HeaderSizeNumberLength) + int64(len(rawHeader))
	for {
		offset := dataStart
		for i := range header.Index {
			header.Index[i].Offset = offset
			offset += header.Index[i].CompressedSize
		}
		if rawHeader, err = encode(header); err != nil {
			return 0, err
		}
		nextStart := int64(MagicLength+HeaderSizeNumberLength) + int64(len(rawHeader))
		if nextStart == dataStart {
			break
		}
		dataStart = nextStart
	}

	var written int64
	n, err := w.Write(magic[:])
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(int64ToBinary(int64(len(rawHeader))))
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(rawHeader)
	written += int64(n)
	if err != nil {
		return written, err
	}
	for _, e := range b.entries {
		n, err = w.Write(e.compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}

	b.entries = b.entries[:0]
	return written, nil
}

func encode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	enc := gob.NewEncoder(&encoded)
	if err := enc.Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}
