// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package asset_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/koru3d/present/asset"
)

func buildTestBundle(t *testing.T) []byte {
	t.Helper()

	builder := asset.NewBuilder(asset.Header{
		Author:      "devblok",
		DateCreated: time.Now().Unix(),
		Version:     1,
	})
	if err := builder.Add("shaders/vert.spv", []byte("idunvovkjnreovmegihjbrqlkmfrjnb")); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("shaders/frag.spv", []byte("idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb")); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	written, err := builder.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if written != int64(buf.Len()) {
		t.Errorf("reported %d written, buffer holds %d", written, buf.Len())
	}
	return buf.Bytes()
}

func TestAddAndWrite(t *testing.T) {
	data := buildTestBundle(t)
	if len(data) == 0 {
		t.Error("empty bundle written")
	}
}

func TestDuplicateName(t *testing.T) {
	builder := asset.NewBuilder(asset.Header{Version: 1})
	if err := builder.Add("same", []byte("a")); err != nil {
		t.Fatal(err)
	}
	if err := builder.Add("same", []byte("b")); err == nil {
		t.Error("duplicate name accepted")
	}
}

func TestOpenAndLoad(t *testing.T) {
	data := buildTestBundle(t)

	bundle, err := asset.Open(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	names := bundle.Names()
	if len(names) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(names))
	}
	if names[0] != "shaders/frag.spv" || names[1] != "shaders/vert.spv" {
		t.Errorf("unexpected entry order: %v", names)
	}

	contents, err := bundle.Load("shaders/vert.spv")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Compare(string(contents), "idunvovkjnreovmegihjbrqlkmfrjnb") != 0 {
		t.Error("decompressed contents do not match up")
	}

	if _, err := bundle.Load("shaders/missing.spv"); !errors.Is(err, asset.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	if _, err := asset.Open(bytes.NewReader([]byte("TAR\x00 some other format entirely"))); !errors.Is(err, asset.ErrFileFormat) {
		t.Errorf("expected ErrFileFormat, got %v", err)
	}
}

func TestOpenFile(t *testing.T) {
	data := buildTestBundle(t)

	path := filepath.Join(t.TempDir(), "shaders.ksb")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	bundle, err := asset.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer bundle.Close()

	contents, err := bundle.Load("shaders/frag.spv")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Compare(string(contents), "idunvovkjnreovmsdvwrvnervnreegihjbrqlkmfrjnb") != 0 {
		t.Error("decompressed contents do not match up")
	}
}
