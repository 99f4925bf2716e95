// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command presentbundle packs a directory of shaders into a bundle the
// demo can load, or lists the contents of an existing bundle.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"github.com/koru3d/present/asset"
)

func init() {
	u, err := user.Current()
	if err != nil {
		currentUserName = "unknown"
		return
	}
	currentUserName = u.Name
}

var (
	currentUserName string
	author          = flag.String("author", currentUserName, "Set the author of the bundle when packing")
	version         = flag.Int64("version", 1, "Bundle version number to create it with")
	list            = flag.String("l", "", "List the contents of the given bundle")
	pack            = flag.String("c", "", "Pack the given file/folder")
	dstFile         = flag.String("f", "out.ksb", "Destination file")
)

func main() {
	var opMade bool
	flag.Parse()

	if *list != "" && *pack != "" {
		fmt.Fprintln(os.Stderr, "only one operation at a time")
		os.Exit(1)
	}

	if *list != "" {
		opMade = true
		if err := listBundle(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if *pack != "" {
		opMade = true
		if err := packFiles(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if !opMade {
		flag.PrintDefaults()
	}
}

func listBundle() error {
	bundle, err := asset.OpenFile(*list)
	if err != nil {
		return err
	}
	defer bundle.Close()

	header := bundle.Header()
	fmt.Printf("author: %s, version: %d, created: %s\n",
		header.Author, header.Version, time.Unix(header.DateCreated, 0).Format(time.RFC3339))
	for _, entry := range header.Index {
		fmt.Printf("%s\t%d bytes (%d compressed)\n", entry.Name, entry.Size, entry.CompressedSize)
	}
	return nil
}

func packFiles() error {
	if _, err := os.Stat(*dstFile); err == nil {
		return fmt.Errorf("destination file exists, will not overwrite")
	}

	var filesToPack []string
	if err := filepath.Walk(*pack, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		filesToPack = append(filesToPack, path)
		return nil
	}); err != nil {
		return err
	}

	builder := asset.NewBuilder(asset.Header{
		Author:      *author,
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})

	for _, path := range filesToPack {
		contents, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := builder.Add(filepath.ToSlash(path), contents); err != nil {
			return err
		}
	}

	dst, err := os.Create(*dstFile)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = builder.WriteTo(dst)
	return err
}
