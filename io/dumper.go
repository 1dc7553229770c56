package io

import (
	"log"
	"os"
)

// DumpRawBlock writes a raw block image to path, replacing the file.
func DumpRawBlock(path string, raw []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	var writtenBytes int
	writtenBytes, err = f.Write(raw)

	log.Printf("written %d bytes @ %s", writtenBytes, path)

	return err
}
