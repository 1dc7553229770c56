package io

import (
	"errors"
	"os"
)

var (
	ErrNotOpened     = errors.New("file not opened")
	ErrReadMismatch  = errors.New("read bytes mismatch")
	ErrWriteMismatch = errors.New("written bytes mismatch")
)

type FileReader struct {
	path   string
	file   *os.File
	opened bool

	exists bool
}

func NewFileReader(path string) *FileReader {

	_, err := os.Stat(path)

	freader := &FileReader{
		path:   path,
		exists: err == nil,
	}

	return freader
}

func (f *FileReader) Exists() bool {
	return f.exists
}

func (f *FileReader) Path() string {
	return f.path
}

func (f *FileReader) Open(readOnly bool) (topErr error) {

	var perm os.FileMode = 0644

	if readOnly {
		f.file, topErr = os.OpenFile(f.path, os.O_RDONLY, perm)
	} else {
		f.file, topErr = os.OpenFile(f.path, os.O_CREATE|os.O_RDWR, perm)
	}

	if topErr == nil {
		f.opened = true
		f.exists = true
	}

	return topErr

}

func (f *FileReader) Close() error {
	if !f.opened {
		return nil
	}

	f.opened = false
	return f.file.Close()
}

// ReadAt fills out[:length] from offset off. Errors of the underlying file
// are returned as is.
func (f *FileReader) ReadAt(out []byte, off, length int) (err error) {
	if !f.opened {
		return ErrNotOpened
	}

	var readBytes int
	readBytes, err = f.file.ReadAt(out[:length], int64(off))

	if readBytes == length {
		// a full read at the end of the file may come with io.EOF
		return nil
	}
	if err != nil {
		return err
	}

	return ErrReadMismatch
}

func (f *FileReader) WriteAt(in []byte, off, length int) (err error) {
	if !f.opened {
		return ErrNotOpened
	}

	var writtenBytes int
	writtenBytes, err = f.file.WriteAt(in[:length], int64(off))
	if err != nil {
		return err
	}
	if writtenBytes != length {
		return ErrWriteMismatch
	}

	return nil
}
