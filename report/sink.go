// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// A Sink is a destination for report files.
//
// Names are slash-separated paths relative to the root of the sink.
// A file becomes visible in the sink only once its writer has been
// closed without error.
type Sink interface {
	Create(name string) (io.WriteCloser, error)
}

// WriteFile writes data to the file name in s.
func WriteFile(s Sink, name string, data []byte) error {
	w, err := s.Create(name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("%s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// A DirSink writes files under a local directory, creating
// subdirectories as needed. Each file is written to a temporary file
// in the same directory and renamed into place on Close, so readers
// never observe a partial file.
type DirSink struct {
	Dir string
}

// Create implements Sink.
func (s DirSink) Create(name string) (io.WriteCloser, error) {
	dst := filepath.Join(s.Dir, filepath.FromSlash(name))
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0o777); err != nil {
		return nil, err
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*")
	if err != nil {
		return nil, err
	}
	return &atomicFile{f: f, dst: dst}, nil
}

type atomicFile struct {
	f   *os.File
	dst string
	err error // first write error
}

func (a *atomicFile) Write(p []byte) (int, error) {
	n, err := a.f.Write(p)
	if err != nil && a.err == nil {
		a.err = err
	}
	return n, err
}

func (a *atomicFile) Close() error {
	tmp := a.f.Name()
	err := a.f.Close()
	if a.err != nil {
		err = a.err
	}
	if err == nil {
		// CreateTemp uses mode 0600.
		err = os.Chmod(tmp, 0o644)
	}
	if err == nil {
		err = os.Rename(tmp, a.dst)
	}
	if err != nil {
		os.Remove(tmp)
	}
	return err
}
