// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// A GCSSink writes files as objects in a Google Cloud Storage bucket.
// An object is only created once its writer is closed, so a report
// that fails part way never leaves a partial object behind.
type GCSSink struct {
	ctx    context.Context
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSSink returns a sink writing to bucket. Object names are
// prefixed by prefix, if it is not empty.
//
// If credentials names a service account key file, it is used to
// authenticate. Otherwise NewGCSSink uses the application default
// credentials.
func NewGCSSink(ctx context.Context, bucket, prefix, credentials string) (*GCSSink, error) {
	var opt option.ClientOption
	if credentials != "" {
		opt = option.WithCredentialsFile(credentials)
	} else {
		ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("finding default credentials: %w", err)
		}
		opt = option.WithTokenSource(ts)
	}
	client, err := storage.NewClient(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCSSink{ctx: ctx, client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

// ParseBucket splits a "bucket[/prefix]" argument.
func ParseBucket(s string) (bucket, prefix string, err error) {
	s = strings.TrimPrefix(s, "gs://")
	bucket, prefix, _ = strings.Cut(s, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("bad bucket %q", s)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

// Create implements Sink.
func (s *GCSSink) Create(name string) (io.WriteCloser, error) {
	obj := path.Join(s.prefix, name)
	w := s.client.Bucket(s.bucket).Object(obj).NewWriter(s.ctx)
	w.ContentType = contentType(name)
	return w, nil
}

// Close releases the storage client.
func (s *GCSSink) Close() error {
	return s.client.Close()
}

func contentType(name string) string {
	switch path.Ext(name) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	}
	if t := mime.TypeByExtension(path.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}
