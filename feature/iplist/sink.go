package iplist

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"os"
	"path"
	"path/filepath"

	"iplist-automanage/core/storage"

	"github.com/minio/minio-go/v7"
)

// Sink stores the artifacts of one run.
type Sink interface {
	// Put stores one named artifact.
	Put(ctx context.Context, name string, data []byte) error
	// Location describes where artifacts end up.
	Location() string
}

// DirSink writes artifacts to a local directory, creating it on first use.
type DirSink struct {
	Dir string
}

// Put writes the artifact to Dir/name.
func (s DirSink) Put(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create run directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// Location returns the directory.
func (s DirSink) Location() string {
	return s.Dir
}

// BucketSink uploads artifacts under a prefix of an object storage bucket.
type BucketSink struct {
	Client storage.Client
	Bucket string
	Prefix string
}

// RunPrefix returns the bucket prefix of a run's artifacts.
func RunPrefix(runID string) string {
	return path.Join(RunsFolder, runID) + "/"
}

// Put uploads the artifact to Prefix+name.
func (s BucketSink) Put(ctx context.Context, name string, data []byte) error {
	objName := s.Prefix + name
	_, err := s.Client.PutObject(
		ctx,
		s.Bucket,
		objName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType(name)},
	)
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", objName, err)
	}
	return nil
}

// Location returns the bucket URL of the prefix.
func (s BucketSink) Location() string {
	return fmt.Sprintf("s3://%s/%s", s.Bucket, s.Prefix)
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".csv":
		return "text/csv"
	case ".txt":
		return "text/plain"
	}
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		return t
	}
	return "application/octet-stream"
}

// MemorySink keeps artifacts in memory, in the order they were put.
type MemorySink struct {
	names []string
	files map[string][]byte
}

// NewMemorySink returns an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// Put stores the artifact, replacing an earlier one of the same name.
func (s *MemorySink) Put(_ context.Context, name string, data []byte) error {
	if _, ok := s.files[name]; !ok {
		s.names = append(s.names, name)
	}
	s.files[name] = data
	return nil
}

// Location returns "memory".
func (s *MemorySink) Location() string {
	return "memory"
}

// Names returns the artifact names in put order.
func (s *MemorySink) Names() []string {
	return append([]string(nil), s.names...)
}

// Get returns an artifact.
func (s *MemorySink) Get(name string) ([]byte, bool) {
	data, ok := s.files[name]
	return data, ok
}

// CopyTo puts every artifact into dst.
func (s *MemorySink) CopyTo(ctx context.Context, dst Sink) error {
	for _, name := range s.names {
		if err := dst.Put(ctx, name, s.files[name]); err != nil {
			return err
		}
	}
	return nil
}
