// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package publish uploads a built gallery (pages, images, thumbnails) to an
// S3 bucket so a static docs host can serve it.
package publish

import (
	"context"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API is the slice of the S3 client the syncer needs; tests substitute a
// fake.
type S3API interface {
	PutObject(ctx context.Context, params *s3v2.PutObjectInput, optFns ...func(*s3v2.Options)) (*s3v2.PutObjectOutput, error)
}

// Syncer uploads directory trees to one bucket/prefix.
type Syncer struct {
	Client S3API
	Bucket string
	Prefix string
}

// SyncDir walks dir and uploads every regular file, keyed by its path
// relative to dir under the syncer's prefix. Returns the count and total
// bytes uploaded.
func (s *Syncer) SyncDir(ctx context.Context, dir string) (int, int64, error) {
	var count int
	var bytes int64

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		key := filepath.ToSlash(rel)
		if s.Prefix != "" {
			key = strings.TrimSuffix(s.Prefix, "/") + "/" + key
		}

		size, err := s.upload(ctx, path, key)
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", rel, err)
		}

		count++
		bytes += size
		return nil
	})
	if err != nil {
		return count, bytes, err
	}

	return count, bytes, nil
}

func (s *Syncer) upload(ctx context.Context, path, key string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	log.Debugf("put s3://%s/%s (%d bytes)", s.Bucket, key, info.Size())

	_, err = s.Client.PutObject(ctx, &s3v2.PutObjectInput{
		Bucket:        awsv2.String(s.Bucket),
		Key:           awsv2.String(key),
		Body:          f,
		ContentLength: awsv2.Int64(info.Size()),
		ContentType:   awsv2.String(contentType),
	})
	if err != nil {
		return 0, err
	}

	return info.Size(), nil
}
