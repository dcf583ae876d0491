// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager reads files and replaces them atomically
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
}

// 🔧 DiskFileManager implements FileManager on the local file system
type DiskFileManager struct{}

// NewFileManager creates a FileManager backed by the local disk
func NewFileManager() *DiskFileManager {
	return &DiskFileManager{}
}

func (m *DiskFileManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

// WriteFileAtomic writes content to a temp file next to path and renames it
// over path. The original permission bits are kept. A file the process cannot
// write is refused. On failure the original file is left as it was.
func (m *DiskFileManager) WriteFileAtomic(ctx context.Context, path string, content []byte) (err error) {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Errorf("checking file: %w", err)
	}

	// rename only needs the directory to be writable; a file the process may
	// not write is never replaced
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return errors.Errorf("opening file for writing: %w", err)
	}
	if err = f.Close(); err != nil {
		return errors.Errorf("closing file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			if rmErr := os.Remove(tempPath); rmErr != nil && !os.IsNotExist(rmErr) {
				zerolog.Ctx(ctx).Warn().Err(rmErr).Str("temp", tempPath).Msg("removing temp file")
			}
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return errors.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tempPath, info.Mode().Perm()); err != nil {
		return errors.Errorf("setting temp file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err = os.Rename(tempPath, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
