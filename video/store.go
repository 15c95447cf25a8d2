// Copyright 2025 The Dashtrack Authors
// SPDX-License-Identifier: Apache-2.0

package video

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const frameExt = ".png"

// FrameStore caches sampled frames on disk so interrupted extractions
// resume instead of redecoding the video. Frames live under a directory
// derived from the video's absolute path, keyed by second.
type FrameStore struct {
	root string
}

// NewFrameStore returns the store for one video under workDir. Two paths to
// the same file get the same store.
func NewFrameStore(workDir, videoPath string) (*FrameStore, error) {
	abs, err := filepath.Abs(videoPath)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", videoPath, err)
	}

	sum := sha256.Sum256([]byte(abs))

	return &FrameStore{
		root: filepath.Join(workDir, hex.EncodeToString(sum[:])[:16]),
	}, nil
}

// Root returns the directory holding this video's frames.
func (s *FrameStore) Root() string {
	return s.root
}

func (s *FrameStore) ensureRoot() error {
	if err := os.MkdirAll(s.root, 0o700); err != nil {
		return fmt.Errorf("setting up frame store: %w", err)
	}

	return nil
}

// FramePath returns where the frame for a given second of footage lives,
// creating the store directory if needed.
func (s *FrameStore) FramePath(second int) (string, error) {
	if err := s.ensureRoot(); err != nil {
		return "", err
	}

	return filepath.Join(s.root, fmt.Sprintf("%06d%s", second, frameExt)), nil
}

// ExistingFrames lists the seconds already sampled, ascending. A store that
// was never written to is an empty list, not an error.
func (s *FrameStore) ExistingFrames() ([]int, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("listing frame store: %w", err)
	}

	var seconds []int

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, frameExt) {
			continue
		}

		second, err := strconv.Atoi(strings.TrimSuffix(name, frameExt))
		if err != nil {
			continue
		}

		seconds = append(seconds, second)
	}

	sort.Ints(seconds)

	return seconds, nil
}
