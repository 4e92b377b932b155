// Copyright 2025 Emiliano Spinella (eminwux)
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
//
// SPDX-License-Identifier: Apache-2.0

// Package sink is the classifier-facing slog handler. The Azure Functions
// custom-handler runtime reads a handler's stdout as Information and its
// stderr as Error unless the line contains "warn" (case-insensitive), in
// which case it becomes Warning. The sink routes records accordingly and
// runs the configured policy so each line lands at the severity its
// author declared, not the one the classifier would guess.
package sink

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/eminwux/sevlog/internal/errdefs"
	"github.com/eminwux/sevlog/internal/marker"
	"github.com/eminwux/sevlog/internal/policy"
)

// Sink implements slog.Handler. Error and Warn records go to the error
// stream, Info records to the standard stream, anything below Info is
// disabled. Scanning and transforming use fresh per-record state; the
// only shared mutable state is the write lock around the stream itself.
type Sink struct {
	transform policy.Transform

	errW io.Writer
	outW io.Writer

	mu    *sync.Mutex
	attrs []slog.Attr
}

// New builds a Sink writing to os.Stderr/os.Stdout.
func New(t policy.Transform) *Sink {
	return NewWithStreams(t, os.Stderr, os.Stdout)
}

// NewWithStreams builds a Sink with explicit streams, mainly for tests
// and for profiles that redirect output.
func NewWithStreams(t policy.Transform, errW, outW io.Writer) *Sink {
	return &Sink{
		transform: t,
		errW:      errW,
		outW:      outW,
		mu:        &sync.Mutex{},
	}
}

func (s *Sink) Enabled(_ context.Context, lvl slog.Level) bool {
	return lvl >= slog.LevelInfo
}

func (s *Sink) Handle(_ context.Context, r slog.Record) error {
	line := s.render(r)

	switch {
	case r.Level >= slog.LevelError:
		if marker.Contains(line) {
			line = s.transform.TransformError(line)
		}
		return s.write(s.errW, line)

	case r.Level >= slog.LevelWarn:
		if !marker.Contains(line) {
			line = s.transform.TransformWarning(line)
		}
		return s.write(s.errW, line)

	case r.Level >= slog.LevelInfo:
		// Stdout is Information regardless of content; no scanning.
		return s.write(s.outW, line)
	}

	return nil
}

func (s *Sink) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return s
	}
	clone := *s
	clone.attrs = append(append([]slog.Attr{}, s.attrs...), attrs...)
	return &clone
}

func (s *Sink) WithGroup(_ string) slog.Handler {
	// Groups carry no meaning for a single flat output line.
	return s
}

// render flattens the record into the one line the classifier will see.
func (s *Sink) render(r slog.Record) string {
	line := r.Message
	for _, a := range s.attrs {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})
	return line
}

func (s *Sink) write(w io.Writer, line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintln(w, line)
	return err
}

var (
	installMu sync.Mutex
	installed bool
)

// Install registers a Sink with the given policy as the process-wide
// default logger. It may succeed once; later calls fail with
// errdefs.ErrSinkInstalled and leave the first sink in place.
func Install(t policy.Transform) error {
	installMu.Lock()
	defer installMu.Unlock()

	if installed {
		return errdefs.ErrSinkInstalled
	}

	slog.SetDefault(slog.New(New(t)))
	installed = true
	return nil
}

// InstallDefault installs the escalating base64 policy with the standard
// warning tag.
func InstallDefault() error {
	return Install(policy.Encode{Tag: policy.WarningTag})
}
