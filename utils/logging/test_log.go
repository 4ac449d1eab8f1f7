// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"io"

	"go.uber.org/zap"
)

var (
	NoLog Logger = noLog{}

	// Discard drops all writes
	Discard io.WriteCloser = discard{}

	_ Logger = noLog{}
)

type discard struct{}

func (discard) Write(p []byte) (int, error) {
	return len(p), nil
}

func (discard) Close() error {
	return nil
}

type noLog struct{}

func (noLog) Write(b []byte) (int, error) {
	return len(b), nil
}

func (noLog) Fatal(string, ...zap.Field) {}

func (noLog) Error(string, ...zap.Field) {}

func (noLog) Warn(string, ...zap.Field) {}

func (noLog) Info(string, ...zap.Field) {}

func (noLog) Trace(string, ...zap.Field) {}

func (noLog) Debug(string, ...zap.Field) {}

func (noLog) Verbo(string, ...zap.Field) {}

func (noLog) StopOnPanic() {}

func (noLog) RecoverAndExit(f, exit func()) {
	defer exit()
	f()
}

func (noLog) Stop() {}
