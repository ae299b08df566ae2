// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate"
	"github.com/toole-brendan/mmwallet/signer"
)

var (
	backendLog = btclog.NewBackend(logWriter{})
	log        = backendLog.Logger("ADDR")
)

// logWriter implements io.Writer, splitting log output between stdout and
// a rotating log file — the same split the teacher's daemon-facing tools
// use so a user watching the terminal sees the same lines that land on
// disk for later inspection.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if rotator != nil {
		rotator.Write(p)
	}
	return len(p), nil
}

var rotator *logrotate.Rotator

// initLogRotator creates a rotating log file at logPath, following the
// same init-once-at-startup convention the btcsuite family of daemons
// uses for their --logdir flag.
func initLogRotator(logPath string) error {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}
	r, err := logrotate.NewRotator(logPath)
	if err != nil {
		return err
	}
	rotator = r
	signer.UseLogger(backendLog.Logger("SIGN"))
	return nil
}
