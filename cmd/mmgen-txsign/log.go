// Copyright (c) 2025 Shell Reserve developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate"
	"github.com/toole-brendan/mmwallet/rpcclient"
	"github.com/toole-brendan/mmwallet/signer"
)

var (
	backendLog = btclog.NewBackend(logWriter{})
	log        = backendLog.Logger("TXSN")
)

type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if rotator != nil {
		rotator.Write(p)
	}
	return len(p), nil
}

var rotator *logrotate.Rotator

func initLogRotator(logPath string) error {
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return err
	}
	r, err := logrotate.NewRotator(logPath)
	if err != nil {
		return err
	}
	rotator = r
	signer.UseLogger(backendLog.Logger("SIGN"))
	rpcclient.UseLogger(backendLog.Logger("RPCC"))
	return nil
}
