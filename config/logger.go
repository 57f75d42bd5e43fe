// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"io"
	"os"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger writes to stderr and, when LogFile is set, to a rotating file.
func (c *Config) NewLogger(name string) (logging.Logger, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, err
	}
	cores := []logging.WrappedCore{
		logging.NewWrappedCore(level, nopCloser{os.Stderr}, logging.Colors.ConsoleEncoder()),
	}
	if c.LogFile != "" {
		rw := &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    c.LogMaxSizeMB, // megabytes
			MaxBackups: c.LogMaxBackups,
		}
		cores = append(cores, logging.NewWrappedCore(level, rw, logging.JSON.FileEncoder()))
	}
	return logging.NewLogger(name, cores...), nil
}

// stderr must outlive the logger.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
