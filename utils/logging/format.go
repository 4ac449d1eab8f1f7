// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"golang.org/x/term"
)

// Format modes available
const (
	Auto Format = iota
	Plain
	Colors
	JSON

	termTimeFormat = "[01-02|15:04:05.000]"
)

var (
	errUnknownFormat = errors.New("unknown format")

	defaultEncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    levelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	termEncoderConfig = zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    levelEncoder,
		EncodeTime:     termTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
)

// Format specifies how log messages are encoded.
type Format int

// ToFormat chooses a format mode. [fd] is the file descriptor logs are
// displayed on, used to resolve Auto.
func ToFormat(f string, fd uintptr) (Format, error) {
	switch strings.ToUpper(f) {
	case "AUTO":
		if !term.IsTerminal(int(fd)) {
			return Plain, nil
		}
		return Colors, nil
	case "PLAIN":
		return Plain, nil
	case "COLORS":
		return Colors, nil
	case "JSON":
		return JSON, nil
	default:
		return Plain, fmt.Errorf("%w: %q", errUnknownFormat, f)
	}
}

func (f Format) ConsoleEncoder() zapcore.Encoder {
	switch f {
	case Colors:
		config := termEncoderConfig
		config.EncodeLevel = consoleColorLevelEncoder
		return zapcore.NewConsoleEncoder(config)
	case JSON:
		return zapcore.NewJSONEncoder(defaultEncoderConfig)
	default:
		return zapcore.NewConsoleEncoder(termEncoderConfig)
	}
}

func (f Format) FileEncoder() zapcore.Encoder {
	switch f {
	case JSON:
		return zapcore.NewJSONEncoder(defaultEncoderConfig)
	default:
		return zapcore.NewConsoleEncoder(termEncoderConfig)
	}
}

func (f Format) WrapPrefix(prefix string) string {
	if prefix == "" || f == JSON {
		return prefix
	}
	return fmt.Sprintf("<%s>", prefix)
}

func levelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(Level(l).String())
}

func consoleColorLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	s, ok := levelToCapitalColorString[Level(l)]
	if !ok {
		s = unknownLevelColor.Wrap(l.String())
	}
	enc.AppendString(s)
}

func termTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format(termTimeFormat))
}
