// Copyright (C) 2026, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package logging

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Level is the severity of a log message. The values are chosen so that a
// more severe level is always numerically greater, which lets them be used
// directly as zapcore levels.
type Level int8

const (
	Verbo Level = iota - 9
	Debug
	Trace
	Info
	Warn
	Error
	Fatal
	Off
)

const (
	verboStr = "VERBO"
	debugStr = "DEBUG"
	traceStr = "TRACE"
	infoStr  = "INFO"
	warnStr  = "WARN"
	errorStr = "ERROR"
	fatalStr = "FATAL"
	offStr   = "OFF"
)

// ToLevel is the inverse of Level.String()
func ToLevel(l string) (Level, error) {
	switch strings.ToUpper(l) {
	case verboStr:
		return Verbo, nil
	case debugStr:
		return Debug, nil
	case traceStr:
		return Trace, nil
	case infoStr:
		return Info, nil
	case warnStr:
		return Warn, nil
	case errorStr:
		return Error, nil
	case fatalStr:
		return Fatal, nil
	case offStr:
		return Off, nil
	default:
		return Off, fmt.Errorf("unknown log level: %q", l)
	}
}

func (l Level) String() string {
	switch l {
	case Verbo:
		return verboStr
	case Debug:
		return debugStr
	case Trace:
		return traceStr
	case Info:
		return infoStr
	case Warn:
		return warnStr
	case Error:
		return errorStr
	case Fatal:
		return fatalStr
	case Off:
		return offStr
	default:
		// This should never happen
		return "UNKNO"
	}
}

func (l Level) LowerString() string {
	return strings.ToLower(l.String())
}

func (l Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	var err error
	*l, err = ToLevel(str)
	return err
}
