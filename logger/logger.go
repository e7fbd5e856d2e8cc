// Copyright (C) 2025 ConsentHound Contributors
//
// This file is part of ConsentHound.
//
// ConsentHound is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ConsentHound is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package logger bridges zerolog into the logr.Logger interface used
// throughout the codebase. Verbosity levels map to zerolog levels:
// V(0) info, V(1) debug, V(2)+ trace.
package logger

import (
	"os"

	"github.com/consenthound/consenthound/config"
	"github.com/go-logr/logr"
	"github.com/rs/zerolog"
)

func GetLogger() (*logr.Logger, error) {
	var writer = zerolog.ConsoleWriter{Out: os.Stderr}

	jsonLogs, _ := config.JsonLogs.Value().(bool)
	verbosity, _ := config.VerbosityLevel.Value().(int)

	zl := zerolog.New(writer)
	if jsonLogs {
		zl = zerolog.New(os.Stderr)
	}
	zl = zl.With().Timestamp().Logger()

	switch {
	case verbosity <= 0:
		zl = zl.Level(zerolog.InfoLevel)
	case verbosity == 1:
		zl = zl.Level(zerolog.DebugLevel)
	default:
		zl = zl.Level(zerolog.TraceLevel)
	}

	log := logr.New(&zerologSink{logger: &zl})
	return &log, nil
}

type zerologSink struct {
	logger *zerolog.Logger
	name   string
	values []interface{}
}

func (s *zerologSink) Init(info logr.RuntimeInfo) {}

func (s *zerologSink) Enabled(level int) bool {
	return s.event(level) != nil
}

func (s *zerologSink) Info(level int, msg string, keysAndValues ...interface{}) {
	if event := s.event(level); event != nil {
		s.write(event, msg, keysAndValues)
	}
}

func (s *zerologSink) Error(err error, msg string, keysAndValues ...interface{}) {
	s.write(s.logger.Error().Err(err), msg, keysAndValues)
}

func (s *zerologSink) WithValues(keysAndValues ...interface{}) logr.LogSink {
	values := make([]interface{}, 0, len(s.values)+len(keysAndValues))
	values = append(values, s.values...)
	values = append(values, keysAndValues...)
	return &zerologSink{logger: s.logger, name: s.name, values: values}
}

func (s *zerologSink) WithName(name string) logr.LogSink {
	qualified := name
	if s.name != "" {
		qualified = s.name + "." + name
	}
	return &zerologSink{logger: s.logger, name: qualified, values: s.values}
}

func (s *zerologSink) event(level int) *zerolog.Event {
	switch {
	case level <= 0:
		return s.logger.Info()
	case level == 1:
		return s.logger.Debug()
	default:
		return s.logger.Trace()
	}
}

func (s *zerologSink) write(event *zerolog.Event, msg string, keysAndValues []interface{}) {
	if event == nil {
		return
	}
	if s.name != "" {
		event = event.Str("logger", s.name)
	}
	event = fields(event, s.values)
	event = fields(event, keysAndValues)
	event.Msg(msg)
}

func fields(event *zerolog.Event, keysAndValues []interface{}) *zerolog.Event {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		event = event.Interface(key, keysAndValues[i+1])
	}
	return event
}
