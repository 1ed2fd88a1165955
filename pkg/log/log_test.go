// Copyright 2025 Corrigo Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestDefaultConf(t *testing.T) {
	conf := SetDefaults()

	if conf.Output != "stdout" {
		t.Errorf("expected output to be stdout, got %s", conf.Output)
	}

	if conf.Level != "INFO" {
		t.Errorf("expected level to be INFO, got %s", conf.Level)
	}

	if conf.KeepHours != 7 {
		t.Errorf("expected KeepHours to be 7, got %d", conf.KeepHours)
	}
}

func TestConf_Validate(t *testing.T) {
	tests := []struct {
		name    string
		conf    *Conf
		wantErr bool
	}{
		{
			name: "valid stdout config",
			conf: &Conf{
				Output: "stdout",
				Level:  "INFO",
			},
			wantErr: false,
		},
		{
			name: "valid file config",
			conf: &Conf{
				Output:     "file",
				Path:       "/tmp/logs",
				Filename:   "corrigo.log",
				Level:      "DEBUG",
				KeepHours:  7,
				RotateSize: 100,
				RotateNum:  10,
			},
			wantErr: false,
		},
		{
			name: "invalid file config - missing path",
			conf: &Conf{
				Output: "file",
				Level:  "INFO",
			},
			wantErr: true,
		},
		{
			name: "file config with auto-correction",
			conf: &Conf{
				Output:     "file",
				Path:       "/tmp/logs",
				Level:      "INFO",
				RotateSize: -1,
				RotateNum:  0,
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conf.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"DEBUG", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{" info ", zapcore.InfoLevel},
		{"WARNING", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"FATAL", zapcore.FatalLevel},
		{"bogus", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLog(t *testing.T) {
	conf := SetDefaults()
	if _, err := NewLog(conf); err != nil {
		t.Fatalf("NewLog() error = %v", err)
	}

	Infof("formatted %s", "message")
	Infow("structured message", "key", "value")
	Debugw("debug message", "key", "value")
}
