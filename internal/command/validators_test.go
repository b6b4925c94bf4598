// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagValidators(t *testing.T) {
	tests := []struct {
		name       string
		value      string
		validators []FlagValidatorType
		wantErr    string
	}{
		{"plain tool", "spack", []FlagValidatorType{NotEmptyValidator, JammedFlagValidator}, ""},
		{"jammed flag", "--stats", []FlagValidatorType{JammedFlagValidator}, "must not begin with '--'"},
		{"blank", "  ", []FlagValidatorType{NotEmptyValidator}, "must not be empty"},
		{"good pattern", `.*setup-env\.sh`, []FlagValidatorType{PatternValidator}, ""},
		{"bad pattern", "load(", []FlagValidatorType{PatternValidator}, "invalid pattern"},
		{"blake3", "blake3", []FlagValidatorType{DigestValidator}, ""},
		{"sha256", "sha256", []FlagValidatorType{DigestValidator}, ""},
		{"md5", "md5", []FlagValidatorType{DigestValidator}, "unknown digest"},
		{"prefix", "load_", []FlagValidatorType{ShellNameValidator}, ""},
		{"prefix with dash", "load-", []FlagValidatorType{ShellNameValidator}, "not a valid shell name"},
		{"prefix with digit", "9load", []FlagValidatorType{ShellNameValidator}, "not a valid shell name"},
		{"first failure wins", "", []FlagValidatorType{NotEmptyValidator, ShellNameValidator}, "must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagValidators(tt.value, tt.validators...)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
