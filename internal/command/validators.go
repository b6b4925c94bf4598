// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/staranto/unspackgo/internal/fingerprint"
	"github.com/staranto/unspackgo/internal/match"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func NotEmptyValidator(value any) error {
	if strings.TrimSpace(value.(string)) == "" {
		return errors.New("must not be empty")
	}
	return nil
}

// PatternValidator requires a regular expression that match.Pattern accepts.
func PatternValidator(value any) error {
	if _, err := match.Pattern(value.(string)); err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}
	return nil
}

func DigestValidator(value any) error {
	_, err := fingerprint.Lookup(value.(string))
	return err
}

var shellName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ShellNameValidator requires text usable as the start of a function name.
func ShellNameValidator(value any) error {
	if !shellName.MatchString(value.(string)) {
		return fmt.Errorf("%q is not a valid shell name", value)
	}
	return nil
}
