// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// rule checks a present, non-blank value and returns a message when the
// value is rejected, or "" when it is accepted.
type rule func(value string) string

// fieldRule describes how a single field is validated.
type fieldRule struct {
	name string

	// required reports "This field is required." when the field is absent.
	required bool

	// allowBlank accepts an empty or whitespace-only value without running rules.
	allowBlank bool

	rules []rule
}

// schema is an ordered set of field rules applied to one request type.
type schema []fieldRule

// check validates values against the schema. When fields is non-empty only
// the named fields are checked.
func (s schema) check(values map[string]*string, fields ...string) (FieldErrors, error) {
	selected := s
	if len(fields) > 0 {
		selected = make(schema, 0, len(fields))
		for _, name := range fields {
			idx := slices.IndexFunc(s, func(fr fieldRule) bool { return fr.name == name })
			if idx < 0 {
				return nil, fmt.Errorf("%w: %s", ErrUnknownField, name)
			}
			selected = append(selected, s[idx])
		}
	}

	errs := FieldErrors{}
	for _, fr := range selected {
		value, present := values[fr.name]
		if !present || value == nil {
			if fr.required {
				errs.Add(fr.name, MsgRequired)
			}
			continue
		}

		if strings.TrimSpace(*value) == "" {
			if !fr.allowBlank {
				errs.Add(fr.name, MsgBlank)
			}
			continue
		}

		for _, r := range fr.rules {
			if msg := r(*value); msg != "" {
				errs.Add(fr.name, msg)
			}
		}
	}

	return errs, nil
}

func maxLength(n int) rule {
	return func(value string) string {
		if utf8.RuneCountInString(value) > n {
			return fmt.Sprintf(msgMaxLengthTemplate, n)
		}
		return ""
	}
}

// maxBytes bounds the encoded length; bcrypt ignores input past 72 bytes.
func maxBytes(n int) rule {
	return func(value string) string {
		if len(value) > n {
			return fmt.Sprintf(msgMaxLengthTemplate, n)
		}
		return ""
	}
}

func usernameChars(value string) string {
	for _, r := range value {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r) {
			continue
		}
		return MsgInvalidUsername
	}
	return ""
}

func emailAddress(value string) string {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return MsgInvalidEmail
	}

	at := strings.LastIndex(value, "@")
	domain := value[at+1:]
	if domain != "localhost" && !strings.Contains(strings.Trim(domain, "."), ".") {
		return MsgInvalidEmail
	}
	return ""
}

func passwordMinLength(value string) string {
	if utf8.RuneCountInString(value) < 8 {
		return MsgPasswordTooShort
	}
	return ""
}

func passwordNotNumeric(value string) string {
	for _, r := range value {
		if !unicode.IsDigit(r) {
			return ""
		}
	}
	return MsgPasswordNumeric
}

var commonPasswords = []string{
	"password", "password1", "password123", "12345678", "123456789", "1234567890",
	"qwerty123", "qwertyuiop", "iloveyou", "sunshine", "football", "baseball",
	"welcome1", "admin123", "letmein1", "abc12345", "11111111", "00000000",
}

func passwordNotCommon(value string) string {
	if slices.Contains(commonPasswords, strings.ToLower(value)) {
		return MsgPasswordCommon
	}
	return ""
}

var passwordRules = []rule{passwordMinLength, maxBytes(72), passwordNotNumeric, passwordNotCommon}

// similarToUsername reports whether password equals the username ignoring case.
func similarToUsername(password, username string) bool {
	return username != "" && strings.EqualFold(password, username)
}
