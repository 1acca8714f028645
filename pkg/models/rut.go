/*
 * Copyright 2025 RH360 SpA.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import "strings"

const (
	rutMinLength = 8
	rutMaxLength = 9
)

// NormalizeRUT strips everything but digits and the check letter, uppercasing
// a trailing k. "12.345.678-5" and "123456785" normalize identically.
func NormalizeRUT(rut string) string {
	var b strings.Builder

	for _, r := range rut {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'k' || r == 'K':
			b.WriteRune('K')
		}
	}

	return b.String()
}

// ValidateRUT checks a Chilean RUT's length and mod-11 check digit. Input
// format is flexible; dots and hyphens are ignored.
func ValidateRUT(rut string) bool {
	clean := NormalizeRUT(rut)

	if len(clean) < rutMinLength || len(clean) > rutMaxLength {
		return false
	}

	body := clean[:len(clean)-1]
	dv := clean[len(clean)-1]

	sum := 0
	multiplier := 2

	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			return false
		}

		sum += int(c-'0') * multiplier

		if multiplier < 7 {
			multiplier++
		} else {
			multiplier = 2
		}
	}

	var expected byte

	switch remainder := sum % 11; remainder {
	case 0:
		expected = '0'
	case 1:
		expected = 'K'
	default:
		expected = byte('0' + 11 - remainder)
	}

	return dv == expected
}

// FormatRUT renders a normalized RUT as body-dash-check-digit, the storage
// format the backend uses.
func FormatRUT(rut string) string {
	clean := NormalizeRUT(rut)
	if len(clean) < 2 {
		return clean
	}

	return clean[:len(clean)-1] + "-" + clean[len(clean)-1:]
}
