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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRUT(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12.345.678-5", "123456785"},
		{"12345678-k", "12345678K"},
		{" 9.876.543-3 ", "98765433"},
		{"abc", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NormalizeRUT(tt.input), "input %q", tt.input)
	}
}

func TestValidateRUT(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		// 12345678: sum = 8*2+7*3+6*4+5*5+4*6+3*7+2*2+1*3 = 138, 138%11 = 6, dv = 5
		{"valid numeric dv", "12.345.678-5", true},
		{"valid without punctuation", "123456785", true},
		// 24965885: sum = 5*2+8*3+8*4+5*5+6*6+9*7+4*2+2*3 = 204, 204%11 = 6, dv = 5
		{"valid second body", "24.965.885-5", true},
		// 10000023: sum = 3*2+2*3+0+0+0+0+0*2+1*3 = 15, 15%11 = 4, dv = 7
		{"valid with internal zeros", "10000023-7", true},
		{"wrong check digit", "12.345.678-4", false},
		{"too short", "1234567", false},
		{"too long", "1234567890", false},
		{"empty", "", false},
		{"letters only", "abcdefgh", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidateRUT(tt.input))
		})
	}
}

func TestValidateRUT_KCheckDigit(t *testing.T) {
	// 18123798: sum = 8*2+9*3+7*4+3*5+2*6+1*7+8*2+1*3 = 124, 124%11 = 3 -> dv = 8.
	assert.True(t, ValidateRUT("18.123.798-8"))
	// K when remainder is 1: 10100001 reversed with multipliers 2,3,4,5,6,7,2,3
	// sums to 12, 12%11 = 1 -> dv = K.
	assert.True(t, ValidateRUT("10100001-K"))
	assert.True(t, ValidateRUT("10100001-k"))
	assert.False(t, ValidateRUT("10100001-0"))
}

func TestFormatRUT(t *testing.T) {
	assert.Equal(t, "12345678-4", FormatRUT("12.345.678-4"))
	assert.Equal(t, "12345678-K", FormatRUT("12345678k"))
	assert.Equal(t, "5", FormatRUT("5"))
	assert.Equal(t, "", FormatRUT(""))
}
