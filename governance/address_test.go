// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package governance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAddress(t *testing.T) {
	testDefs := []struct {
		address  string
		expected bool
	}{
		{"0x1234567890abcdef1234567890abcdef12345678", true},
		{"0X1234567890ABCDEF1234567890ABCDEF12345678", true},
		{"", false},
		{"0x", false},
		{"0x1234567890abcdef1234567890abcdef1234567", false},
		{"0x1234567890abcdef1234567890abcdef123456789", false},
		{"1x1234567890abcdef1234567890abcdef12345678", false},
		{"0x1234567890abcdef1234567890abcdef1234567g", false},
		{"0x1234567890abcdef1234567890abcdef1234567 ", false},
	}
	for _, testDef := range testDefs {
		assert.Equal(
			t,
			testDef.expected,
			ValidAddress(testDef.address),
			"address: %q",
			testDef.address,
		)
	}
}
