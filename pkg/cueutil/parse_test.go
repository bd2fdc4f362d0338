// SPDX-License-Identifier: BSD-3-Clause

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const testSchema = `
#Doc: {
	name!:   string & !=""
	count!:  int
	extras?: [...string]
	...
}
`

type testDoc struct {
	Name   string   `json:"name"`
	Count  int      `json:"count"`
	Extras []string `json:"extras,omitempty"`
}

func TestParseAndDecode(t *testing.T) {
	data := []byte(`{"name": "pmp", "count": 3, "extras": ["a", "b"]}`)

	result, err := ParseAndDecode[testDoc](testSchema, data, "#Doc")
	if err != nil {
		t.Fatalf("ParseAndDecode failed: %v", err)
	}

	if result.Value.Name != "pmp" {
		t.Errorf("expected name pmp, got %q", result.Value.Name)
	}
	if result.Value.Count != 3 {
		t.Errorf("expected count 3, got %d", result.Value.Count)
	}
	if len(result.Value.Extras) != 2 {
		t.Errorf("expected 2 extras, got %v", result.Value.Extras)
	}
}

func TestParseAndDecodeUnifiedOrder(t *testing.T) {
	// The unified value must expose object fields in document order, which
	// the decoded Go map cannot provide.
	data := []byte(`{"name": "x", "count": 0, "zebra": 1, "apple": 2, "mango": 3}`)

	result, err := ParseAndDecode[testDoc](testSchema, data, "#Doc")
	if err != nil {
		t.Fatalf("ParseAndDecode failed: %v", err)
	}

	iter, err := result.Unified.Fields()
	if err != nil {
		t.Fatalf("Fields failed: %v", err)
	}
	var names []string
	for iter.Next() {
		names = append(names, iter.Selector().Unquoted())
	}

	want := []string{"name", "count", "zebra", "apple", "mango"}
	if len(names) != len(want) {
		t.Fatalf("expected fields %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected fields %v, got %v", want, names)
		}
	}
}

func TestParseAndDecodeValidation(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "missing required field", data: `{"name": "pmp"}`},
		{name: "wrong type", data: `{"name": "pmp", "count": "three"}`},
		{name: "empty name", data: `{"name": "", "count": 1}`},
		{name: "malformed document", data: `{"name": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAndDecode[testDoc](testSchema, []byte(tt.data), "#Doc", WithFilename("doc.json"))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), "doc.json") {
				t.Errorf("expected error to name the file, got %q", err.Error())
			}
		})
	}
}

func TestParseAndDecodeTooLarge(t *testing.T) {
	data := []byte(`{"name": "pmp", "count": 1}`)

	_, err := ParseAndDecode[testDoc](testSchema, data, "#Doc", WithMaxFileSize(4))
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if !strings.Contains(validationErr.Message, "too large") {
		t.Errorf("expected size message, got %q", validationErr.Message)
	}
}

func TestParseAndDecodeUnknownSchemaPath(t *testing.T) {
	_, err := ParseAndDecode[testDoc](testSchema, []byte(`{}`), "#Nope")
	if err == nil {
		t.Fatal("expected an error for an unknown schema definition")
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		path []string
		want string
	}{
		{path: nil, want: ""},
		{path: []string{"settings"}, want: "settings"},
		{path: []string{"settings", "name"}, want: "settings.name"},
		{path: []string{"contents", "0"}, want: "contents[0]"},
		{path: []string{"contents", "2", "driver"}, want: "contents[2].driver"},
	}

	for _, tt := range tests {
		if got := formatPath(tt.path); got != tt.want {
			t.Errorf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{FilePath: "settings.json", DocPath: "settings.driver", Message: "field is required"}
	want := "settings.json: settings.driver: field is required"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	err = &ValidationError{FilePath: "settings.json", Message: "broken"}
	if err.Error() != "settings.json: broken" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
