package domainlist

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeList(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "domains.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
		wantErr error
	}{
		{"plain array", `["example.com", "example.org"]`, []string{"example.com", "example.org"}, nil},
		{"object", `{"domains": ["example.com"]}`, []string{"example.com"}, nil},
		{"object with extra fields", `{"owner": "ops", "domains": ["a.io", "b.io"]}`, []string{"a.io", "b.io"}, nil},
		{"empty array", `[]`, []string{}, nil},
		{"object without domains", `{"names": ["example.com"]}`, nil, ErrInvalidFormat},
		{"string", `"example.com"`, nil, ErrInvalidFormat},
		{"number", `42`, nil, ErrInvalidFormat},
		{"array of numbers", `[1, 2]`, nil, ErrInvalidFormat},
		{"domains not an array", `{"domains": "example.com"}`, nil, ErrInvalidFormat},
	}

	for _, tc := range tests {
		got, err := Load(writeList(t, tc.content))
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("%s: Load err = %v, want %v", tc.name, err, tc.wantErr)
			}
			if len(got) != 0 {
				t.Errorf("%s: Load = %v, want empty", tc.name, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: Load = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLoadMalformed(t *testing.T) {
	got, err := Load(writeList(t, `{"domains": [`))
	if err == nil {
		t.Fatalf("Expected parse error")
	}
	if len(got) != 0 {
		t.Errorf("Expected empty list, got %v", got)
	}
}

func TestLoadMissing(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "domains.json"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected empty list, got %v", got)
	}
}

func TestResolve(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Resolve(""), filepath.Join(wd, DefaultFile); got != want {
		t.Errorf("Resolve(\"\") = %s, want %s", got, want)
	}
	if got := Resolve("/etc/domains.json"); got != "/etc/domains.json" {
		t.Errorf("Resolve kept absolute path wrong: %s", got)
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"example.com", []string{"example.com"}},
		{"example.com,example.org", []string{"example.com", "example.org"}},
		{" example.com , ,example.org ", []string{"example.com", "example.org"}},
		{"", nil},
		{",", nil},
	}
	for _, tc := range tests {
		if got := ParseList(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseList(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
