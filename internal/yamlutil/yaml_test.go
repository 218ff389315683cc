package yamlutil_test

// Notes:
// - Encode error branch: yaml.Marshal only fails on channels and funcs, which
//   no configuration type contains.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-book2md/internal/yamlutil"
)

type bookSettings struct {
	Master  string `yaml:"master"`
	Timeout string `yaml:"timeout"`
	HTML    bool   `yaml:"html"`
}

// ---------------------------------------------------------------------------
// TestDecodeStrict - Parses YAML and rejects unknown fields
// ---------------------------------------------------------------------------

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		data       []byte
		dest       any
		wantErr    error
		wantPrefix bool
	}{
		{
			name: "known fields only",
			data: []byte("master: book/book.tex\ntimeout: 30s\nhtml: true"),
			dest: &bookSettings{},
		},
		{
			name:       "unknown field rejected",
			data:       []byte("master: book.tex\nmastr: typo.tex"),
			dest:       &bookSettings{},
			wantPrefix: true,
		},
		{
			name:       "invalid syntax",
			data:       []byte("master: [unclosed"),
			dest:       &bookSettings{},
			wantPrefix: true,
		},
		{"nil data", nil, &bookSettings{}, yamlutil.ErrEmptyInput, false},
		{"empty data", []byte{}, &bookSettings{}, yamlutil.ErrEmptyInput, false},
		{"nil destination", []byte("master: x"), nil, yamlutil.ErrNilDestination, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.DecodeStrict(tt.data, tt.dest)
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantPrefix:
				if err == nil || !strings.HasPrefix(err.Error(), "yamlutil:") {
					t.Fatalf("DecodeStrict() error = %v, want yamlutil-prefixed error", err)
				}
			case err != nil:
				t.Fatalf("DecodeStrict() unexpected error: %v", err)
			}
		})
	}
}

func TestDecodeStrict_Values(t *testing.T) {
	t.Parallel()

	var got bookSettings
	if err := yamlutil.DecodeStrict([]byte("master: book/book.tex\ntimeout: 2m\nhtml: true\n"), &got); err != nil {
		t.Fatalf("DecodeStrict() error = %v", err)
	}
	want := bookSettings{Master: "book/book.tex", Timeout: "2m", HTML: true}
	if got != want {
		t.Errorf("DecodeStrict() = %+v, want %+v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestEncode - Serializes settings back to YAML
// ---------------------------------------------------------------------------

func TestEncode(t *testing.T) {
	t.Parallel()

	in := bookSettings{Master: "book.tex", Timeout: "1m", HTML: true}
	data, err := yamlutil.Encode(in)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for _, want := range []string{"master: book.tex", "timeout: 1m", "html: true"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("Encode() output missing %q:\n%s", want, data)
		}
	}

	var back bookSettings
	if err := yamlutil.DecodeStrict(data, &back); err != nil {
		t.Fatalf("DecodeStrict(Encode()) error = %v", err)
	}
	if back != in {
		t.Errorf("decoded = %+v, want %+v", back, in)
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - MaxInputSize enforcement
// ---------------------------------------------------------------------------

// Modifies the package-level MaxInputSize, so it does not run in parallel.
func TestInputSizeLimit(t *testing.T) {
	original := yamlutil.MaxInputSize
	t.Cleanup(func() { yamlutil.MaxInputSize = original })
	yamlutil.MaxInputSize = 50

	data := make([]byte, 100)
	copy(data, "master: x")

	err := yamlutil.DecodeStrict(data, &bookSettings{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Fatalf("DecodeStrict() error = %v, want ErrInputTooLarge", err)
	}
	if !strings.Contains(err.Error(), "100 bytes") || !strings.Contains(err.Error(), "max 50") {
		t.Errorf("error should report sizes, got: %v", err)
	}
}
