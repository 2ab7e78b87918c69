package validation

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Login    string `validate:"omitempty,nowhitespace"`
	Name     string `validate:"omitempty,notblank"`
	Birthday string `validate:"omitempty,datetime=2006-01-02,notfuture"`
	Release  string `validate:"omitempty,datetime=2006-01-02,notbefore=1895-12-28"`
	Premiere string `validate:"omitempty,releasedate"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := RegisterOn(v); err != nil {
		t.Fatalf("RegisterOn: %v", err)
	}
	return v
}

func TestRules(t *testing.T) {
	now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	defer func() { now = time.Now }()

	v := newValidator(t)
	tests := []struct {
		name  string
		in    sample
		valid bool
	}{
		{"empty", sample{}, true},
		{"login ok", sample{Login: "neo"}, true},
		{"login with space", sample{Login: "ne o"}, false},
		{"login with tab", sample{Login: "ne\to"}, false},
		{"blank name", sample{Name: "   "}, false},
		{"birthday today", sample{Birthday: "2024-03-10"}, true},
		{"birthday tomorrow", sample{Birthday: "2024-03-11"}, false},
		{"birthday garbage", sample{Birthday: "10.03.2024"}, false},
		{"release on floor", sample{Release: "1895-12-28"}, true},
		{"release before floor", sample{Release: "1895-12-27"}, false},
		{"premiere on first screening", sample{Premiere: "1895-12-28"}, true},
		{"premiere before first screening", sample{Premiere: "1895-12-27"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.in)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestRegisterOnGinEngine(t *testing.T) {
	if err := Register(); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := Register(); err != nil {
		t.Fatalf("second Register: %v", err)
	}
}

func TestParseAndFormatDate(t *testing.T) {
	d, err := ParseDate("2001-09-11")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if got := FormatDate(d); got != "2001-09-11" {
		t.Errorf("FormatDate = %q", got)
	}
	if d, err := ParseDate(""); d != nil || err != nil {
		t.Errorf("ParseDate(\"\") = %v, %v", d, err)
	}
	if _, err := ParseDate("yesterday"); err == nil {
		t.Error("ParseDate should reject garbage")
	}
	if FormatDate(nil) != "" {
		t.Error("FormatDate(nil) should be empty")
	}
}
