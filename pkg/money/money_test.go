package money

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseCents(t *testing.T) {
	tests := []struct {
		in      string
		want    Cents
		wantErr error
	}{
		{"20", 2000, nil},
		{"20.5", 2050, nil},
		{"20.50", 2050, nil},
		{"R$ 1.234,56", 123456, nil},
		{"12,00", 1200, nil},
		{" 0.01 ", 1, nil},
		{"1.234", 0, ErrTooPrecise},
		{"10.001", 0, ErrTooPrecise},
		{"", 0, ErrInvalidAmount},
		{"abc", 0, ErrInvalidAmount},
		{"184467440737095516.17", 0, ErrInvalidAmount},
		{"92233720368547758.08", 0, ErrInvalidAmount},
		{"-92233720368547758.08", 0, ErrInvalidAmount},
		{"1e20", 0, ErrInvalidAmount},
		{"92233720368547758.07", 9223372036854775807, nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCents(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCents(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCents(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("ParseCents(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		in   Cents
		want string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{2400, "R$ 24,00"},
		{123456, "R$ 1.234,56"},
		{100000000, "R$ 1.000.000,00"},
		{-150, "-R$ 1,50"},
	}
	for _, tt := range tests {
		if got := FormatBRL(tt.in); got != tt.want {
			t.Errorf("FormatBRL(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAmountJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Price Amount `json:"price"`
	}{Cents(2050).Amount()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"price":20.50}` {
		t.Fatalf("got %s", b)
	}

	var back struct {
		Price Amount `json:"price"`
	}
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Price.Cents() != 2050 {
		t.Fatalf("round trip cents = %d", back.Price.Cents())
	}
}
