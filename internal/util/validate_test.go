package util

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateRegionName_Valid(t *testing.T) {
	valid := []string{
		"RegionOne",
		"region1",
		"us-east-1",
		"fsn1",
		"DFW",
		"az_1.a",
	}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			if err := ValidateRegionName(name); err != nil {
				t.Errorf("expected %q to be valid, got error: %v", name, err)
			}
		})
	}
}

func TestValidateRegionName_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		wantMsg string
	}{
		{"", "must not be empty"},
		{"region one", "invalid characters"},
		{"region/1", "invalid characters"},
		{"region\t1", "invalid characters"},
		{"région", "invalid characters"},
		{"_meta", "is reserved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegionName(tt.name)
			if err == nil {
				t.Errorf("expected %q to be invalid, got nil", tt.name)
				return
			}
			if got := err.Error(); !strings.Contains(got, tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, got)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"RegionOne", []string{"RegionOne"}},
		{"RegionOne,RegionTwo", []string{"RegionOne", "RegionTwo"}},
		{" DFW , ORD ,,IAD", []string{"DFW", "ORD", "IAD"}},
		{",,", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SplitList(tt.in)); diff != "" {
				t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
