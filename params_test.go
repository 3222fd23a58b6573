package infinitode

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestNormalizeMapname(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		wantErr bool
	}{
		{"string", "5.1", "5.1", false},
		{"float", 5.1, "5.1", false},
		{"int", 4, "4", false},
		{"int64", int64(12), "12", false},
		{"unsupported", struct{}{}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeMapname(tt.in)
			if tt.wantErr {
				var badArg *BadArgumentError
				if !errors.As(err, &badArg) {
					t.Fatalf("normalizeMapname(%v) err = %v, want BadArgumentError", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("normalizeMapname(%v): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("normalizeMapname(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCheckMapname(t *testing.T) {
	for _, m := range []string{"1.1", "5.b2", "rumble", "DQ12", "zecred"} {
		if err := checkMapname(m); err != nil {
			t.Errorf("checkMapname(%q) = %v, want nil", m, err)
		}
	}
	for _, m := range []string{"", "9.9", "DQ2", "SP", "5,1"} {
		if err := checkMapname(m); err == nil {
			t.Errorf("checkMapname(%q) = nil, want error", m)
		}
	}
}

func TestCheckPlayerID(t *testing.T) {
	valid := []string{"U-E9BP-FSN9-H6ENMQ", "U-AAAA-0000-ZZZZ99"}
	for _, id := range valid {
		if err := checkPlayerID(id); err != nil {
			t.Errorf("checkPlayerID(%q) = %v, want nil", id, err)
		}
	}
	invalid := []string{
		"",
		"U-e9bp-fsn9-h6enmq",
		"U-E9BP-FSN9-H6ENM",
		"U-E9BP-FSN9-H6ENMQX",
		"X-E9BP-FSN9-H6ENMQ",
		"U-E9BP-FSN9-H6ENMQ trailing",
	}
	for _, id := range invalid {
		if err := checkPlayerID(id); err == nil {
			t.Errorf("checkPlayerID(%q) = nil, want error", id)
		}
	}
}

func TestCheckModeAndDifficulty(t *testing.T) {
	if err := checkMode(ModeScore); err != nil {
		t.Errorf("checkMode(score) = %v", err)
	}
	if err := checkMode(ModeWaves); err != nil {
		t.Errorf("checkMode(waves) = %v", err)
	}
	if err := checkMode(Mode("turbo")); err == nil {
		t.Error("checkMode(turbo) = nil, want error")
	}

	for _, d := range []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyEndless} {
		if err := checkDifficulty(d); err != nil {
			t.Errorf("checkDifficulty(%s) = %v", d, err)
		}
	}
	if err := checkDifficulty(Difficulty("IMPOSSIBLE")); err == nil {
		t.Error("checkDifficulty(IMPOSSIBLE) = nil, want error")
	}
}

func TestNormalizeDate(t *testing.T) {
	log := zerolog.Nop()

	got, err := normalizeDate("2024-03-09", log)
	if err != nil || got != "2024-03-09" {
		t.Fatalf("normalizeDate(valid string) = %q, %v", got, err)
	}

	ts := time.Date(2023, 7, 14, 22, 5, 0, 0, time.UTC)
	got, err = normalizeDate(ts, log)
	if err != nil || got != "2023-07-14" {
		t.Fatalf("normalizeDate(time.Time) = %q, %v", got, err)
	}

	// nil and unparseable strings both fall back to the current UTC date;
	// capture today on both sides of the call so a midnight rollover cannot
	// flake the test
	for _, in := range []any{nil, "not-a-date"} {
		before := time.Now().UTC().Format(dateLayout)
		got, err = normalizeDate(in, log)
		after := time.Now().UTC().Format(dateLayout)
		if err != nil {
			t.Fatalf("normalizeDate(%v): %v", in, err)
		}
		if got != before && got != after {
			t.Errorf("normalizeDate(%v) = %q, want today", in, got)
		}
	}

	if _, err = normalizeDate(42, log); err == nil {
		t.Error("normalizeDate(42) = nil, want error")
	}
	var badArg *BadArgumentError
	_, err = normalizeDate(42, log)
	if !errors.As(err, &badArg) {
		t.Errorf("normalizeDate(42) err = %v, want BadArgumentError", err)
	}
}
