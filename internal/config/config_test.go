package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	testChdir(t, t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.PreferredFile != "countriesMBTI_16types.csv" {
		t.Fatalf("preferred_file = %q", c.PreferredFile)
	}
	if got := len(c.Extensions); got != 3 || c.Extensions[0] != ".csv" || c.Extensions[2] != ".xlsx" {
		t.Fatalf("extensions = %v", c.Extensions)
	}
	if !c.Recursive || c.StrictRange {
		t.Fatalf("recursive/strict_range = %v/%v", c.Recursive, c.StrictRange)
	}
	if c.TopK != 10 || c.SuggestN != 4 || c.MatchTop != 10 {
		t.Fatalf("top_k/suggest_n/match_top = %d/%d/%d", c.TopK, c.SuggestN, c.MatchTop)
	}
	if c.LogLevel != "info" {
		t.Fatalf("log_level = %q", c.LogLevel)
	}
}

func TestSaveThenLoad(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	testChdir(t, t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	c.TopK = 3
	c.Delimiter = ";"
	c.Extensions = []string{".csv"}
	if err := Save(c, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, DirName, "config.yaml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	back, err := Load("")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if back.TopK != 3 || back.Delimiter != ";" || len(back.Extensions) != 1 {
		t.Fatalf("reloaded = %+v", back)
	}
	r, err := back.DelimiterRune()
	if err != nil || r != ';' {
		t.Fatalf("DelimiterRune = %q, %v", r, err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	testChdir(t, dir)
	cfgFile := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(cfgFile, []byte("top_k: 7\nsuggest_n: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MBTI_TOP_K", "5")

	c, err := Load(cfgFile)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.TopK != 5 {
		t.Fatalf("top_k = %d, want env value 5", c.TopK)
	}
	if c.SuggestN != 2 {
		t.Fatalf("suggest_n = %d, want file value 2", c.SuggestN)
	}
}

func TestDotEnvIsRead(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	testChdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("MBTI_MATCH_TOP=3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MBTI_MATCH_TOP") })

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.MatchTop != 3 {
		t.Fatalf("match_top = %d, want 3 from .env", c.MatchTop)
	}
}

func TestLoadRejectsBrokenInputs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	testChdir(t, dir)

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("top_k: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); err == nil {
		t.Fatal("expected error for malformed yaml")
	}

	t.Setenv("MBTI_DELIMITER", "::")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for multi-character delimiter")
	}
}

func TestDelimiterRune(t *testing.T) {
	cases := []struct {
		in   string
		want rune
		ok   bool
	}{
		{"", 0, true},
		{",", ',', true},
		{"tab", '\t', true},
		{`\t`, '\t', true},
		{"|", '|', true},
		{`"`, 0, false},
		{"ab", 0, false},
	}
	for _, tc := range cases {
		c := Global{Delimiter: tc.in}
		got, err := c.DelimiterRune()
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("DelimiterRune(%q) = %q, %v", tc.in, got, err)
		}
	}
}

func TestNormalizeExtensions(t *testing.T) {
	got := normalizeExtensions([]string{"CSV", " .tsv ", "", ".csv"})
	if len(got) != 2 || got[0] != ".csv" || got[1] != ".tsv" {
		t.Fatalf("normalizeExtensions = %v", got)
	}
}
