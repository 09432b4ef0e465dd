package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "setup.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSetupMissing(t *testing.T) {
	got, err := LoadSetup(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Defaults(), got); diff != "" {
		t.Errorf("wrong setup (-want +got):\n%s", diff)
	}
}

func TestLoadSetupPartial(t *testing.T) {
	path := writeFile(t, `{"default-log-level": "debug", "status-server": {"enabled": true, "address": ":9090"}}`)
	got, err := LoadSetup(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Defaults()
	want.DefaultLogLevel = "debug"
	want.StatusServer = StatusServer{Enabled: true, Address: ":9090"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong setup (-want +got):\n%s", diff)
	}
}

func TestLoadSetupMalformed(t *testing.T) {
	cases := map[string]string{
		"syntax":     `{"default-log-level": `,
		"not object": `["info"]`,
		"wrong type": `{"status-server": {"enabled": "yes"}}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadSetup(writeFile(t, content)); err == nil {
				t.Error("want error")
			}
		})
	}
}

func TestNewJsonConfig(t *testing.T) {
	path := writeFile(t, `{"listening-status": "you"}`)
	cfg, err := NewJsonConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	var v struct {
		Status string `json:"listening-status"`
	}
	if err := cfg.Unmarshal(&v); err != nil {
		t.Fatal(err)
	}
	if v.Status != "you" {
		t.Errorf("want you, got %q", v.Status)
	}

	_, err = NewJsonConfig(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("want fs.ErrNotExist, got %v", err)
	}
}
