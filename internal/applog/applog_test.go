package applog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ausocean/utils/logging"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    int8
		wantErr bool
	}{
		{in: "debug", want: logging.Debug},
		{in: "INFO", want: logging.Info},
		{in: "", want: logging.Info},
		{in: "warn", want: logging.Warning},
		{in: "error", want: logging.Error},
		{in: "fatal", want: logging.Fatal},
		{in: "loud", wantErr: true},
	}
	for _, test := range tests {
		got, err := ParseLevel(test.in)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", test.in, err, test.wantErr)
			continue
		}
		if got != test.want {
			t.Errorf("ParseLevel(%q) = %d, want %d", test.in, got, test.want)
		}
	}
}

func TestNewWritesFile(t *testing.T) {
	var stderr bytes.Buffer
	path := filepath.Join(t.TempDir(), "demo.log")
	log, closer, err := newLogger("info", path, &stderr)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	log.Info("loaded image", "path", "board.png")
	log.Debug("hidden")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read log file: %v", err)
	}
	if !strings.Contains(string(data), "loaded image") {
		t.Errorf("log file missing message: %s", data)
	}
	if strings.Contains(string(data), "hidden") {
		t.Errorf("debug message logged at info level: %s", data)
	}
	if !strings.Contains(stderr.String(), "board.png") {
		t.Errorf("stderr missing message: %s", stderr.String())
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, _, err := New("chatty", ""); err == nil {
		t.Error("expected error for unknown level")
	}
}
