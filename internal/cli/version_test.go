package cli

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestVersionInfo(t *testing.T) {
	info := versionInfo()
	if info["name"] != "auditpad" {
		t.Errorf("expected name auditpad, got %q", info["name"])
	}
	if info["version"] != version {
		t.Errorf("expected version %q, got %q", version, info["version"])
	}
	if info["go"] == "" {
		t.Error("expected the toolchain version from build info")
	}
}

func TestVersionCommandPrintsJSON(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	versionCmd.Run(versionCmd, nil)

	var info map[string]string
	if err := json.Unmarshal(out.Bytes(), &info); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if info["version"] != version {
		t.Errorf("expected version %q, got %q", version, info["version"])
	}
}
