package cli

import (
	"runtime"
	"runtime/debug"
	"testing"
)

// stubBuildInfo points readBuildInfo at a fixed result for the duration of
// the test.
func stubBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	prev := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = prev })
}

func TestCurrentVersionInfo(t *testing.T) {
	tests := []struct {
		name string
		bi   *debug.BuildInfo
		ok   bool
		want versionInfo
	}{
		{
			name: "full build info",
			bi: &debug.BuildInfo{
				GoVersion: "go1.24.5",
				Main: debug.Module{
					Path:    "github.com/aidanlsb/magpie",
					Version: "v0.3.1",
				},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "1e9c2a4"},
					{Key: "vcs.time", Value: "2026-05-01T09:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
					{Key: "GOOS", Value: "openbsd"},
					{Key: "GOARCH", Value: "mips64"},
				},
			},
			ok: true,
			want: versionInfo{
				Version:    "v0.3.1",
				ModulePath: "github.com/aidanlsb/magpie",
				Commit:     "1e9c2a4",
				CommitTime: "2026-05-01T09:00:00Z",
				Modified:   true,
				GoVersion:  "go1.24.5",
				GOOS:       "openbsd",
				GOARCH:     "mips64",
			},
		},
		{
			name: "missing build info falls back to runtime",
			bi:   nil,
			ok:   false,
			want: versionInfo{
				Version:    "devel",
				ModulePath: defaultModulePath,
				GoVersion:  runtime.Version(),
				GOOS:       runtime.GOOS,
				GOARCH:     runtime.GOARCH,
			},
		},
		{
			name: "development version is normalized",
			bi: &debug.BuildInfo{
				Main: debug.Module{
					Path:    "github.com/aidanlsb/magpie",
					Version: "(devel)",
				},
			},
			ok: true,
			want: versionInfo{
				Version:    "devel",
				ModulePath: "github.com/aidanlsb/magpie",
				GoVersion:  runtime.Version(),
				GOOS:       runtime.GOOS,
				GOARCH:     runtime.GOARCH,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.bi, tt.ok)
			if got := currentVersionInfo(); got != tt.want {
				t.Fatalf("currentVersionInfo() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestVersionCommandJSONOutput(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.24.0",
		Main: debug.Module{
			Path:    "github.com/aidanlsb/magpie",
			Version: "(devel)",
		},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "f00dcafe"},
			{Key: "vcs.time", Value: "2026-05-01T09:00:00Z"},
			{Key: "vcs.modified", Value: "false"},
			{Key: "GOOS", Value: "linux"},
			{Key: "GOARCH", Value: "riscv64"},
		},
	}, true)

	prevJSON := jsonOutput
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = prevJSON })

	out := captureStdout(t, func() {
		if err := versionCmd.RunE(versionCmd, nil); err != nil {
			t.Fatalf("versionCmd.RunE: %v", err)
		}
	})

	var resp struct {
		OK   bool        `json:"ok"`
		Data versionInfo `json:"data"`
	}
	decodeEnvelope(t, out, &resp)
	if !resp.OK {
		t.Fatalf("ok = false, want true; output: %s", out)
	}
	want := versionInfo{
		Version:    "devel",
		ModulePath: "github.com/aidanlsb/magpie",
		Commit:     "f00dcafe",
		CommitTime: "2026-05-01T09:00:00Z",
		GoVersion:  "go1.24.0",
		GOOS:       "linux",
		GOARCH:     "riscv64",
	}
	if resp.Data != want {
		t.Fatalf("version payload = %+v, want %+v", resp.Data, want)
	}
}
