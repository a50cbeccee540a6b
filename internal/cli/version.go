package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/magpie/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/magpie"

// versionInfo is the version command's payload, assembled from the
// binary's embedded module build info with -ldflags values as fallback.
type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

// Stubbed in tests.
var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show Magpie version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("magpie %s\n", info.Version)
		for _, row := range [][2]string{
			{"module", info.ModulePath},
			{"commit", info.Commit},
			{"commit_time", info.CommitTime},
			{"go", info.GoVersion},
			{"platform", info.GOOS + "/" + info.GOARCH},
			{"modified", strconv.FormatBool(info.Modified)},
		} {
			if row[1] != "" {
				fmt.Printf("%s: %s\n", row[0], row[1])
			}
		}
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		info.Version = normalizeVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}

		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		if v := settings["GOOS"]; v != "" {
			info.GOOS = v
		}
		if v := settings["GOARCH"]; v != "" {
			info.GOARCH = v
		}
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	// Release builds inject metadata with -ldflags; it fills any gaps the
	// module build info left.
	if info.Version == "devel" {
		if v := buildinfo.Version; v != "" {
			info.Version = normalizeVersion(v)
		}
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildinfo.Date
	}
	return info
}

func normalizeVersion(v string) string {
	if v == "" || v == "(devel)" {
		return "devel"
	}
	return v
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
