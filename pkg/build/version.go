package build

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime/debug"
)

var (
	// version is the built version.
	// Set with ldflags via -ldflags="-X github.com/did-coop/wasupdoc/pkg/build.version=v{{.Version}}".
	version string
	// Version returns the current version of wasupdoc
	Version string
)

const (
	defaultVersion string = "v0.0.0"       // Default version if not set by ldflags
	versionFile    string = "version.json" // Version file path
)

func init() {
	if version == "" {
		// This is being ran in development, try to grab the latest known version from the version.json file
		var err error
		version, err = readVersionFromFile(versionFile)
		if err != nil {
			// Use the default version
			version = defaultVersion
		}
	}

	Version = version
	if rev := revision(); rev != "" {
		Version = fmt.Sprintf("%s-%s", version, rev)
	}
}

// revision returns the short VCS revision the binary was built from, if the
// toolchain recorded one.
func revision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 7 {
				return s.Value[:7]
			}
			return s.Value
		}
	}
	return ""
}

// versionJson is used to read the local version.json file
type versionJSON struct {
	Version string `json:"version"`
}

// readVersionFromFile reads the version from the version.json file.
func readVersionFromFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var vJSON versionJSON
	if err := json.NewDecoder(file).Decode(&vJSON); err != nil {
		return "", err
	}
	if vJSON.Version == "" {
		return "", fmt.Errorf("no version in %s", path)
	}
	return vJSON.Version, nil
}
