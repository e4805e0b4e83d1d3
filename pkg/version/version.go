// Package version exposes build metadata for the binaries built on this module.
package version

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const versionDefault = "dev"

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/conch/pkg/version.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Info is the build metadata of a binary.
type Info struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
}

// String returns "v<version>".
func (i Info) String() string {
	return "v" + strings.TrimPrefix(i.Version, "v")
}

// Get returns the ldflags-injected build info.
func Get() Info {
	return Info{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// IsDev reports whether the binary was built without a version.
func (i Info) IsDev() bool {
	return i.Version == "" || i.Version == versionDefault
}

// FromManifest reads the name and version fields of a project manifest such as
// deno.json, package.json or a YAML file. JSON manifests parse as YAML.
func FromManifest(path string) (Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	var m struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Info{}, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	if m.Version == "" {
		return Info{}, fmt.Errorf("manifest %q has no version", path)
	}

	return Info{Name: m.Name, Version: m.Version}, nil
}

// Resolve returns the build info, falling back to the manifest at path when
// the binary carries no version. Commit and date are kept from the build.
func Resolve(path string) Info {
	info := Get()
	if !info.IsDev() || path == "" {
		return info
	}
	m, err := FromManifest(path)
	if err != nil {
		return info
	}
	info.Name = m.Name
	info.Version = m.Version
	return info
}
