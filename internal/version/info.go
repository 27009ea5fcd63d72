// Package version reports the arbctl build.
package version

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Set at build time:
//
//	-X github.com/altuslabsxyz/arbctl/internal/version.Version={{.Version}}
//	-X github.com/altuslabsxyz/arbctl/internal/version.GitCommit={{.FullCommit}}
//	-X github.com/altuslabsxyz/arbctl/internal/version.BuildDate={{.Date}}
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info describes the running binary.
type Info struct {
	Version   string   `json:"version" yaml:"version"`
	GitCommit string   `json:"commit" yaml:"commit"`
	BuildDate string   `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	GoVersion string   `json:"go" yaml:"go"`
	SDK       string   `json:"cosmos_sdk,omitempty" yaml:"cosmos_sdk,omitempty"`
	BuildDeps []string `json:"build_deps,omitempty" yaml:"build_deps,omitempty"`
}

// NewInfo returns the build information of the running binary.
func NewInfo() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, dep := range bi.Deps {
			if dep.Path == "github.com/cosmos/cosmos-sdk" {
				info.SDK = dep.Version
			}
		}
	}
	return info
}

// WithBuildDeps adds every module the binary was linked with, sorted.
func (i Info) WithBuildDeps() Info {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return i
	}

	deps := make([]string, 0, len(bi.Deps))
	for _, dep := range bi.Deps {
		if dep.Replace != nil {
			deps = append(deps, fmt.Sprintf("%s@%s => %s@%s", dep.Path, dep.Version, dep.Replace.Path, dep.Replace.Version))
			continue
		}
		deps = append(deps, dep.Path+"@"+dep.Version)
	}
	sort.Strings(deps)
	i.BuildDeps = deps
	return i
}

func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "arbctl %s\n", i.Version)
	fmt.Fprintf(&sb, "  commit:     %s\n", i.GitCommit)
	fmt.Fprintf(&sb, "  build date: %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "  go:         %s\n", i.GoVersion)
	if i.SDK != "" {
		fmt.Fprintf(&sb, "  cosmos-sdk: %s\n", i.SDK)
	}
	return sb.String()
}

// Write prints i in the requested format: "text", "yaml" or "json".
func (i Info) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		_, err := io.WriteString(w, i.String())
		return err
	case "yaml":
		data, err := yaml.Marshal(i)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(i, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	default:
		return fmt.Errorf("unknown format %q (text|yaml|json)", format)
	}
}

// NewCmd creates the version command.
func NewCmd() *cobra.Command {
	var (
		long   bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print version information. Use --long to list the modules the binary was built with.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := NewInfo()
			if long {
				info = info.WithBuildDeps()
				if format == "" || format == "text" {
					format = "yaml"
				}
			}
			return info.Write(cmd.OutOrStdout(), format)
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Include build dependencies")
	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format (text|yaml|json)")

	return cmd
}
