// Package utils provides helpers shared by the sqtree packages: logging,
// version lookup and path normalization.
package utils

import (
	"os/exec"
	"runtime/debug"
	"strings"
)

const (
	unknownVersion     = "unknown"
	develBuildVersion  = "(devel)"
	gitExecutableName  = "git"
	gitDescribeCommand = "describe"
)

// GetApplicationVersion reports the module version recorded in the build
// information, falling back to git describe when running from a checkout.
func GetApplicationVersion() string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develBuildVersion {
		return buildInfo.Main.Version
	}
	for _, describeArguments := range [][]string{
		{gitDescribeCommand, "--tags", "--exact-match"},
		{gitDescribeCommand, "--tags", "--long", "--dirty"},
	} {
		// #nosec G204
		describeOutput, describeError := exec.Command(gitExecutableName, describeArguments...).Output()
		if describeError == nil && len(describeOutput) > 0 {
			return strings.TrimSpace(string(describeOutput))
		}
	}
	return unknownVersion
}
