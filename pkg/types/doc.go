// Package types defines the core types and interfaces shared by dotlink's
// installers. This includes the FS abstraction, the resolved install
// configuration (LinkSpec, ShellCommand, InstallConfig), the tunable Policy
// and the Clock used by time-dependent ownership heuristics.
package types
