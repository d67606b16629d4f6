// Package install runs a full dotlink installation from a resolved
// InstallConfig.
//
// A run has three sequential phases:
//
//  1. Directories are created (existing ones are left alone).
//  2. Every link is routed either to the sourceable merger (shell rc files)
//     or to the symlink installer, in target order.
//  3. Post-install shell commands are handed to a CommandRunner.
//
// A failure in one target never stops the run. The returned Summary records
// the outcome and error code of every directory, link and command.
//
// Plan performs the classification and decision steps of phase 2 without
// mutating anything; it backs the status command.
package install
