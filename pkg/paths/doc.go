// Package paths resolves the two kinds of paths dotlink deals with: logical
// source paths, which live under the managed source root, and logical target
// paths, which may use home shorthands (~, $HOME) and land in the user's
// home directory.
//
// The source root is always passed in explicitly. FindSourceRoot is the only
// function that reads process state to discover it, and it is called by the
// CLI, never by the installers.
package paths
