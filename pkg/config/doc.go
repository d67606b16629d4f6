// Package config loads dotlink's configuration.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. the embedded defaults (embedded/defaults.toml)
//  2. the first config file found: an explicit path, else dotlink.toml,
//     .dotlink.toml, dotlink.yaml or dotlink.yml in the dotfiles root, else
//     $XDG_CONFIG_HOME/dotlink/config.toml
//  3. DOTLINK_ environment variables, "__" separating nested keys
//  4. overrides from command-line flags
//
// Keys are delimited by "::" rather than "." because link targets such as
// "~/.vimrc" are themselves map keys.
package config
