// SPDX-License-Identifier: MPL-2.0

// Package config handles jmodpath configuration using Viper with CUE as the
// file format.
//
// Configuration is loaded from ~/.config/jmodpath/config.cue (or the XDG
// equivalent on Linux, ~/Library/Application Support/jmodpath/config.cue on
// macOS, %APPDATA%\jmodpath\config.cue on Windows), or from an explicit file.
// Files are validated against the embedded config_schema.cue before being
// merged over the defaults. JMODPATH_* environment variables override both.
package config
