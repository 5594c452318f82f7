// Package config loads runtime configuration for the emprende CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:8080",
//	  "request_timeout": "10s",
//	  "database_path": "session.db",
//	  "log_level": "debug",
//	  "log_format": "json",
//	  "documents_dir": "documents"
//	}
package config
