// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources. For every field the
// first source that sets a non-zero value wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path from CONFIG or -c/-config)
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the API server and
// [GetStorageConfig] for tools that only touch storage.
package config
