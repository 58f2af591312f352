// Package config provides configuration loading, merging, and validation
// for the go-life-keeper server and client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// The entry points are [GetServerConfig] and [GetClientConfig]; both apply
// defaults for unset fields and validate the resulting view.
package config
