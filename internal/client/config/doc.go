// Package config loads runtime configuration for the TaskFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c/-config or $TASKFLOW_CONFIG.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the TaskFlow gRPC endpoint
//	-i int      online status check interval (seconds)
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "online_check_interval": "10s",
//	  "request_timeout": "5s"
//	}
package config
