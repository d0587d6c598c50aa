/*
Package config loads scheduler and worker process configuration from
environment variables with sensible defaults, optionally overlaid by a
YAML file.
*/
package config
