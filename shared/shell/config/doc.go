// Package config loads the bookswap configuration from a YAML file plus environment
// overrides and builds the database connections and the event store engine from it.
package config
