// Package common keeps enums shared by configuration and command line
// handling, so neither has to import the other.
package common

//go:generate go tool go-enum --marshal --names --nocase -f=$GOFILE

// Specification of requested build output format.
// ENUM(text, json, yaml, tree)
type OutputFormat int
