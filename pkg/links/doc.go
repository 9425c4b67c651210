// Package links defines the link value types shared by models and renderers.
// Links are immutable values: every With* helper and expansion returns a copy.
// Relations are plain case-sensitive strings; Self is the well-known "self".
package links
