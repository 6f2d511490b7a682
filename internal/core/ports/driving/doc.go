// Package driving provides interfaces for use-case entry points (primary/inbound ports).
package driving
