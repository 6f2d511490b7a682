// Package domain contains the core business entities for inkwell:
// extracted journal items, similarity scoring results, duplicate
// decisions, and the configuration surface. It has no dependencies on
// adapters or infrastructure.
package domain
