// Package services implements the duplicate detection engine and the
// low-confidence review workflow: the availability-memoized embedding
// provider, the persistent embedding cache, the similarity scorer with
// lexical fallback, the duplicate detector, the review session state
// machine, and the upload coordinator that ties them together.
package services
