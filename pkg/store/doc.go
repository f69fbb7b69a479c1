// Package store implements file-backed persistence for the three record
// collections the application keeps locally: send history, drafts, and
// templates. Each collection maps to one directory with one JSON file per
// record. There is no index and no locking: per-record files keep writers
// independent, and loads take whatever consistency the filesystem gives.
//
// Load degradation is deliberate: a corrupt record file is skipped and
// logged, never failing the whole listing.
package store
