// Package portfolio provides the content layer of the portfolio site.
//
// It exposes a Provider that queries a pluggable Source for photo and video
// project entries, parses them into typed records, and normalizes every
// asset path into an absolute https URL. Sources for Contentful, Postgres
// and in-memory entries are provided under source/; read-only asset stores
// for locally hosted media live under storage/.
//
// Fallback Policy
//
// A failing per-type query yields an empty collection. A failure of the
// concurrent pair, or a source without credentials, yields MockBundle. No
// Provider operation returns an error to its caller.
package portfolio
