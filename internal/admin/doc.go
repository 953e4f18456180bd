// Package admin owns the control-plane admin request contract and the
// payload codecs routed under it.
//
// Ownership boundary:
// - admin API keys and the Request contract
// - the polymorphic delete request (one variant per removable resource)
// - the delete-key conversion contract each removable resource satisfies
// - the Status response returned for delete
package admin
