package query

import "net/url"

// MergeQuery merges a set of changes over the current query parameters and
// returns the canonical query-string form used for list navigation. Any
// key whose final value is empty is dropped entirely, so filters are
// cleared by setting them to "". Last write wins per key; merging is
// associative, and merging an empty change set over an empty query yields
// the empty string (a reset navigates to the bare path).
func MergeQuery(current url.Values, changes map[string]string) string {
	merged := url.Values{}
	for key := range current {
		if v := current.Get(key); v != "" {
			merged.Set(key, v)
		}
	}
	for key, value := range changes {
		if value == "" {
			merged.Del(key)
		} else {
			merged.Set(key, value)
		}
	}
	return merged.Encode()
}
