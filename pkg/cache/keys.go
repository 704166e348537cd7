package cache

import "strings"

// Key prefixes for each registry query kind.
const (
	PrefixSearch       = "search:"
	PrefixServer       = "server:"
	PrefixServerByName = "server_by_name:"
)

// SearchKey returns the cache key for a search by name. Names are lower-cased
// and trimmed so that "  GitHub " and "github" share a slot.
func SearchKey(name string) string {
	return PrefixSearch + normalize(name)
}

// ServerKey returns the cache key for a lookup by server id.
// Ids are opaque and used as-is.
func ServerKey(id string) string {
	return PrefixServer + id
}

// ServerByNameKey returns the cache key for a lookup by server name.
func ServerByNameKey(name string) string {
	return PrefixServerByName + normalize(name)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
