package cache_test

import (
	"fmt"
	"time"

	"github.com/matzehuels/mcp-registry/pkg/cache"
)

func ExampleExpiring() {
	c := cache.NewExpiring[string](5 * time.Minute)

	// Differently-cased or padded names share one slot.
	c.Set(cache.SearchKey("  GitHub "), "cached result")

	v, ok := c.Get(cache.SearchKey("github"))
	fmt.Println("Found:", ok)
	fmt.Println("Value:", v)
	// Output:
	// Found: true
	// Value: cached result
}

func ExampleExpiring_disabled() {
	c := cache.NewExpiring[string](time.Minute, cache.WithEnabled(false))
	c.Set("key", "value")

	_, ok := c.Get("key")
	fmt.Println("Found:", ok)
	// Output:
	// Found: false
}
