//go:build !linux

package borders

// usedRAMBytes falls back to a conservative static estimate on
// platforms where RSS introspection isn't wired (spec.md §9: "a
// conservative static estimate is acceptable when RSS is unavailable").
func usedRAMBytes() int64 {
	return staticRSSEstimate
}
