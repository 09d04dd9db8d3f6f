package metaobj

// Caches memoizes per-function and per-type encoded fragments across
// builds (§4.5). It is not internally synchronized; a driver sharing one
// across parallel module builds must serialize access (§5).
type Caches struct {
	functions map[string]string
	types     map[string]string

	Hits   int
	Misses int
}

// NewCaches builds an empty cache set.
func NewCaches() *Caches {
	return &Caches{
		functions: make(map[string]string),
		types:     make(map[string]string),
	}
}

// Function returns the memoized fragment for a function, building it on
// first use.
func (c *Caches) Function(name string, build func() string) string {
	if c == nil {
		return build()
	}
	if frag, ok := c.functions[name]; ok {
		c.Hits++
		return frag
	}
	c.Misses++
	frag := build()
	c.functions[name] = frag
	return frag
}

// Type returns the memoized fragment for a type, building it on first use.
func (c *Caches) Type(name string, build func() string) string {
	if c == nil {
		return build()
	}
	if frag, ok := c.types[name]; ok {
		c.Hits++
		return frag
	}
	c.Misses++
	frag := build()
	c.types[name] = frag
	return frag
}
