package texture

// Cache deduplicates texture uploads by file path. Mesh loading may
// reference the same map from several material libraries; each file is
// decoded and uploaded at most once.
type Cache struct {
	byPath map[string]*Texture2D
}

// NewCache creates an empty texture cache.
func NewCache() *Cache {
	return &Cache{byPath: make(map[string]*Texture2D)}
}

// Load returns the cached texture for path, uploading it on first use.
func (c *Cache) Load(path string) (*Texture2D, error) {
	if t, ok := c.byPath[path]; ok {
		return t, nil
	}
	t, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	c.byPath[path] = t
	return t, nil
}

// Len returns the number of cached textures.
func (c *Cache) Len() int { return len(c.byPath) }

// Destroy releases every cached texture.
func (c *Cache) Destroy() {
	for _, t := range c.byPath {
		t.Destroy()
	}
	c.byPath = make(map[string]*Texture2D)
}
