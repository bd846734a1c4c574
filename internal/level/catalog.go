package level

// Source is where rounds look levels up: the Postgres store in production,
// an in-memory catalogue when running from level files.
type Source interface {
	List() ([]Summary, error)
	Get(id string) (*Level, error)
}

// Catalog is a read-only, in-memory Source.
type Catalog struct {
	byID  map[string]*Level
	order []Summary
}

func NewCatalog(levels []*Level) *Catalog {
	c := &Catalog{byID: make(map[string]*Level, len(levels))}
	for _, l := range levels {
		c.byID[l.ID] = l
		c.order = append(c.order, l.Summary())
	}
	return c
}

func (c *Catalog) List() ([]Summary, error) {
	out := make([]Summary, len(c.order))
	copy(out, c.order)
	return out, nil
}

func (c *Catalog) Get(id string) (*Level, error) {
	l, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return l, nil
}
