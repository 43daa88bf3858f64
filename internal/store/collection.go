package store

// Collection is an ordered, identity-indexed list of entities. It is
// immutable: every mutator returns a new Collection and leaves the receiver
// untouched, so snapshots handed to subscribers never change under them.
type Collection[T any] struct {
	order []string
	byID  map[string]T
}

// NewCollection builds a collection from items in display order. Later
// duplicates replace earlier ones but keep the first position.
func NewCollection[T any](items []T, key func(T) string) Collection[T] {
	c := Collection[T]{
		order: make([]string, 0, len(items)),
		byID:  make(map[string]T, len(items)),
	}
	for _, it := range items {
		id := key(it)
		if _, dup := c.byID[id]; !dup {
			c.order = append(c.order, id)
		}
		c.byID[id] = it
	}
	return c
}

// Len returns the number of entities.
func (c Collection[T]) Len() int { return len(c.order) }

// Items returns the entities in display order.
func (c Collection[T]) Items() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// IDs returns the entity ids in display order.
func (c Collection[T]) IDs() []string {
	return append([]string(nil), c.order...)
}

// Get looks an entity up by id.
func (c Collection[T]) Get(id string) (T, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Has reports whether id is present.
func (c Collection[T]) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Replace swaps the entity with the given id in place. An absent id is a
// no-op and ok is false.
func (c Collection[T]) Replace(id string, item T) (Collection[T], bool) {
	if !c.Has(id) {
		return c, false
	}
	next := c.cloneMap()
	next.byID[id] = item
	return next, true
}

// Update applies fn to the entity with the given id. An absent id is a no-op.
func (c Collection[T]) Update(id string, fn func(T) T) (Collection[T], bool) {
	it, ok := c.byID[id]
	if !ok {
		return c, false
	}
	return c.Replace(id, fn(it))
}

// Append merges items at the end; items already present are replaced in place.
func (c Collection[T]) Append(items []T, key func(T) string) Collection[T] {
	next := c.cloneAll()
	for _, it := range items {
		id := key(it)
		if _, ok := next.byID[id]; !ok {
			next.order = append(next.order, id)
		}
		next.byID[id] = it
	}
	return next
}

// Prepend puts item first, moving it there if already present.
func (c Collection[T]) Prepend(item T, key func(T) string) Collection[T] {
	id := key(item)
	next := c.cloneMap()
	order := make([]string, 0, len(c.order)+1)
	order = append(order, id)
	for _, existing := range c.order {
		if existing != id {
			order = append(order, existing)
		}
	}
	next.order = order
	next.byID[id] = item
	return next
}

// Map applies fn to every entity.
func (c Collection[T]) Map(fn func(T) T) Collection[T] {
	next := c.cloneAll()
	for id, it := range next.byID {
		next.byID[id] = fn(it)
	}
	return next
}

func (c Collection[T]) cloneMap() Collection[T] {
	m := make(map[string]T, len(c.byID)+1)
	for k, v := range c.byID {
		m[k] = v
	}
	return Collection[T]{order: c.order, byID: m}
}

func (c Collection[T]) cloneAll() Collection[T] {
	next := c.cloneMap()
	next.order = append([]string(nil), c.order...)
	return next
}
