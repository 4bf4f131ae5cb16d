package predicate

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// Cache memoizes compiled predicates keyed by their source text. The join
// order search asks about the same handful of predicates for every candidate
// pair, so parsing once pays off. Failed parses are not cached.
type Cache struct {
	m *xsync.MapOf[string, *Predicate]
}

func NewCache() *Cache {
	return &Cache{
		m: xsync.NewMapOf[string, *Predicate](),
	}
}

func (self *Cache) Parse(text string) (*Predicate, error) {
	if p, ok := self.m.Load(text); ok {
		return p, nil
	}
	p, err := Parse(text)
	if err != nil {
		return nil, err
	}
	actual, _ := self.m.LoadOrStore(text, p)
	return actual, nil
}

// ParseAll compiles a list of predicates, fails on the first bad one
func (self *Cache) ParseAll(text []string) ([]*Predicate, error) {
	out := make([]*Predicate, 0, len(text))
	for _, t := range text {
		p, err := self.Parse(t)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (self *Cache) Len() int { return self.m.Size() }
