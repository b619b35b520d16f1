package lang

import (
	"strings"
	"sync"
)

// Keyword is an interned (namespace, name) pair.
//
// Two keywords with the same namespace and name are always the same pointer,
// so keywords are compared with ==. Use Intern or K to obtain one; never
// construct a Keyword literal.
type Keyword struct {
	ns   string
	name string
}

type keywordKey struct{ ns, name string }

var keywords sync.Map // keywordKey -> *Keyword

// Intern returns the unique keyword for ns and name.
// Safe for concurrent use.
func Intern(ns, name string) *Keyword {
	key := keywordKey{ns: ns, name: name}
	if kw, ok := keywords.Load(key); ok {
		return kw.(*Keyword)
	}
	kw, _ := keywords.LoadOrStore(key, &Keyword{ns: ns, name: name})
	return kw.(*Keyword)
}

// K returns the unique keyword with no namespace.
func K(name string) *Keyword {
	return Intern("", name)
}

// ParseKeyword interns a keyword from its printed text (":ns/name" or ":name").
// The leading colon is optional.
func ParseKeyword(s string) *Keyword {
	s = strings.TrimPrefix(s, ":")
	if i := strings.Index(s, "/"); i > 0 && i < len(s)-1 {
		return Intern(s[:i], s[i+1:])
	}
	return K(s)
}

// Namespace returns the keyword namespace, or "" if it has none.
func (k *Keyword) Namespace() string { return k.ns }

// Name returns the keyword name.
func (k *Keyword) Name() string { return k.name }

// String prints the keyword the way the reader would read it back.
func (k *Keyword) String() string {
	if k.ns != "" {
		return ":" + k.ns + "/" + k.name
	}
	return ":" + k.name
}
