package shader

import (
	"sort"
	"strings"
)

// Defs are the shader definitions a source is specialized with. A present key
// satisfies #ifdef; its value is substituted for #{KEY}.
type Defs map[string]string

// Has reports whether name is defined.
func (d Defs) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Set defines name with an empty value and returns d.
func (d Defs) Set(name string) Defs {
	d[name] = ""
	return d
}

// Clone returns a copy that can be extended without touching d.
func (d Defs) Clone() Defs {
	out := make(Defs, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// String renders the definitions sorted by name, for labels and cache keys.
func (d Defs) String() string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		if v := d[k]; v != "" {
			parts[i] = k + "=" + v
		} else {
			parts[i] = k
		}
	}
	return strings.Join(parts, ",")
}
