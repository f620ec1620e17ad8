package chronopay

import "net/url"

// Fields is an ordered name/value collection. Lookups of absent names yield
// the empty string, which the gateway's signing rules rely on.
type Fields struct {
	keys   []string
	values map[string]string
}

func NewFields() *Fields {
	return &Fields{values: make(map[string]string)}
}

// FieldsFromForm copies the first value of every key in form.
func FieldsFromForm(form url.Values) *Fields {
	f := NewFields()
	for k := range form {
		f.Add(k, form.Get(k))
	}
	return f
}

// Add sets name to value. A name keeps the position of its first insertion.
func (f *Fields) Add(name, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, ok := f.values[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.values[name] = value
}

func (f *Fields) Get(name string) string {
	if f == nil {
		return ""
	}
	return f.values[name]
}

func (f *Fields) Has(name string) bool {
	if f == nil {
		return false
	}
	_, ok := f.values[name]
	return ok
}

// Keys returns the field names in insertion order.
func (f *Fields) Keys() []string {
	if f == nil {
		return nil
	}
	out := make([]string, len(f.keys))
	copy(out, f.keys)
	return out
}

func (f *Fields) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Map returns an unordered copy, suitable for JSON auditing.
func (f *Fields) Map() map[string]string {
	out := make(map[string]string, f.Len())
	for _, k := range f.Keys() {
		out[k] = f.values[k]
	}
	return out
}
