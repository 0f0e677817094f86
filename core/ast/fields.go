package ast

// Field is one key/value pair of a metadata map.
type Field struct {
	Key   string
	Value string
}

// Fields is an insertion-ordered string map. Setting an existing key
// replaces its value in place.
type Fields []Field

// Set adds or replaces key.
func (f *Fields) Set(key, value string) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (f Fields) Get(key string) (string, bool) {
	for _, kv := range f {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Len returns the number of entries.
func (f Fields) Len() int { return len(f) }
