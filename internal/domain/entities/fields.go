package entities

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Fields holds the members of a record that have no typed field. They are
// kept verbatim so a rewrite of the collection never drops them.
type Fields map[string]json.RawMessage

var (
	serviceKeys = []string{"id", "icon", "title", "description"}
	blogKeys    = []string{"id", "title", "excerpt", "author", "date", "image", "starred"}
)

// splitObject decodes data into typed and collects the remaining members.
// The returned map is nil when every member is typed.
func splitObject(data []byte, typed interface{}, known []string) (Fields, map[string]json.RawMessage, error) {
	if err := json.Unmarshal(data, typed); err != nil {
		return nil, nil, err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, nil, err
	}

	var extra Fields
	for key, value := range members {
		if contains(known, key) {
			continue
		}
		if extra == nil {
			extra = Fields{}
		}
		extra[key] = value
	}
	return extra, members, nil
}

// joinObject encodes typed and appends the extra members in key order.
// Members already present in typed win over extras of the same name.
func joinObject(typed interface{}, known []string, extra Fields) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(typed); err != nil {
		return nil, err
	}
	base := bytes.TrimSpace(buf.Bytes())
	if len(extra) == 0 {
		return base, nil
	}

	keys := make([]string, 0, len(extra))
	for key := range extra {
		if !contains(known, key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return base, nil
	}

	out := bytes.NewBuffer(make([]byte, 0, len(base)+64))
	out.Write(base[:len(base)-1])
	empty := len(bytes.TrimSpace(base[1:len(base)-1])) == 0
	for i, key := range keys {
		if i > 0 || !empty {
			out.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		out.Write(name)
		out.WriteByte(':')
		value := extra[key]
		if len(value) == 0 {
			value = json.RawMessage("null")
		}
		out.Write(value)
	}
	out.WriteByte('}')
	return out.Bytes(), nil
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

func (f Fields) clone() Fields {
	if len(f) == 0 {
		return nil
	}
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}
