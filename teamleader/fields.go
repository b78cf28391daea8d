package teamleader

import (
	"fmt"
	"net/url"
	"strconv"
)

// Fields is the flat payload sent as a form body to an endpoint. The
// remote API only understands scalar values; Clean normalizes a
// payload before transmission.
type Fields map[string]any

// CustomFields maps the numeric ID of an account-specific custom field
// to the value to set.
type CustomFields map[int]any

// Clean drops absent (nil) entries and coerces booleans to the
// integers 0/1, which is how the API represents flags. It mutates and
// returns the receiver.
func (f Fields) Clean() Fields {
	for key, value := range f {
		switch v := value.(type) {
		case nil:
			delete(f, key)
		case bool:
			if v {
				f[key] = 1
			} else {
				f[key] = 0
			}
		}
	}
	return f
}

// flattenCustomFields rewrites the nested custom_fields entry into
// sibling scalar fields named custom_field_<id> and removes the nested
// entry. Flattening a missing or empty mapping is a no-op.
func (f Fields) flattenCustomFields() {
	nested, ok := f["custom_fields"].(CustomFields)
	if ok {
		for id, value := range nested {
			f["custom_field_"+strconv.Itoa(id)] = value
		}
	}
	delete(f, "custom_fields")
}

// Values encodes the payload as form data.
func (f Fields) Values() url.Values {
	values := url.Values{}
	for key, value := range f {
		values.Set(key, scalarString(value))
	}
	return values
}

func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
