package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// StringArray maps a Go string slice to a PostgreSQL text[] column using the
// array literal format ({a,"b c"}).
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "{}", nil
	}
	var b strings.Builder
	b.WriteByte('{')
	for i, s := range a {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		for _, r := range s {
			if r == '"' || r == '\\' {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('"')
	}
	b.WriteByte('}')
	return b.String(), nil
}

func (a *StringArray) Scan(value interface{}) error {
	if a == nil {
		return fmt.Errorf("models.StringArray: Scan on nil pointer")
	}

	var raw string
	switch v := value.(type) {
	case nil:
		*a = StringArray{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	case []string:
		*a = append(StringArray{}, v...)
		return nil
	default:
		return fmt.Errorf("models.StringArray: unsupported Scan type %T", value)
	}

	out, err := parseArrayLiteral(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	*a = out
	return nil
}

func parseArrayLiteral(raw string) (StringArray, error) {
	if len(raw) < 2 || raw[0] != '{' || raw[len(raw)-1] != '}' {
		return nil, fmt.Errorf("models.StringArray: malformed array literal %q", raw)
	}
	body := raw[1 : len(raw)-1]
	out := StringArray{}
	if body == "" {
		return out, nil
	}

	var (
		cur     strings.Builder
		quoted  bool
		inQuote bool
		escaped bool
	)
	flush := func() {
		elem := cur.String()
		if !quoted && strings.EqualFold(elem, "NULL") {
			elem = ""
		}
		out = append(out, elem)
		cur.Reset()
		quoted = false
	}
	for i := 0; i < len(body); i++ {
		ch := body[i]
		switch {
		case escaped:
			cur.WriteByte(ch)
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '"':
			inQuote = !inQuote
			quoted = true
		case ch == ',' && !inQuote:
			flush()
		default:
			cur.WriteByte(ch)
		}
	}
	if inQuote || escaped {
		return nil, fmt.Errorf("models.StringArray: unterminated array literal %q", raw)
	}
	flush()
	return out, nil
}
