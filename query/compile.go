package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/datastax/table-data-apis/db"
)

var (
	ErrUnboundParameter   = errors.New("query parameter is not bound")
	ErrOffsetNotSupported = errors.New("first result is not supported by this dialect")
)

// Compile renders the query for the dialect, replacing every :name parameter with a
// positional placeholder and returning the values in placeholder order.
func (b *Builder) Compile(dialect db.Dialect) (string, []interface{}, error) {
	var sb strings.Builder
	b.writeBody(&sb)

	text, values, err := bindNamed(sb.String(), b.params, dialect)
	if err != nil {
		return "", nil, err
	}

	window, err := b.resultWindow(dialect)
	if err != nil {
		return "", nil, err
	}
	return text + window, values, nil
}

func (b *Builder) resultWindow(dialect db.Dialect) (string, error) {
	if b.firstResult > 0 && !dialect.SupportsOffset() {
		return "", ErrOffsetNotSupported
	}

	window := ""
	switch {
	case b.maxResults > 0:
		window = fmt.Sprintf(" LIMIT %d", b.maxResults)
	case b.firstResult > 0 && dialect == db.SQLite:
		// SQLite only accepts OFFSET after a LIMIT
		window = " LIMIT -1"
	}
	if b.firstResult > 0 {
		window += fmt.Sprintf(" OFFSET %d", b.firstResult)
	}
	return window, nil
}

// bindNamed walks the text once, skipping quoted literals and "::" casts.
func bindNamed(text string, params map[string]interface{}, dialect db.Dialect) (string, []interface{}, error) {
	var (
		sb       strings.Builder
		values   []interface{}
		inString bool
	)

	for i := 0; i < len(text); i++ {
		c := text[i]

		if c == '\'' {
			inString = !inString
			sb.WriteByte(c)
			continue
		}

		if inString || c != ':' {
			sb.WriteByte(c)
			continue
		}

		if i+1 < len(text) && text[i+1] == ':' {
			sb.WriteString("::")
			i++
			continue
		}

		end := i + 1
		for end < len(text) && isNameByte(text[end], end == i+1) {
			end++
		}
		if end == i+1 {
			sb.WriteByte(c)
			continue
		}

		name := text[i+1 : end]
		value, ok := params[name]
		if !ok {
			return "", nil, fmt.Errorf("%w: %s", ErrUnboundParameter, name)
		}
		values = append(values, value)
		sb.WriteString(dialect.Placeholder(len(values)))
		i = end - 1
	}

	return sb.String(), values, nil
}

func isNameByte(c byte, first bool) bool {
	switch {
	case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return !first
	}
	return false
}
