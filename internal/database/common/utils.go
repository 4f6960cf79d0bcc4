package common

import "strings"

// SplitStatements splits a SQL script on top-level semicolons. Line
// comments are dropped; semicolons inside quoted strings or quoted
// identifiers do not terminate a statement.
func SplitStatements(script string) []string {
	var (
		statements []string
		current    strings.Builder
		quote      rune
		inComment  bool
	)

	flush := func() {
		stmt := strings.TrimSpace(current.String())
		if stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	runes := []rune(script)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case inComment:
			if r == '\n' {
				inComment = false
				current.WriteRune(r)
			}
		case quote != 0:
			current.WriteRune(r)
			if r == quote {
				// doubled quote is an escaped quote
				if i+1 < len(runes) && runes[i+1] == quote {
					current.WriteRune(runes[i+1])
					i++
				} else {
					quote = 0
				}
			}
		case r == '-' && i+1 < len(runes) && runes[i+1] == '-':
			inComment = true
			i++
		case r == '\'' || r == '"' || r == '`':
			quote = r
			current.WriteRune(r)
		case r == ';':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return statements
}
