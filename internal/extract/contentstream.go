package extract

import (
	"fmt"
	"io"
	"strings"
)

// decodeContentStreamText pulls the literal strings shown by Tj, TJ, ' and "
// operators out of a decoded page content stream. This deliberately ignores
// font encodings and hex strings; it is a fallback for documents whose text
// is plain WinAnsi, which covers the labor-document templates in practice.
func decodeContentStreamText(content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read content stream: %w", err)
	}

	var out strings.Builder
	var pending []string

	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '(':
			literal, next := parseStringLiteral(data, i)
			pending = append(pending, literal)
			i = next
		case 'T':
			if i+1 < len(data) && (data[i+1] == 'j' || data[i+1] == 'J') {
				flushShownText(&out, &pending)
				i++
			}
		case '\'', '"':
			flushShownText(&out, &pending)
		}
	}

	return out.String(), nil
}

func flushShownText(out *strings.Builder, pending *[]string) {
	for _, s := range *pending {
		out.WriteString(s)
	}
	if len(*pending) > 0 {
		out.WriteByte('\n')
	}
	*pending = (*pending)[:0]
}

// parseStringLiteral consumes a PDF literal string starting at the opening
// parenthesis and returns its unescaped value plus the index of the closing
// parenthesis. Balanced unescaped parentheses inside the literal are legal.
func parseStringLiteral(data []byte, start int) (string, int) {
	var sb strings.Builder
	depth := 1
	i := start + 1
	for ; i < len(data); i++ {
		c := data[i]
		switch c {
		case '\\':
			if i+1 >= len(data) {
				return sb.String(), i
			}
			i++
			switch data[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case 'b', 'f':
				// rarely meaningful in extracted text, drop
			case '(', ')', '\\':
				sb.WriteByte(data[i])
			case '0', '1', '2', '3', '4', '5', '6', '7':
				val := int(data[i] - '0')
				for n := 0; n < 2 && i+1 < len(data) && data[i+1] >= '0' && data[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(data[i]-'0')
				}
				sb.WriteByte(byte(val))
			default:
				sb.WriteByte(data[i])
			}
		case '(':
			depth++
			sb.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return sb.String(), i
			}
			sb.WriteByte(c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String(), i - 1
}
