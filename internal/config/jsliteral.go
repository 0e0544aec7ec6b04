package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
)

// tokenKind classifies a lexical token of a JS object literal.
type tokenKind int

const (
	tokSpace tokenKind = iota
	tokString
	tokWord
	tokNumber
	tokPunct
)

type jsToken struct {
	kind tokenKind
	text string // for tokString: the decoded value
	line int
	col  int
}

// JSSyntaxError reports a lexical problem in a JS config file.
type JSSyntaxError struct {
	Line    int
	Col     int
	Message string
}

func (e *JSSyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Message)
}

// jsToCUE rewrites a static JS object literal exported from a config module
// into CUE source. Line structure is kept so CUE positions point at the
// original lines.
//
// Handled: comments, single-quoted and backtick strings, identifier and numeric keys,
// bare require('x') calls, "module.exports =" and "export default" and
// statement semicolons. Anything dynamic is passed through and rejected by
// the CUE compiler.
func jsToCUE(src []byte) ([]byte, error) {
	toks, err := lexJS(string(src))
	if err != nil {
		return nil, err
	}

	sig := significant(toks)
	drop := make(map[int]bool)
	replace := make(map[int]string)

	// Leading export statement.
	if len(sig) >= 4 &&
		toks[sig[0]].text == "module" && toks[sig[1]].text == "." &&
		toks[sig[2]].text == "exports" && toks[sig[3]].text == "=" {
		for _, i := range sig[:4] {
			drop[i] = true
		}
	} else if len(sig) >= 2 && toks[sig[0]].text == "export" && toks[sig[1]].text == "default" {
		drop[sig[0]] = true
		drop[sig[1]] = true
	}

	for n, i := range sig {
		tok := toks[i]
		switch {
		case tok.kind == tokPunct && tok.text == ";":
			drop[i] = true

		case tok.kind == tokWord && tok.text == "require" &&
			n+3 < len(sig) &&
			toks[sig[n+1]].text == "(" &&
			toks[sig[n+2]].kind == tokString &&
			toks[sig[n+3]].text == ")":
			drop[i] = true
			drop[sig[n+1]] = true
			drop[sig[n+3]] = true

		// Keys are always quoted: a bare _x label is a hidden field in CUE.
		case (tok.kind == tokNumber || tok.kind == tokWord) && n > 0 && n+1 < len(sig) &&
			(toks[sig[n-1]].text == "{" || toks[sig[n-1]].text == ",") &&
			toks[sig[n+1]].text == ":":
			replace[i] = quote(tok.text)
		}
	}

	var out bytes.Buffer
	for i, tok := range toks {
		if drop[i] {
			out.WriteString(blank(tok))
			continue
		}
		if r, ok := replace[i]; ok {
			out.WriteString(r)
			continue
		}
		if tok.kind == tokString {
			out.WriteString(quote(tok.text))
			continue
		}
		out.WriteString(tok.text)
	}
	return out.Bytes(), nil
}

// significant returns the indexes of non-whitespace tokens.
func significant(toks []jsToken) []int {
	idx := make([]int, 0, len(toks))
	for i, t := range toks {
		if t.kind != tokSpace {
			idx = append(idx, i)
		}
	}
	return idx
}

// blank returns whitespace occupying the same lines as tok.
func blank(tok jsToken) string {
	if tok.kind == tokString {
		return " "
	}
	return strings.Map(func(r rune) rune {
		if r == '\n' {
			return r
		}
		return ' '
	}, tok.text)
}

// quote encodes s as a double-quoted string CUE accepts.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

func lexJS(src string) ([]jsToken, error) {
	var toks []jsToken
	rs := []rune(src)
	line, col := 1, 1

	advance := func(r rune) {
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}

	for i := 0; i < len(rs); {
		r := rs[i]
		startLine, startCol := line, col

		switch {
		case r == '/' && i+1 < len(rs) && rs[i+1] == '/':
			var sb strings.Builder
			for i < len(rs) && rs[i] != '\n' {
				sb.WriteRune(' ')
				advance(rs[i])
				i++
			}
			toks = append(toks, jsToken{kind: tokSpace, text: sb.String(), line: startLine, col: startCol})

		case r == '/' && i+1 < len(rs) && rs[i+1] == '*':
			var sb strings.Builder
			closed := false
			for i < len(rs) {
				if rs[i] == '*' && i+1 < len(rs) && rs[i+1] == '/' {
					sb.WriteString("  ")
					advance(rs[i])
					advance(rs[i+1])
					i += 2
					closed = true
					break
				}
				if rs[i] == '\n' {
					sb.WriteRune('\n')
				} else {
					sb.WriteRune(' ')
				}
				advance(rs[i])
				i++
			}
			if !closed {
				return nil, &JSSyntaxError{Line: startLine, Col: startCol, Message: "unterminated block comment"}
			}
			toks = append(toks, jsToken{kind: tokSpace, text: sb.String(), line: startLine, col: startCol})

		case r == '"' || r == '\'' || r == '`':
			val, n, err := readJSString(rs[i:])
			if err != nil {
				return nil, &JSSyntaxError{Line: startLine, Col: startCol, Message: err.Error()}
			}
			for _, c := range rs[i : i+n] {
				advance(c)
			}
			i += n
			toks = append(toks, jsToken{kind: tokString, text: val, line: startLine, col: startCol})

		case unicode.IsSpace(r):
			j := i
			for j < len(rs) && unicode.IsSpace(rs[j]) {
				advance(rs[j])
				j++
			}
			toks = append(toks, jsToken{kind: tokSpace, text: string(rs[i:j]), line: startLine, col: startCol})
			i = j

		case unicode.IsDigit(r):
			j := i
			for j < len(rs) && (unicode.IsDigit(rs[j]) || unicode.IsLetter(rs[j]) || rs[j] == '.' || rs[j] == '_') {
				advance(rs[j])
				j++
			}
			toks = append(toks, jsToken{kind: tokNumber, text: string(rs[i:j]), line: startLine, col: startCol})
			i = j

		case isIdentRune(r):
			j := i
			for j < len(rs) && (isIdentRune(rs[j]) || unicode.IsDigit(rs[j])) {
				advance(rs[j])
				j++
			}
			toks = append(toks, jsToken{kind: tokWord, text: string(rs[i:j]), line: startLine, col: startCol})
			i = j

		default:
			advance(r)
			i++
			toks = append(toks, jsToken{kind: tokPunct, text: string(r), line: startLine, col: startCol})
		}
	}
	return toks, nil
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

// readJSString decodes the string literal at the start of rs and returns its
// value and the number of runes consumed.
func readJSString(rs []rune) (string, int, error) {
	q := rs[0]
	var sb strings.Builder

	for i := 1; i < len(rs); i++ {
		r := rs[i]
		switch {
		case r == q:
			return sb.String(), i + 1, nil
		case r == '\n' && q != '`':
			return "", 0, fmt.Errorf("unterminated string literal")
		case q == '`' && r == '$' && i+1 < len(rs) && rs[i+1] == '{':
			return "", 0, fmt.Errorf("template literal interpolation is not supported")
		case r == '\\':
			if i+1 >= len(rs) {
				return "", 0, fmt.Errorf("unterminated string literal")
			}
			i++
			switch e := rs[i]; e {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case 'r':
				sb.WriteRune('\r')
			case 'b':
				sb.WriteRune('\b')
			case 'f':
				sb.WriteRune('\f')
			case 'v':
				sb.WriteRune('\v')
			case '0':
				sb.WriteRune(0)
			case '\n':
				// line continuation
			case 'u':
				if i+4 >= len(rs) {
					return "", 0, fmt.Errorf("invalid unicode escape")
				}
				var code rune
				if _, err := fmt.Sscanf(string(rs[i+1:i+5]), "%04x", &code); err != nil {
					return "", 0, fmt.Errorf("invalid unicode escape")
				}
				sb.WriteRune(code)
				i += 4
			default:
				sb.WriteRune(e)
			}
		default:
			sb.WriteRune(r)
		}
	}
	return "", 0, fmt.Errorf("unterminated string literal")
}
