package manifest

import (
	"errors"
	"regexp"
	"strings"
)

// The editor rewrites manifest source text line by line. Only the lines that
// carry the edited value change; comments, ordering, blank lines and every
// other key keep their exact bytes.

var (
	tableHeaderRe = regexp.MustCompile(`^\s*\[\s*([^\[\]]+?)\s*\]\s*(?:#.*)?$`)
	arrayHeaderRe = regexp.MustCompile(`^\s*\[\[\s*([^\[\]]+?)\s*\]\]\s*(?:#.*)?$`)
	keyLineRe     = regexp.MustCompile(`^(\s*)([A-Za-z0-9_-]+|"[^"]*"|'[^']*')(\s*=\s*)(.*)$`)
	dottedKeyRe   = regexp.MustCompile(`^\s*([A-Za-z0-9_-]+)\s*\.`)
	stringLitRe   = regexp.MustCompile(`^("(?:[^"\\]|\\.)*"|'[^']*')(.*)$`)
)

type lineKind int

const (
	kindOther lineKind = iota
	kindHeader
	kindKey
	kindContinuation // inside a multi-line string or array
)

type sourceLine struct {
	text    string // line including its ending
	kind    lineKind
	section string // normalized header name, set for kindHeader
}

type source struct {
	lines []sourceLine
	eol   string
}

// keyLine is a parsed "key = value" line.
type keyLine struct {
	indent string
	rawKey string
	key    string
	sep    string
	rest   string
	eol    string
}

type section struct {
	name       string
	start, end int // body lines [start, end)
}

func newSource(data []byte) *source {
	s := &source{eol: "\n"}
	if strings.Contains(string(data), "\r\n") {
		s.eol = "\r\n"
	}
	parts := strings.SplitAfter(string(data), "\n")
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}

	inMultiline := false
	depth := 0
	for _, text := range parts {
		body, _ := splitEOL(text)
		ln := sourceLine{text: text}
		switch {
		case inMultiline:
			ln.kind = kindContinuation
			if tripleQuotes(body)%2 == 1 {
				inMultiline = false
			}
		case depth > 0:
			ln.kind = kindContinuation
			depth += bracketDelta(body)
		case arrayHeaderRe.MatchString(body):
			ln.kind = kindHeader
			ln.section = "[[" + normalizeName(arrayHeaderRe.FindStringSubmatch(body)[1]) + "]]"
		case tableHeaderRe.MatchString(body):
			ln.kind = kindHeader
			ln.section = normalizeName(tableHeaderRe.FindStringSubmatch(body)[1])
		case keyLineRe.MatchString(body) || dottedKeyRe.MatchString(body):
			ln.kind = kindKey
			rest := body
			if m := keyLineRe.FindStringSubmatch(body); m != nil {
				rest = m[4]
			}
			if tripleQuotes(rest)%2 == 1 {
				inMultiline = true
			} else {
				depth += bracketDelta(rest)
			}
		}
		s.lines = append(s.lines, ln)
	}
	return s
}

func (s *source) bytes() []byte {
	var b strings.Builder
	for _, l := range s.lines {
		b.WriteString(l.text)
	}
	return []byte(b.String())
}

// section returns the first table with the given normalized name.
func (s *source) section(name string) (section, bool) {
	for i, l := range s.lines {
		if l.kind != kindHeader || l.section != name {
			continue
		}
		end := len(s.lines)
		for j := i + 1; j < len(s.lines); j++ {
			if s.lines[j].kind == kindHeader {
				end = j
				break
			}
		}
		return section{name: name, start: i + 1, end: end}, true
	}
	return section{}, false
}

func (s *source) keyLine(i int) (keyLine, bool) {
	if s.lines[i].kind != kindKey {
		return keyLine{}, false
	}
	body, eol := splitEOL(s.lines[i].text)
	m := keyLineRe.FindStringSubmatch(body)
	if m == nil {
		return keyLine{}, false
	}
	return keyLine{
		indent: m[1],
		rawKey: m[2],
		key:    unquote(m[2]),
		sep:    m[3],
		rest:   m[4],
		eol:    eol,
	}, true
}

func (s *source) set(i int, text string) {
	s.lines[i] = sourceLine{text: text, kind: kindKey}
}

func (s *source) insert(i int, text string) {
	if i > 0 && i == len(s.lines) {
		if _, eol := splitEOL(s.lines[i-1].text); eol == "" {
			s.lines[i-1].text += s.eol
		}
	}
	s.lines = append(s.lines, sourceLine{})
	copy(s.lines[i+1:], s.lines[i:])
	s.lines[i] = sourceLine{text: text, kind: kindKey}
}

func (s *source) remove(i int) {
	s.lines = append(s.lines[:i], s.lines[i+1:]...)
}

// editVersion sets package.version to v.
func editVersion(path string, data []byte, v string) ([]byte, error) {
	s := newSource(data)
	sec, ok := s.section("package")
	if !ok {
		return nil, missing(path, "[package] table")
	}
	for i := sec.start; i < sec.end; i++ {
		if s.lines[i].kind != kindKey {
			continue
		}
		body, _ := splitEOL(s.lines[i].text)
		if m := dottedKeyRe.FindStringSubmatch(body); m != nil && m[1] == "version" {
			return nil, malformed(path, "package.version is inherited rather than set", nil)
		}
		kl, ok := s.keyLine(i)
		if !ok || kl.key != "version" {
			continue
		}
		lit := stringLitRe.FindStringSubmatch(kl.rest)
		if lit == nil {
			return nil, malformed(path, "package.version is not a string", nil)
		}
		s.set(i, kl.indent+kl.rawKey+kl.sep+quote(v)+lit[2]+kl.eol)
		return s.bytes(), nil
	}
	return nil, missing(path, "package.version")
}

// editPin rewrites the dependency's pin, clearing whichever of rev or branch
// was there before. The dependency may be an inline table under
// [dependencies] or its own [dependencies.<name>] table.
func editPin(path string, data []byte, dep string, pin Pin) ([]byte, error) {
	s := newSource(data)

	if sec, ok := s.section("dependencies"); ok {
		for i := sec.start; i < sec.end; i++ {
			kl, ok := s.keyLine(i)
			if !ok || kl.key != dep {
				continue
			}
			if !strings.HasPrefix(kl.rest, "{") {
				return nil, malformed(path, "dependencies."+dep+" is not a table", nil)
			}
			table, tail, err := rewriteInline(kl.rest, pin)
			if err != nil {
				return nil, malformed(path, "dependencies."+dep, err)
			}
			s.set(i, kl.indent+kl.rawKey+kl.sep+table+tail+kl.eol)
			return s.bytes(), nil
		}
	}

	if sec, ok := s.section("dependencies." + dep); ok {
		s.rewriteSection(sec, pin)
		return s.bytes(), nil
	}
	return nil, missing(path, "dependencies."+dep)
}

func (s *source) rewriteSection(sec section, pin Pin) {
	first, lastKey := -1, -1
	var stale []int
	for i := sec.start; i < sec.end; i++ {
		if s.lines[i].kind == kindKey || s.lines[i].kind == kindContinuation {
			lastKey = i
		}
		kl, ok := s.keyLine(i)
		if !ok || !isPinKey(kl.key) {
			continue
		}
		if first >= 0 {
			stale = append(stale, i)
			continue
		}
		first = i
		tail := ""
		if kl.key == pin.Key() {
			if lit := stringLitRe.FindStringSubmatch(kl.rest); lit != nil {
				tail = lit[2]
			}
		}
		s.set(i, kl.indent+pin.Key()+kl.sep+quote(pin.Value())+tail+kl.eol)
	}

	for j := len(stale) - 1; j >= 0; j-- {
		s.remove(stale[j])
	}
	if first >= 0 {
		return
	}
	at := sec.start
	if lastKey >= 0 {
		at = lastKey + 1
	}
	s.insert(at, pin.Key()+" = "+quote(pin.Value())+s.eol)
}

// rewriteInline rewrites an inline table that starts at rest[0]. It returns
// the new table text and whatever followed the closing brace.
func rewriteInline(rest string, pin Pin) (string, string, error) {
	end := closingBrace(rest)
	if end < 0 {
		return "", "", errors.New("unterminated inline table")
	}
	inner, tail := rest[1:end], rest[end+1:]

	var out []string
	replaced := false
	for _, entry := range splitTopLevel(inner) {
		k, _, found := strings.Cut(entry, "=")
		if !found {
			return "", "", errors.New("inline table entry without a value")
		}
		if isPinKey(unquote(strings.TrimSpace(k))) {
			if !replaced {
				out = append(out, pin.Key()+" = "+quote(pin.Value()))
				replaced = true
			}
			continue
		}
		out = append(out, entry)
	}
	if !replaced {
		out = append(out, pin.Key()+" = "+quote(pin.Value()))
	}

	pad := ""
	if strings.HasPrefix(inner, " ") {
		pad = " "
	}
	return "{" + pad + strings.Join(out, ", ") + pad + "}", tail, nil
}

// closingBrace returns the index of the brace closing s[0], or -1.
func closingBrace(s string) int {
	depth := 0
	sc := scanner{}
	for i := 0; i < len(s); i++ {
		if sc.step(s, i) {
			continue
		}
		switch s[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits inline table content on commas outside strings and
// nested values. Entries are trimmed; empty entries are dropped.
func splitTopLevel(s string) []string {
	var parts []string
	depth, last := 0, 0
	sc := scanner{}
	for i := 0; i < len(s); i++ {
		if sc.step(s, i) {
			continue
		}
		switch s[i] {
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])

	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// bracketDelta counts opening minus closing brackets outside strings and
// before any comment.
func bracketDelta(s string) int {
	delta := 0
	sc := scanner{}
	for i := 0; i < len(s); i++ {
		if sc.step(s, i) {
			continue
		}
		switch s[i] {
		case '#':
			return delta
		case '{', '[':
			delta++
		case '}', ']':
			delta--
		}
	}
	return delta
}

// scanner tracks whether a byte offset falls inside a single-line string.
type scanner struct {
	quote   byte
	escaped bool
}

// step consumes s[i] and reports whether it belongs to a string literal.
func (sc *scanner) step(s string, i int) bool {
	c := s[i]
	if sc.quote != 0 {
		switch {
		case sc.escaped:
			sc.escaped = false
		case c == '\\' && sc.quote == '"':
			sc.escaped = true
		case c == sc.quote:
			sc.quote = 0
		}
		return true
	}
	if c == '"' || c == '\'' {
		sc.quote = c
		return true
	}
	return false
}

func tripleQuotes(s string) int {
	return strings.Count(s, `"""`) + strings.Count(s, `'''`)
}

func splitEOL(text string) (body, eol string) {
	body = strings.TrimRight(text, "\r\n")
	return body, text[len(body):]
}

func normalizeName(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = unquote(strings.TrimSpace(p))
	}
	return strings.Join(parts, ".")
}

func unquote(k string) string {
	if len(k) >= 2 && (k[0] == '"' || k[0] == '\'') && k[len(k)-1] == k[0] {
		return k[1 : len(k)-1]
	}
	return k
}

// quote renders s as a TOML basic string.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
