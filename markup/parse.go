package markup

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gogpu/compose"
)

// ParseError reports malformed markup. Pos is a byte offset into the
// source.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("markup: %s at offset %d", e.Msg, e.Pos)
}

// Is lets errors.Is match ParseError against compose.ErrConstruction.
func (e *ParseError) Is(target error) bool { return target == compose.ErrConstruction }

// NodeKind distinguishes markup nodes.
type NodeKind uint8

const (
	NodeText NodeKind = iota
	NodeScope
	NodeImage
)

func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "text"
	case NodeScope:
		return "scope"
	case NodeImage:
		return "image"
	default:
		return "unknown"
	}
}

// Node is one piece of parsed markup. Text nodes carry unescaped Text;
// scopes carry a Name and Children; images carry a Name.
type Node struct {
	Kind     NodeKind
	Text     string
	Name     string
	Children []Node
	Pos      int
}

// Parse parses src into a tree of nodes. Adjacent text is returned as a
// single node.
func Parse(src string) ([]Node, error) {
	stack := []Node{{}}
	var text strings.Builder
	textPos := -1

	top := func() *Node { return &stack[len(stack)-1] }
	flushText := func() {
		if text.Len() == 0 {
			return
		}
		top().Children = append(top().Children, Node{Kind: NodeText, Text: text.String(), Pos: textPos})
		text.Reset()
		textPos = -1
	}
	addText := func(pos int, r rune) {
		if textPos < 0 {
			textPos = pos
		}
		text.WriteRune(r)
	}

	for i := 0; i < len(src); {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch r {
		case escapeChar:
			if i+size >= len(src) {
				return nil, &ParseError{Pos: i, Msg: "dangling escape"}
			}
			next, nsize := utf8.DecodeRuneInString(src[i+size:])
			if !isMeta(next) {
				return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("invalid escape \\%c", next)}
			}
			addText(i, next)
			i += size + nsize
			continue
		case '>':
			return nil, &ParseError{Pos: i, Msg: "unescaped '>'"}
		case '<':
			end := strings.IndexByte(src[i:], '>')
			if end < 0 {
				return nil, &ParseError{Pos: i, Msg: "unterminated tag"}
			}
			body := src[i+1 : i+end]
			flushText()
			switch {
			case strings.HasPrefix(body, "/"):
				name := body[1:]
				if err := checkName(name, i); err != nil {
					return nil, err
				}
				if len(stack) == 1 {
					return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("closing tag </%s> without opening tag", name)}
				}
				open := stack[len(stack)-1]
				if open.Name != name {
					return nil, &ParseError{Pos: i, Msg: fmt.Sprintf("closing tag </%s> does not match <%s>", name, open.Name)}
				}
				stack = stack[:len(stack)-1]
				top().Children = append(top().Children, open)
			case strings.HasSuffix(body, "/"):
				name := body[:len(body)-1]
				if err := checkName(name, i); err != nil {
					return nil, err
				}
				top().Children = append(top().Children, Node{Kind: NodeImage, Name: name, Pos: i})
			default:
				if err := checkName(body, i); err != nil {
					return nil, err
				}
				stack = append(stack, Node{Kind: NodeScope, Name: body, Pos: i})
			}
			i += end + 1
			continue
		}
		addText(i, r)
		i += size
	}
	flushText()
	if len(stack) > 1 {
		open := stack[len(stack)-1]
		return nil, &ParseError{Pos: open.Pos, Msg: fmt.Sprintf("unclosed tag <%s>", open.Name)}
	}
	return stack[0].Children, nil
}

func checkName(name string, pos int) error {
	if name == "" {
		return &ParseError{Pos: pos, Msg: "empty tag name"}
	}
	for _, r := range name {
		if !validNameRune(r) {
			return &ParseError{Pos: pos, Msg: fmt.Sprintf("invalid tag name %q", name)}
		}
	}
	return nil
}

func validNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' || r == '.'
}
