package token

// Kind classifies a chunk.
type Kind uint8

const (
	Source Kind = iota
	Comment
)

func (k Kind) String() string {
	switch k {
	case Source:
		return "Source"
	case Comment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// CommentKind is the closed set of comment categories. Numeric order follows
// tag precedence: a higher value wins when tags overlap.
type CommentKind uint8

const (
	NoComment CommentKind = iota
	Eol
	Preserved
	Documentation
	Directive
)

// SOLTags lists the kinds recognised at the start of a line, most specific first.
var SOLTags = [...]CommentKind{Directive, Documentation, Preserved, Eol}

// InlineTags lists the kinds recognised after source text on the same line.
var InlineTags = [...]CommentKind{Preserved, Eol}

// Tag returns the lexical marker of the kind.
func (k CommentKind) Tag() string {
	switch k {
	case Directive:
		return "%%%"
	case Documentation:
		return "%%"
	case Preserved:
		return "%!"
	case Eol:
		return "%"
	default:
		return ""
	}
}

// SOLOnly reports whether the tag is only meaningful at the start of a line.
func (k CommentKind) SOLOnly() bool {
	return k == Directive || k == Documentation
}

func (k CommentKind) String() string {
	switch k {
	case Directive:
		return "Directive"
	case Documentation:
		return "Documentation"
	case Preserved:
		return "Preserved"
	case Eol:
		return "Eol"
	default:
		return "None"
	}
}
