package texmath

// Atom is a node of a parsed formula.
type Atom interface {
	atom()
}

// Row is a sequence of atoms.
type Row struct {
	Items []Atom
}

// Symbol is a single token: a letter, number, operator or named symbol.
type Symbol struct {
	Text    string
	Kind    symbolKind
	Variant string // MathML mathvariant, "" for the default
}

// Space is horizontal space.
type Space struct {
	Width string
}

// Frac is \frac, \dfrac or \tfrac.
type Frac struct {
	Num, Den Atom
	// Style is "display" for \dfrac, "text" for \tfrac, "" otherwise.
	Style string
}

// Root is \sqrt with an optional index.
type Root struct {
	Index Atom
	Body  Atom
}

// Scripts attaches a superscript, a subscript or both to Base.
// Base is nil for scripts at the start of a group.
type Scripts struct {
	Base Atom
	Sup  Atom
	Sub  Atom
}

// Fenced is \left ... \right.
type Fenced struct {
	Left, Right string
	Body        *Row
}

// Text is upright text from \text or \operatorname.
type Text struct {
	Text     string
	Operator bool
}

// Accent is a mark placed over Body.
type Accent struct {
	Mark string
	Body Atom
}

// Styled is a subformula carrying an HTML class or id.
type Styled struct {
	Class string
	ID    string
	Body  Atom
}

// Error is a construct rendered as error text under the permissive
// strictness.
type Error struct {
	Source  string
	Message string
}

func (*Row) atom()     {}
func (*Symbol) atom()  {}
func (*Space) atom()   {}
func (*Frac) atom()    {}
func (*Root) atom()    {}
func (*Scripts) atom() {}
func (*Fenced) atom()  {}
func (*Text) atom()    {}
func (*Accent) atom()  {}
func (*Styled) atom()  {}
func (*Error) atom()   {}
