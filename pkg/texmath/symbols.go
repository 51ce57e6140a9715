package texmath

// symbolKind selects the MathML token element of a symbol.
type symbolKind uint8

const (
	symIdent    symbolKind = iota // <mi>
	symNumber                     // <mn>
	symOperator                   // <mo>
	symLargeOp                    // <mo> that takes limits in display mode
	symFunction                   // upright <mi>, like \sin
	symLimitsFn                   // upright <mi> that takes limits, like \lim
)

type symbol struct {
	text string
	kind symbolKind
}

// symbols maps argument-less commands to their output.
var symbols = map[string]symbol{
	// Greek lowercase
	`\alpha`:      {"α", symIdent},
	`\beta`:       {"β", symIdent},
	`\gamma`:      {"γ", symIdent},
	`\delta`:      {"δ", symIdent},
	`\epsilon`:    {"ϵ", symIdent},
	`\varepsilon`: {"ε", symIdent},
	`\zeta`:       {"ζ", symIdent},
	`\eta`:        {"η", symIdent},
	`\theta`:      {"θ", symIdent},
	`\vartheta`:   {"ϑ", symIdent},
	`\iota`:       {"ι", symIdent},
	`\kappa`:      {"κ", symIdent},
	`\lambda`:     {"λ", symIdent},
	`\mu`:         {"μ", symIdent},
	`\nu`:         {"ν", symIdent},
	`\xi`:         {"ξ", symIdent},
	`\pi`:         {"π", symIdent},
	`\rho`:        {"ρ", symIdent},
	`\sigma`:      {"σ", symIdent},
	`\tau`:        {"τ", symIdent},
	`\upsilon`:    {"υ", symIdent},
	`\phi`:        {"ϕ", symIdent},
	`\varphi`:     {"φ", symIdent},
	`\chi`:        {"χ", symIdent},
	`\psi`:        {"ψ", symIdent},
	`\omega`:      {"ω", symIdent},

	// Greek uppercase
	`\Gamma`:   {"Γ", symIdent},
	`\Delta`:   {"Δ", symIdent},
	`\Theta`:   {"Θ", symIdent},
	`\Lambda`:  {"Λ", symIdent},
	`\Xi`:      {"Ξ", symIdent},
	`\Pi`:      {"Π", symIdent},
	`\Sigma`:   {"Σ", symIdent},
	`\Upsilon`: {"Υ", symIdent},
	`\Phi`:     {"Φ", symIdent},
	`\Psi`:     {"Ψ", symIdent},
	`\Omega`:   {"Ω", symIdent},

	// Letter-like
	`\hbar`:     {"ℏ", symIdent},
	`\ell`:      {"ℓ", symIdent},
	`\partial`:  {"∂", symIdent},
	`\infty`:    {"∞", symIdent},
	`\nabla`:    {"∇", symIdent},
	`\emptyset`: {"∅", symIdent},
	`\Re`:       {"ℜ", symIdent},
	`\Im`:       {"ℑ", symIdent},
	`\aleph`:    {"ℵ", symIdent},

	// Binary operators and relations
	`\pm`:             {"±", symOperator},
	`\mp`:             {"∓", symOperator},
	`\times`:          {"×", symOperator},
	`\div`:            {"÷", symOperator},
	`\cdot`:           {"⋅", symOperator},
	`\ast`:            {"∗", symOperator},
	`\circ`:           {"∘", symOperator},
	`\cup`:            {"∪", symOperator},
	`\cap`:            {"∩", symOperator},
	`\wedge`:          {"∧", symOperator},
	`\vee`:            {"∨", symOperator},
	`\leq`:            {"≤", symOperator},
	`\le`:             {"≤", symOperator},
	`\geq`:            {"≥", symOperator},
	`\ge`:             {"≥", symOperator},
	`\neq`:            {"≠", symOperator},
	`\ne`:             {"≠", symOperator},
	`\approx`:         {"≈", symOperator},
	`\equiv`:          {"≡", symOperator},
	`\sim`:            {"∼", symOperator},
	`\simeq`:          {"≃", symOperator},
	`\propto`:         {"∝", symOperator},
	`\in`:             {"∈", symOperator},
	`\notin`:          {"∉", symOperator},
	`\subset`:         {"⊂", symOperator},
	`\subseteq`:       {"⊆", symOperator},
	`\supset`:         {"⊃", symOperator},
	`\forall`:         {"∀", symOperator},
	`\exists`:         {"∃", symOperator},
	`\neg`:            {"¬", symOperator},
	`\to`:             {"→", symOperator},
	`\rightarrow`:     {"→", symOperator},
	`\leftarrow`:      {"←", symOperator},
	`\Rightarrow`:     {"⇒", symOperator},
	`\Leftarrow`:      {"⇐", symOperator},
	`\Leftrightarrow`: {"⇔", symOperator},
	`\mapsto`:         {"↦", symOperator},
	`\cdots`:          {"⋯", symOperator},
	`\ldots`:          {"…", symOperator},
	`\dots`:           {"…", symOperator},
	`\vdots`:          {"⋮", symOperator},
	`\prime`:          {"′", symOperator},
	`\langle`:         {"⟨", symOperator},
	`\rangle`:         {"⟩", symOperator},
	`\lvert`:          {"|", symOperator},
	`\rvert`:          {"|", symOperator},
	`\lfloor`:         {"⌊", symOperator},
	`\rfloor`:         {"⌋", symOperator},
	`\lceil`:          {"⌈", symOperator},
	`\rceil`:          {"⌉", symOperator},
	`\{`:              {"{", symOperator},
	`\}`:              {"}", symOperator},
	`\|`:              {"‖", symOperator},
	`\%`:              {"%", symOperator},
	`\$`:              {"$", symOperator},
	`\#`:              {"#", symOperator},
	`\&`:              {"&", symOperator},
	`\_`:              {"_", symOperator},

	// Large operators
	`\sum`:    {"∑", symLargeOp},
	`\prod`:   {"∏", symLargeOp},
	`\coprod`: {"∐", symLargeOp},
	`\int`:    {"∫", symOperator},
	`\iint`:   {"∬", symOperator},
	`\oint`:   {"∮", symOperator},
	`\bigcup`: {"⋃", symLargeOp},
	`\bigcap`: {"⋂", symLargeOp},

	// Named functions
	`\sin`:    {"sin", symFunction},
	`\cos`:    {"cos", symFunction},
	`\tan`:    {"tan", symFunction},
	`\cot`:    {"cot", symFunction},
	`\sec`:    {"sec", symFunction},
	`\csc`:    {"csc", symFunction},
	`\sinh`:   {"sinh", symFunction},
	`\cosh`:   {"cosh", symFunction},
	`\tanh`:   {"tanh", symFunction},
	`\arcsin`: {"arcsin", symFunction},
	`\arccos`: {"arccos", symFunction},
	`\arctan`: {"arctan", symFunction},
	`\log`:    {"log", symFunction},
	`\ln`:     {"ln", symFunction},
	`\exp`:    {"exp", symFunction},
	`\det`:    {"det", symFunction},
	`\dim`:    {"dim", symFunction},
	`\deg`:    {"deg", symFunction},
	`\lim`:    {"lim", symLimitsFn},
	`\max`:    {"max", symLimitsFn},
	`\min`:    {"min", symLimitsFn},
	`\sup`:    {"sup", symLimitsFn},
	`\inf`:    {"inf", symLimitsFn},
}

// spaces maps spacing commands to MathML widths.
var spaces = map[string]string{
	`\,`:     "0.1667em",
	`\:`:     "0.2222em",
	`\;`:     "0.2778em",
	`\!`:     "-0.1667em",
	`\ `:     "0.25em",
	`\quad`:  "1em",
	`\qquad`: "2em",
}

// delimiters are the fences accepted after \left and \right. "." is the
// empty fence.
var delimiters = map[string]string{
	"(":       "(",
	")":       ")",
	"[":       "[",
	"]":       "]",
	"|":       "|",
	"/":       "/",
	".":       "",
	`\{`:      "{",
	`\}`:      "}",
	`\|`:      "‖",
	`\langle`: "⟨",
	`\rangle`: "⟩",
	`\lvert`:  "|",
	`\rvert`:  "|",
	`\lfloor`: "⌊",
	`\rfloor`: "⌋",
	`\lceil`:  "⌈",
	`\rceil`:  "⌉",
}

// accents maps accent commands to their combining marks.
var accents = map[string]string{
	`\hat`:       "^",
	`\bar`:       "¯",
	`\overline`:  "¯",
	`\vec`:       "→",
	`\dot`:       "˙",
	`\ddot`:      "¨",
	`\tilde`:     "~",
	`\widehat`:   "^",
	`\widetilde`: "~",
}

// variants maps font commands to MathML mathvariant values.
var variants = map[string]string{
	`\mathrm`:     "normal",
	`\mathit`:     "italic",
	`\mathbf`:     "bold",
	`\mathbb`:     "double-struck",
	`\mathcal`:    "script",
	`\mathfrak`:   "fraktur",
	`\mathsf`:     "sans-serif",
	`\mathtt`:     "monospace",
	`\boldsymbol`: "bold-italic",
}

// charOperators are single characters rendered as <mo>.
var charOperators = map[rune]string{
	'+': "+",
	'-': "−",
	'*': "∗",
	'=': "=",
	'<': "<",
	'>': ">",
	'(': "(",
	')': ")",
	'[': "[",
	']': "]",
	'|': "|",
	',': ",",
	';': ";",
	':': ":",
	'!': "!",
	'/': "/",
	'?': "?",
	'.': ".",
	'@': "@",
	'"': "\"",
	'`': "‘",
}
