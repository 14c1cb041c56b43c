package calc

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/Veraticus/calcmaster/internal/common"
)

// Evaluate computes an arithmetic expression.
//
// Grammar, lowest precedence first:
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/" | "%") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | constant | function "(" expr ")" | "(" expr ")"
//
// "^" is right associative and binds tighter than unary minus, so -2^2 is -4.
// Constants are pi and e. Functions are sin cos tan asin acos atan sqrt log
// (base 10) ln exp abs. Trigonometric functions use the angle mode of s.
func (s *Scientific) Evaluate(expression string) (float64, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, common.InvalidInput("empty expression")
	}

	p := &parser{tokens: tokens, sci: s}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return 0, common.InvalidInput("unexpected %q at position %d", tok.text, tok.pos+1)
	}
	return finite(v, "%s", expression)
}

// Evaluate computes expression with trigonometric functions in radians.
func Evaluate(expression string) (float64, error) {
	return NewScientific(Radians).Evaluate(expression)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	text string
	num  float64
	kind tokenKind
	pos  int
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)

	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || r == '.':
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.') {
				i++
			}
			// Exponent, only when digits follow so "2e" stays 2 then e.
			if i < len(runes) && (runes[i] == 'e' || runes[i] == 'E') {
				j := i + 1
				if j < len(runes) && (runes[j] == '+' || runes[j] == '-') {
					j++
				}
				if j < len(runes) && unicode.IsDigit(runes[j]) {
					i = j
					for i < len(runes) && unicode.IsDigit(runes[i]) {
						i++
					}
				}
			}
			text := string(runes[start:i])
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, common.InvalidInput("invalid number %q at position %d", text, start+1)
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, num: v, pos: start})
		case unicode.IsLetter(r):
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i])) {
				i++
			}
			text := strings.ToLower(string(runes[start:i]))
			tokens = append(tokens, token{kind: tokIdent, text: text, pos: start})
		case strings.ContainsRune("+-*/%^", r):
			tokens = append(tokens, token{kind: tokOp, text: string(r), pos: i})
			i++
		case r == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, common.InvalidInput("invalid character %q at position %d", r, i+1)
		}
	}

	return tokens, nil
}

type parser struct {
	sci    *Scientific
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{kind: tokEOF, text: "end of expression", pos: lastPos(p.tokens)}
	}
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.peek()
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) isOp(ops string) bool {
	tok := p.peek()
	return tok.kind == tokOp && strings.Contains(ops, tok.text)
}

func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for p.isOp("+-") {
		op := p.next().text
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == "+" {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for p.isOp("*/%") {
		op := p.next()
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		switch op.text {
		case "*":
			left *= right
		case "/":
			if right == 0 {
				return 0, common.InvalidInput("division by zero at position %d", op.pos+1)
			}
			left /= right
		case "%":
			if right == 0 {
				return 0, common.InvalidInput("modulo by zero at position %d", op.pos+1)
			}
			left = math.Mod(left, right)
		}
	}
	return left, nil
}

func (p *parser) unary() (float64, error) {
	if p.isOp("+-") {
		op := p.next().text
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == "-" {
			return -v, nil
		}
		return v, nil
	}
	return p.power()
}

func (p *parser) power() (float64, error) {
	base, err := p.primary()
	if err != nil {
		return 0, err
	}
	if !p.isOp("^") {
		return base, nil
	}
	p.next()
	exponent, err := p.unary()
	if err != nil {
		return 0, err
	}
	return Pow(base, exponent)
}

func (p *parser) primary() (float64, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		return tok.num, nil
	case tokLParen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(tokRParen); err != nil {
			return 0, err
		}
		return v, nil
	case tokIdent:
		switch tok.text {
		case "pi":
			return math.Pi, nil
		case "e":
			return math.E, nil
		}
		fn, ok := p.function(tok.text)
		if !ok {
			return 0, common.InvalidInput("unknown name %q at position %d", tok.text, tok.pos+1)
		}
		if err := p.expect(tokLParen); err != nil {
			return 0, err
		}
		arg, err := p.expr()
		if err != nil {
			return 0, err
		}
		if err := p.expect(tokRParen); err != nil {
			return 0, err
		}
		return fn(arg)
	default:
		return 0, common.InvalidInput("unexpected %q at position %d", tok.text, tok.pos+1)
	}
}

func (p *parser) expect(kind tokenKind) error {
	tok := p.next()
	if tok.kind == kind {
		return nil
	}
	want := "("
	if kind == tokRParen {
		want = ")"
	}
	return common.InvalidInput("expected %q but found %q at position %d", want, tok.text, tok.pos+1)
}

func (p *parser) function(name string) (func(float64) (float64, error), bool) {
	s := p.sci
	switch name {
	case "sin":
		return func(x float64) (float64, error) { return s.Sin(x), nil }, true
	case "cos":
		return func(x float64) (float64, error) { return s.Cos(x), nil }, true
	case "tan":
		return func(x float64) (float64, error) { return s.Tan(x), nil }, true
	case "asin":
		return s.Asin, true
	case "acos":
		return s.Acos, true
	case "atan":
		return func(x float64) (float64, error) { return s.Atan(x), nil }, true
	case "sqrt":
		return SquareRoot, true
	case "log":
		return func(x float64) (float64, error) { return Log(x, 10) }, true
	case "ln":
		return Ln, true
	case "exp":
		return Exp, true
	case "abs":
		return func(x float64) (float64, error) { return math.Abs(x), nil }, true
	default:
		return nil, false
	}
}

func lastPos(tokens []token) int {
	if len(tokens) == 0 {
		return 0
	}
	last := tokens[len(tokens)-1]
	return last.pos + len([]rune(last.text))
}
