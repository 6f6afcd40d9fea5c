package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	lex "github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stylebridge/animation"
	"stylebridge/css"
	"stylebridge/style"
)

// cssParser collects document content from CSS stylesheet. Supported
// subset:
//
//	:root { --name: value }                      custom properties
//	@media (...) { :root { --name: value } }     themed custom properties
//	@keyframes name { from {...} 50% {...} }     keyframes
//	.name, .name:hover|:focus|:active { ... }    styles and their variants
//	@media (...) { .name { ... } }               media variants
//
// Everything else is reported and skipped.
type cssParser struct {
	log     *zap.Logger
	name    string
	src     source
	styles  map[string]map[string]*style.Ordered
	errs    error
	lastErr int
}

type declaration struct {
	name  string
	value string
}

func parseCSS(log *zap.Logger, name string, data []byte) (source, error) {
	p := &cssParser{
		log:     log,
		name:    name,
		src:     newSource(),
		styles:  make(map[string]map[string]*style.Ordered),
		lastErr: -1,
	}

	parser := lex.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case lex.ErrorGrammar:
			if !p.recover(parser) {
				return p.finish()
			}
		case lex.AtRuleGrammar:
			p.unsupported("at-rule " + string(data))
		case lex.BeginAtRuleGrammar:
			switch string(data) {
			case "@media":
				p.media(parser, "@media "+tokensText(parser.Values()))
			case "@keyframes":
				p.keyframes(parser, tokensText(parser.Values()))
			default:
				p.unsupported("at-rule " + string(data))
				skipAtRuleBlock(parser)
			}
		case lex.BeginRulesetGrammar:
			selectors := parseSelectors(parser.Values())
			decls, custom := p.declarations(parser)
			p.rule(selectors, "", decls, custom)
		}
	}
}

// recover records parse error and reports whether parsing could go on.
func (p *cssParser) recover(parser *lex.Parser) bool {
	if !parser.HasParseError() {
		if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
			p.errs = multierr.Append(p.errs, fmt.Errorf("%s: %w", p.name, err))
		}
		return false
	}
	p.errs = multierr.Append(p.errs, fmt.Errorf("%s: %w", p.name, parser.Err()))
	off := parser.Offset()
	if off == p.lastErr {
		return false
	}
	p.lastErr = off
	return true
}

func (p *cssParser) unsupported(what string) {
	p.errs = multierr.Append(p.errs, fmt.Errorf("%s: %w: %s", p.name, ErrUnsupportedRule, what))
}

// declarations reads rule body up to its closing brace.
func (p *cssParser) declarations(parser *lex.Parser) (decls, custom []declaration) {
	for {
		gt, _, data := parser.Next()
		switch gt {
		case lex.ErrorGrammar:
			if !p.recover(parser) {
				return decls, custom
			}
		case lex.EndRulesetGrammar:
			return decls, custom
		case lex.DeclarationGrammar:
			value := tokensText(parser.Values())
			if v, found := strings.CutSuffix(value, "!important"); found {
				value = strings.TrimSpace(v)
			}
			decls = append(decls, declaration{name: string(data), value: value})
		case lex.CustomPropertyGrammar:
			var value string
			if values := parser.Values(); len(values) > 0 {
				value = strings.TrimSpace(string(values[0].Data))
			}
			custom = append(custom, declaration{name: string(data), value: value})
		case lex.BeginAtRuleGrammar:
			p.unsupported("nested at-rule " + string(data))
			skipAtRuleBlock(parser)
		}
	}
}

func (p *cssParser) media(parser *lex.Parser, query string) {
	if _, ok := css.ParseMedia(query); !ok {
		p.unsupported(query)
		skipAtRuleBlock(parser)
		return
	}
	query = css.CanonicalMediaKey(query)
	for {
		gt, _, data := parser.Next()
		switch gt {
		case lex.ErrorGrammar:
			if !p.recover(parser) {
				return
			}
		case lex.EndAtRuleGrammar:
			return
		case lex.BeginAtRuleGrammar:
			p.unsupported("nested at-rule " + string(data))
			skipAtRuleBlock(parser)
		case lex.BeginRulesetGrammar:
			selectors := parseSelectors(parser.Values())
			decls, custom := p.declarations(parser)
			p.rule(selectors, query, decls, custom)
		}
	}
}

func (p *cssParser) keyframes(parser *lex.Parser, name string) {
	kf := make(animation.Keyframes)
	defer func() {
		if name == "" {
			p.unsupported("anonymous @keyframes")
			return
		}
		p.src.keyframes[name] = kf
	}()

	for {
		gt, _, data := parser.Next()
		switch gt {
		case lex.ErrorGrammar:
			if !p.recover(parser) {
				return
			}
		case lex.EndAtRuleGrammar:
			return
		case lex.BeginAtRuleGrammar:
			p.unsupported("nested at-rule " + string(data))
			skipAtRuleBlock(parser)
		case lex.BeginRulesetGrammar:
			selector := tokensText(parser.Values())
			decls, _ := p.declarations(parser)
			values, ok := kf[selector]
			if !ok {
				values = make(map[string]any, len(decls))
				kf[selector] = values
			}
			for _, d := range decls {
				values[css.CamelCase(d.name)] = literal(d.value)
			}
		}
	}
}

// rule stores declarations of a single ruleset, media is empty outside of
// @media blocks.
func (p *cssParser) rule(selectors []string, media string, decls, custom []declaration) {
	for _, sel := range selectors {
		if sel == ":root" {
			if len(decls) > 0 {
				p.log.Debug("Regular properties in :root ignored", zap.String("document", p.name), zap.Int("count", len(decls)))
			}
			for _, d := range custom {
				if media == "" {
					p.src.define(d.name, d.value)
				} else {
					p.src.theme(d.name, media, d.value)
				}
			}
			continue
		}

		name, key, ok := parseClassSelector(sel)
		if !ok || (key != css.KeyDefault && media != "") {
			p.unsupported("selector " + sel)
			continue
		}
		if media != "" {
			key = media
		}
		if len(custom) > 0 {
			p.unsupported("custom properties in " + sel)
		}
		props, exists := p.styles[name]
		if !exists {
			props = make(map[string]*style.Ordered)
			p.styles[name] = props
		}
		for _, d := range decls {
			prop := css.CamelCase(d.name)
			o, exists := props[prop]
			if !exists {
				o = &style.Ordered{}
				props[prop] = o
			}
			o.Set(key, literal(d.value))
		}
	}
}

// finish converts collected rules into source. Properties without
// variants become plain values.
func (p *cssParser) finish() (source, error) {
	for name, props := range p.styles {
		decl := make(map[string]any, len(props))
		for prop, o := range props {
			if v, ok := o.Get(css.KeyDefault); ok && o.Len() == 1 {
				decl[prop] = v
				continue
			}
			decl[prop] = *o
		}
		p.src.styles[name] = decl
	}
	return p.src, p.errs
}

// parseClassSelector splits ".name" and ".name:hover" into style name and
// variant key.
func parseClassSelector(sel string) (name, key string, ok bool) {
	rest, found := strings.CutPrefix(sel, ".")
	if !found {
		return "", "", false
	}
	name, pseudo, hasPseudo := strings.Cut(rest, ":")
	if !isIdent(name) {
		return "", "", false
	}
	if !hasPseudo {
		return name, css.KeyDefault, true
	}
	switch key := ":" + pseudo; key {
	case css.KeyHover, css.KeyFocus, css.KeyActive:
		return name, key, true
	}
	return "", "", false
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '-' && i == 0:
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case (r >= '0' && r <= '9' || r == '-') && i > 0:
		default:
			return false
		}
	}
	return true
}

// literal turns plain numbers into float64, the way YAML documents carry
// them.
func literal(s string) any {
	if n, ok := css.ParseNumber(s); ok {
		return n
	}
	return s
}

func parseSelectors(values []lex.Token) []string {
	var selectors []string
	for s := range strings.SplitSeq(tokensText(values), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

func tokensText(tokens []lex.Token) string {
	var sb strings.Builder
	for _, t := range tokens {
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

func skipAtRuleBlock(parser *lex.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case lex.ErrorGrammar:
			if !parser.HasParseError() {
				return
			}
		case lex.BeginAtRuleGrammar, lex.BeginRulesetGrammar:
			depth++
		case lex.EndAtRuleGrammar, lex.EndRulesetGrammar:
			depth--
		}
	}
}
