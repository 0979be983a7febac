// Package protobuf generates a proto3 IDL for the timed-automaton wire
// format and encodes concrete TAs to google.protobuf.Struct values for
// transports that don't carry generated message code.
package protobuf

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/rtctrl/rtctrl"
	"github.com/rtctrl/rtctrl/caser"
)

// Field is one declared field of a Message.
type Field struct {
	Name     caser.Caser
	Type     string
	Number   int
	Optional bool
	Repeated bool
}

func (f Field) String() string {
	if f.Optional {
		return fmt.Sprintf("optional %s %s = %d", f.Type, f.Name.SnakeCase(), f.Number)
	}
	if f.Repeated {
		return fmt.Sprintf("repeated %s %s = %d", f.Type, f.Name.SnakeCase(), f.Number)
	}
	return fmt.Sprintf("%s %s = %d", f.Type, f.Name.SnakeCase(), f.Number)
}

// Message is a proto3 message declaration.
type Message struct {
	Name   caser.Caser
	Fields []Field
}

func (m Message) String() string {
	s := fmt.Sprintf("message %s {\n", m.Name.PascalCase())
	for _, f := range m.Fields {
		s += fmt.Sprintf("  %s;\n", f)
	}
	return s + "}\n"
}

// RPC is a proto3 service method declaration.
type RPC struct {
	Name   string
	Input  string
	Output string
}

func (r RPC) String() string {
	return fmt.Sprintf("  rpc %s (%s) returns (%s);", caser.New(r.Name).PascalCase(), r.Input, r.Output)
}

// Data is the builder for one complete .proto file.
type Data struct {
	Parent   string
	Name     caser.Caser
	Messages []Message
	RPCs     []RPC
	Imports  []string
}

func NewData(name string, parent ...string) Data {
	p := name
	if len(parent) > 0 {
		p = parent[0]
	}
	return Data{
		Parent:   p,
		Name:     caser.New(name),
		Messages: make([]Message, 0),
		RPCs:     make([]RPC, 0),
		Imports:  make([]string, 0),
	}
}

func (d Data) AddMessage(name string, fields []Field) Data {
	d.Messages = append(d.Messages, Message{Name: caser.New(name), Fields: fields})
	slices.SortFunc(d.Messages, func(a, b Message) int {
		return strings.Compare(a.Name.SnakeCase(), b.Name.SnakeCase())
	})
	return d
}

func (d Data) AddRPC(name, input, output string) Data {
	d.RPCs = append(d.RPCs, RPC{Name: name, Input: input, Output: output})
	slices.SortFunc(d.RPCs, func(a, b RPC) int {
		return strings.Compare(a.Name, b.Name)
	})
	return d
}

func (d Data) AddImport(imp string) Data {
	d.Imports = append(d.Imports, imp)
	return d
}

func (d Data) String() string {
	s := "syntax = \"proto3\";\n\n"
	s += fmt.Sprintf("package %s;\n\n", d.Name.SnakeCase())
	s += fmt.Sprintf("option go_package = \"%s/proto/v1/%s\";\n\n", caser.New(d.Parent).CamelCase(), d.Name.CamelCase())
	sort.Strings(d.Imports)
	for _, imp := range d.Imports {
		s += fmt.Sprintf("import \"%s\";\n", imp)
	}
	s += "\n"
	seen := map[string]bool{}
	for i, m := range d.Messages {
		if seen[m.Name.SnakeCase()] {
			continue
		}
		seen[m.Name.SnakeCase()] = true
		s += m.String()
		if i < len(d.Messages)-1 {
			s += "\n"
		}
	}
	if len(d.RPCs) == 0 {
		return s
	}
	s += fmt.Sprintf("\nservice %sService {\n", d.Name.PascalCase())
	seenRPC := map[string]bool{}
	for _, r := range d.RPCs {
		key := caser.ToPascalCase(r.Name)
		if seenRPC[key] {
			continue
		}
		seenRPC[key] = true
		s += r.String() + "\n"
	}
	s += "}\n"
	return s
}

// Schema builds the fixed IDL for the timed-automaton/controller wire
// format: a TimedAutomaton message usable for both the plant and an
// extracted controller, a SynthesizeRequest/Response pair, and a
// synthesis RPC.
func Schema(pkg string) Data {
	d := NewData(pkg)
	d = d.AddMessage("ClockConstraint", []Field{
		{Name: caser.New("clock"), Type: "string", Number: 1},
		{Name: caser.New("op"), Type: "string", Number: 2},
		{Name: caser.New("k"), Type: "int32", Number: 3},
	})
	d = d.AddMessage("Transition", []Field{
		{Name: caser.New("from"), Type: "string", Number: 1},
		{Name: caser.New("to"), Type: "string", Number: 2},
		{Name: caser.New("symbol"), Type: "string", Number: 3},
		{Name: caser.New("guard"), Type: "ClockConstraint", Number: 4, Repeated: true},
		{Name: caser.New("reset"), Type: "string", Number: 5, Repeated: true},
	})
	d = d.AddMessage("TimedAutomaton", []Field{
		{Name: caser.New("name"), Type: "string", Number: 1},
		{Name: caser.New("locations"), Type: "string", Number: 2, Repeated: true},
		{Name: caser.New("clocks"), Type: "string", Number: 3, Repeated: true},
		{Name: caser.New("alphabet"), Type: "string", Number: 4, Repeated: true},
		{Name: caser.New("initial"), Type: "string", Number: 5},
		{Name: caser.New("accepting"), Type: "string", Number: 6, Repeated: true},
		{Name: caser.New("transitions"), Type: "Transition", Number: 7, Repeated: true},
	})
	d = d.AddMessage("SynthesizeRequest", []Field{
		{Name: caser.New("plant"), Type: "TimedAutomaton", Number: 1},
		{Name: caser.New("formula"), Type: "string", Number: 2},
		{Name: caser.New("controller_actions"), Type: "string", Number: 3, Repeated: true},
		{Name: caser.New("environment_actions"), Type: "string", Number: 4, Repeated: true},
		{Name: caser.New("region_bound"), Type: "int32", Number: 5},
	})
	d = d.AddMessage("SynthesizeResponse", []Field{
		{Name: caser.New("realizable"), Type: "bool", Number: 1},
		{Name: caser.New("controller"), Type: "TimedAutomaton", Number: 2},
	})
	d = d.AddRPC("Synthesize", "SynthesizeRequest", "SynthesizeResponse")
	return d
}

// Service writes the fixed schema to out.
type Service struct{}

func (s *Service) Flush(_ context.Context, w io.Writer, pkg string) error {
	_, err := w.Write([]byte(Schema(pkg).String()))
	return err
}

// EncodeTA converts a TA to a google.protobuf.Struct, a transport-neutral
// wire value usable without generated message code.
func EncodeTA(ta *rtctrl.TA) (*structpb.Struct, error) {
	accepting := make([]interface{}, 0, len(ta.Accepting))
	for loc, ok := range ta.Accepting {
		if ok {
			accepting = append(accepting, loc)
		}
	}
	sort.Slice(accepting, func(i, j int) bool { return accepting[i].(string) < accepting[j].(string) })

	transitions := make([]interface{}, len(ta.Transitions))
	for i, tr := range ta.Transitions {
		guard := make([]interface{}, len(tr.Guard))
		for j, c := range tr.Guard {
			guard[j] = map[string]interface{}{
				"clock": c.Clock,
				"op":    c.Op.String(),
				"k":     float64(c.K),
			}
		}
		reset := make([]interface{}, len(tr.Reset))
		for j, r := range tr.Reset {
			reset[j] = r
		}
		transitions[i] = map[string]interface{}{
			"from":   tr.From,
			"to":     tr.To,
			"symbol": tr.Symbol,
			"guard":  guard,
			"reset":  reset,
		}
	}

	return structpb.NewStruct(map[string]interface{}{
		"name":        ta.Name,
		"locations":   toAny(ta.Locations),
		"clocks":      toAny(ta.Clocks),
		"alphabet":    toAny(ta.Alphabet),
		"initial":     ta.Initial,
		"accepting":   accepting,
		"transitions": transitions,
	})
}

func toAny(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// DecodeTA is the inverse of EncodeTA.
func DecodeTA(s *structpb.Struct) (*rtctrl.TA, error) {
	m := s.AsMap()
	name, _ := m["name"].(string)
	ta := rtctrl.NewTA(name)

	ta.Locations = stringsOf(m["locations"])
	ta.Clocks = stringsOf(m["clocks"])
	ta.Alphabet = stringsOf(m["alphabet"])
	if initial, ok := m["initial"].(string); ok {
		ta.Initial = initial
	}
	ta.WithAccepting(stringsOf(m["accepting"])...)

	trs, _ := m["transitions"].([]interface{})
	for _, raw := range trs {
		tm, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		tr := rtctrl.Transition{
			From:   stringField(tm, "from"),
			To:     stringField(tm, "to"),
			Symbol: stringField(tm, "symbol"),
			Reset:  stringsOf(tm["reset"]),
		}
		guards, _ := tm["guard"].([]interface{})
		for _, g := range guards {
			gm, ok := g.(map[string]interface{})
			if !ok {
				continue
			}
			op, err := parseOp(stringField(gm, "op"))
			if err != nil {
				return nil, err
			}
			k, _ := gm["k"].(float64)
			tr.Guard = append(tr.Guard, rtctrl.ClockConstraint{
				Clock: stringField(gm, "clock"), Op: op, K: int(k),
			})
		}
		ta.WithTransition(tr)
	}
	return ta, nil
}

func stringField(m map[string]interface{}, k string) string {
	s, _ := m[k].(string)
	return s
}

func stringsOf(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if s, ok := r.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func parseOp(s string) (rtctrl.ConstraintOp, error) {
	switch s {
	case "<":
		return rtctrl.Lt, nil
	case "<=":
		return rtctrl.Le, nil
	case "==":
		return rtctrl.Eq, nil
	case "!=":
		return rtctrl.Ne, nil
	case ">=":
		return rtctrl.Ge, nil
	case ">":
		return rtctrl.Gt, nil
	default:
		return 0, fmt.Errorf("%w: unrecognized constraint operator %q", rtctrl.ErrInvalidInput, s)
	}
}
