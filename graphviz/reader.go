package graphviz

import (
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz/cgraph"

	"github.com/rtctrl/rtctrl"
)

// TAReader loads a plant TA back from the Graphviz format TAWriter
// produces: circle/doublecircle nodes are locations, edges carry the
// transition's symbol/guard/reset as "symbol", "guard" and "reset"
// attributes.
type TAReader struct {
	g        *cgraph.Graph
	byName   map[string]string // graph node name -> location name
	accept   map[string]bool
	initial  string
}

func NewTAReader() *TAReader {
	return &TAReader{byName: map[string]string{}, accept: map[string]bool{}}
}

func (r *TAReader) Load(in io.Reader, name string) (*rtctrl.TA, error) {
	bytes, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	r.g, err = cgraph.ParseBytes(bytes)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.g.Close() }()

	ta := rtctrl.NewTA(name)
	clocks := map[string]bool{}
	alphabet := map[string]bool{}

	node := r.g.FirstNode()
	for node != nil {
		loc := node.Get("label")
		if loc == "" {
			loc = node.Name()
		}
		r.byName[node.Name()] = loc
		ta.Locations = append(ta.Locations, loc)
		if node.Get("shape") == "doublecircle" {
			r.accept[loc] = true
		}
		if node.Get("style") == "filled" && r.initial == "" {
			r.initial = loc
		}
		node = r.g.NextNode(node)
	}
	ta.WithInitial(r.initial).WithAccepting(setKeys(r.accept)...)

	n := r.g.FirstNode()
	seen := map[string]bool{}
	for n != nil {
		edge := r.g.FirstEdge(n)
		for edge != nil {
			if seen[edge.Name()] {
				edge = r.g.NextOut(edge)
				continue
			}
			seen[edge.Name()] = true
			other := edge.Node()
			tr := rtctrl.Transition{
				From:   r.byName[n.Name()],
				To:     r.byName[other.Name()],
				Symbol: edge.Get("symbol"),
				Guard:  parseGuard(edge.Get("guard")),
				Reset:  parseList(edge.Get("reset")),
			}
			ta.WithTransition(tr)
			if tr.Symbol != "" {
				alphabet[tr.Symbol] = true
			}
			for _, c := range tr.Guard {
				clocks[c.Clock] = true
			}
			for _, c := range tr.Reset {
				clocks[c] = true
			}
			edge = r.g.NextOut(edge)
		}
		n = r.g.NextNode(n)
	}
	ta.WithClocks(setKeys(clocks)...).WithAlphabet(setKeys(alphabet)...)
	return ta, nil
}

func setKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// parseGuard parses a semicolon-separated list of "clock op k" atoms, the
// inverse of ClockConstraint.String.
func parseGuard(s string) rtctrl.Guard {
	if s == "" {
		return nil
	}
	var g rtctrl.Guard
	for _, atom := range strings.Split(s, ";") {
		fields := strings.Fields(strings.TrimSpace(atom))
		if len(fields) != 3 {
			continue
		}
		k, err := strconv.Atoi(fields[2])
		if err != nil {
			continue
		}
		var op rtctrl.ConstraintOp
		switch fields[1] {
		case "<":
			op = rtctrl.Lt
		case "<=":
			op = rtctrl.Le
		case "==":
			op = rtctrl.Eq
		case "!=":
			op = rtctrl.Ne
		case ">=":
			op = rtctrl.Ge
		case ">":
			op = rtctrl.Gt
		default:
			continue
		}
		g = append(g, rtctrl.ClockConstraint{Clock: fields[0], Op: op, K: k})
	}
	return g
}
