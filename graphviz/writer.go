package graphviz

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/rtctrl/rtctrl"
	"github.com/rtctrl/rtctrl/search"
)

// Font names a Graphviz fontname attribute, chainable with Or to declare a
// fallback list.
type Font string

func (f Font) Or(other Font) Font { return f + "," + other }

const (
	Helvetica  Font = "Helvetica"
	Arial      Font = "Arial"
	Roboto     Font = "Roboto"
	Montserrat Font = "Montserrat"
	SansSerif  Font = "sans-serif"
	Serif      Font = "Serif"
	Times      Font = "Times"
)

// RankDir is a Graphviz rankdir attribute value.
type RankDir string

const (
	LeftToRight RankDir = "LR"
	RightToLeft RankDir = "RL"
	TopToBottom RankDir = "TB"
	BottomToTop RankDir = "BT"
)

// Config is shared rendering configuration for every writer in this
// package.
type Config struct {
	Name string
	Font
	RankDir
}

func (c *Config) nameOrDefault(def string) string {
	if c.Name == "" {
		return def
	}
	return c.Name
}

// TAWriter renders a plant TA's locations and guarded/resetting
// transitions.
type TAWriter struct {
	*Config
}

func NewTAWriter(config *Config) *TAWriter {
	if config == nil {
		config = &Config{}
	}
	return &TAWriter{Config: config}
}

// Flush renders ta to out in the given Graphviz format.
func (w *TAWriter) Flush(out io.Writer, ta *rtctrl.TA, format graphviz.Format) error {
	gv := graphviz.New()
	defer func() { _ = gv.Close() }()
	g, err := gv.Graph()
	if err != nil {
		return err
	}
	defer func() { _ = g.Close() }()
	g.SetRankDir(cgraph.RankDir(w.RankDir))

	nodes := make(map[string]*cgraph.Node, len(ta.Locations))
	for i, loc := range ta.Locations {
		n, err := g.CreateNode(fmt.Sprintf("l%d", i))
		if err != nil {
			return err
		}
		n.SetLabel(loc)
		n.Set("fontname", string(w.Font))
		if ta.Accepting[loc] {
			n.Set("shape", "doublecircle")
		} else {
			n.SetShape(cgraph.CircleShape)
		}
		if loc == ta.Initial {
			n.Set("style", "filled")
			n.Set("fillcolor", "lightgray")
		}
		nodes[loc] = n
	}
	for i, tr := range ta.Transitions {
		src, dst := nodes[tr.From], nodes[tr.To]
		if src == nil || dst == nil {
			return fmt.Errorf("%w: transition references unknown location", rtctrl.ErrInvalidInput)
		}
		e, err := g.CreateEdge(fmt.Sprintf("e%d", i), src, dst)
		if err != nil {
			return err
		}
		e.SetLabel(transitionLabel(tr))
		e.Set("fontname", string(w.Font))
		e.Set("symbol", tr.Symbol)
		if len(tr.Guard) > 0 {
			parts := make([]string, len(tr.Guard))
			for i, c := range tr.Guard {
				parts[i] = c.String()
			}
			e.Set("guard", strings.Join(parts, ";"))
		}
		if len(tr.Reset) > 0 {
			e.Set("reset", strings.Join(tr.Reset, ","))
		}
	}
	return gv.Render(g, format, out)
}

func transitionLabel(tr rtctrl.Transition) string {
	var b strings.Builder
	b.WriteString(tr.Symbol)
	if len(tr.Guard) > 0 {
		parts := make([]string, len(tr.Guard))
		for i, c := range tr.Guard {
			parts[i] = c.String()
		}
		b.WriteString(" [" + strings.Join(parts, ", ") + "]")
	}
	if len(tr.Reset) > 0 {
		b.WriteString(" {" + strings.Join(tr.Reset, ", ") + " := 0}")
	}
	return b.String()
}

// TreeWriter renders a labelled search tree: one record node per tree
// node, colored by its two-player label, and one edge per child, labelled
// with all of that child's incoming actions.
type TreeWriter struct {
	*Config
}

func NewTreeWriter(config *Config) *TreeWriter {
	if config == nil {
		config = &Config{}
	}
	return &TreeWriter{Config: config}
}

// nodeRecord is the exact external record format of a labelled tree node:
// "{reason}|{incoming}|{word-set}".
func nodeRecord(n *search.Node) string {
	reason := n.LabelReason
	if reason == "" {
		reason = n.GetLabel().String()
	}
	incoming := make([]string, len(n.IncomingActions))
	for i, ia := range n.IncomingActions {
		incoming[i] = fmt.Sprintf("%d:%s", ia.Delta, ia.Action)
	}
	words := make([]string, len(n.Words))
	for i, w := range n.Words {
		words[i] = w.Key()
	}
	return strings.Join([]string{reason, strings.Join(incoming, ","), strings.Join(words, ",")}, "|")
}

func colorFor(l search.Label) (fill, style string) {
	switch l {
	case search.Top:
		return "palegreen", "filled"
	case search.Bottom:
		return "lightpink", "filled"
	case search.Canceled:
		return "lightgray", "filled"
	default:
		return "white", "filled"
	}
}

// Flush renders the tree rooted at root to out in the given Graphviz
// format.
func (w *TreeWriter) Flush(out io.Writer, root *search.Node, format graphviz.Format) error {
	gv := graphviz.New()
	defer func() { _ = gv.Close() }()
	g, err := gv.Graph()
	if err != nil {
		return err
	}
	defer func() { _ = g.Close() }()
	g.SetRankDir(cgraph.RankDir(w.RankDir))

	mapping := map[*search.Node]*cgraph.Node{}
	id := 0
	var visit func(n *search.Node) error
	visit = func(n *search.Node) error {
		name := n.ID
		if name == "" {
			name = fmt.Sprintf("n%d", id)
		}
		gn, err := g.CreateNode(name)
		if err != nil {
			return err
		}
		id++
		gn.Set("shape", "record")
		gn.SetLabel(nodeRecord(n))
		gn.Set("fontname", string(w.Font))
		fill, style := colorFor(n.GetLabel())
		gn.Set("fillcolor", fill)
		gn.Set("style", style)
		mapping[n] = gn
		for _, c := range n.Children {
			if err := visit(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := visit(root); err != nil {
		return err
	}

	eid := 0
	var edges func(n *search.Node) error
	edges = func(n *search.Node) error {
		for _, c := range n.Children {
			e, err := g.CreateEdge(fmt.Sprintf("te%d", eid), mapping[n], mapping[c])
			if err != nil {
				return err
			}
			eid++
			e.SetLabel(incomingEdgeLabel(c))
			e.Set("fontname", string(w.Font))
			if err := edges(c); err != nil {
				return err
			}
		}
		return nil
	}
	if err := edges(root); err != nil {
		return err
	}

	return gv.Render(g, format, out)
}

func incomingEdgeLabel(c *search.Node) string {
	parts := make([]string, len(c.IncomingActions))
	for i, ia := range c.IncomingActions {
		parts[i] = strconv.Itoa(ia.Delta) + ":" + ia.Action
	}
	return strings.Join(parts, ",")
}
