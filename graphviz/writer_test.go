package graphviz_test

import (
	"bytes"
	"strings"
	"testing"

	gographviz "github.com/goccy/go-graphviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtctrl/rtctrl"
	"github.com/rtctrl/rtctrl/graphviz"
	"github.com/rtctrl/rtctrl/search"
)

func samplePlant() *rtctrl.TA {
	return rtctrl.NewTA("plant").
		WithLocations("p0", "p1").
		WithClocks("x").
		WithAlphabet("a").
		WithInitial("p0").
		WithAccepting("p1").
		WithTransition(rtctrl.Transition{
			From: "p0", To: "p1", Symbol: "a",
			Guard: rtctrl.Guard{{Clock: "x", Op: rtctrl.Ge, K: 1}},
			Reset: []string{"x"},
		})
}

func TestTAWriterFlushRendersEveryLocationAndTransition(t *testing.T) {
	ta := samplePlant()
	w := graphviz.NewTAWriter(&graphviz.Config{Font: graphviz.Helvetica, RankDir: graphviz.LeftToRight})

	buf := new(bytes.Buffer)
	err := w.Flush(buf, ta, gographviz.XDOT)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "p0")
	assert.Contains(t, out, "p1")
	assert.Contains(t, out, "doublecircle")
}

func TestTAWriterFlushRejectsDanglingTransition(t *testing.T) {
	ta := rtctrl.NewTA("plant").WithLocations("p0").WithInitial("p0").
		WithTransition(rtctrl.Transition{From: "p0", To: "nowhere", Symbol: "a"})
	w := graphviz.NewTAWriter(nil)

	err := w.Flush(new(bytes.Buffer), ta, gographviz.XDOT)
	require.Error(t, err)
	assert.ErrorIs(t, err, rtctrl.ErrInvalidInput)
}

func sampleTree() *search.Node {
	root := &search.Node{Words: []rtctrl.Word{{}}}
	child := &search.Node{
		Parent:          root,
		Words:           []rtctrl.Word{{}},
		Label:           search.Top,
		LabelReason:     "accepting",
		IncomingActions: []search.IncomingAction{{Delta: 2, Action: "a"}},
	}
	root.Children = []*search.Node{child}
	return root
}

func TestTreeWriterFlushRendersRecordNodesWithReasonIncomingAndWords(t *testing.T) {
	root := sampleTree()
	w := graphviz.NewTreeWriter(&graphviz.Config{Font: graphviz.Helvetica})

	buf := new(bytes.Buffer)
	err := w.Flush(buf, root, gographviz.XDOT)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "record")
	assert.Contains(t, out, "accepting")
	assert.Contains(t, out, "2:a")
	assert.True(t, strings.Contains(out, "palegreen") || strings.Contains(out, "white"))
}
