package tui_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/graft/internal/presentation/tui"
	"github.com/aretw0/graft/pkg/animgraph"
	"github.com/aretw0/graft/pkg/domain"
)

func TestReport_Markdown(t *testing.T) {
	ctrl := animgraph.NewController("Fox FX")
	l := ctrl.NewLayer("Hat|Brim")
	l.Owner = "toggle Hat on Props"
	l.NewState("Off")
	params := animgraph.NewParamList()
	require.NoError(t, params.Add(animgraph.ParamEntry{Name: "Graft/Toggle/Hat", Kind: animgraph.Bool, Saved: true}))

	md := tui.Report{
		Avatar:   "Fox",
		BuildID:  "abc",
		Output:   &animgraph.Output{Controller: ctrl, Menu: animgraph.NewMenu(), Params: params},
		Warnings: []domain.Warning{{Feature: "toggle Hat on Props", Message: "renderer missing"}},
		Assets:   []string{"controller.yaml"},
	}.Markdown()

	for _, want := range []string{
		"# Fox",
		"`abc`",
		`| Hat\|Brim | toggle Hat on Props | 1 |`,
		"| Graft/Toggle/Hat | bool | 0 | true |",
		"1 of 256 bits used.",
		"- toggle Hat on Props: renderer missing",
		"1 assets written",
	} {
		assert.Contains(t, md, want)
	}
}

func TestPrint_PlainWhenPiped(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, tui.Print(&buf, "# Title\n"))
	assert.Equal(t, "# Title\n", buf.String())
	assert.False(t, tui.IsTerminal(&buf))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintError(&buf, errors.Join(errors.New("first"), errors.New("second")))
	out := buf.String()
	assert.Contains(t, out, "Build failed")
	assert.Equal(t, 1, strings.Count(out, "first"))
	assert.Contains(t, out, "second")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "0.1.0")
	assert.Contains(t, buf.String(), "0.1.0")
}
