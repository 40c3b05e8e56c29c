package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/graft/pkg/animgraph"
)

// GraphOverlay contains simulator state to visualize on the graph.
type GraphOverlay struct {
	// Current maps a layer name to its active state name.
	Current map[string]string
}

// GenerateMermaid produces a Mermaid flowchart with one subgraph per layer.
// It applies semantic styling:
// - Default state: ((Circle))
// - Blend tree: [[Subroutine]]
// - No motion: [/Parallelogram/]
// - Clip: [Rectangle]
// Any-state transitions leave a shared "Any" node per layer with dotted arrows.
func GenerateMermaid(ctrl *animgraph.Controller, layers []string, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	only := make(map[string]bool, len(layers))
	for _, name := range layers {
		only[name] = true
	}

	var current []string
	for li, layer := range ctrl.Layers {
		if len(only) > 0 && !only[layer.Name] {
			continue
		}
		ids := make(map[*animgraph.State]string)
		for si, s := range layer.States() {
			ids[s] = fmt.Sprintf("L%d_S%d", li, si)
		}
		exitID := fmt.Sprintf("L%d_Exit", li)
		anyID := fmt.Sprintf("L%d_Any", li)

		sb.WriteString(fmt.Sprintf("    subgraph L%d[\"%s\"]\n", li, escape(layer.Name)))
		for _, s := range layer.States() {
			opener, closer := "[", "]"
			switch {
			case s == layer.StateMachine.Default:
				opener, closer = "((", "))"
			case s.Motion == nil:
				opener, closer = "[/", "/]"
			default:
				if _, ok := s.Motion.(*animgraph.BlendTree); ok {
					opener, closer = "[[", "]]"
				}
			}
			sb.WriteString(fmt.Sprintf("        %s%s\"%s\"%s\n", ids[s], opener, escape(s.Name), closer))
			if overlay != nil && overlay.Current[layer.Name] == s.Name {
				current = append(current, ids[s])
			}
		}

		target := func(d animgraph.Destination) string {
			switch {
			case d.State != nil:
				return ids[d.State]
			case d.Machine != nil && d.Machine.Default != nil:
				return ids[d.Machine.Default]
			default:
				return exitID
			}
		}
		usesExit := false
		for _, m := range layer.StateMachine.AllMachines() {
			if len(m.AnyState) > 0 {
				sb.WriteString(fmt.Sprintf("        %s{{\"Any State\"}}\n", anyID))
			}
			for _, tr := range m.AnyState {
				usesExit = usesExit || tr.Dest.Exit
				sb.WriteString(fmt.Sprintf("        %s %s %s\n", anyID, arrow(tr, true), target(tr.Dest)))
			}
			for _, s := range m.States {
				for _, tr := range s.Transitions {
					usesExit = usesExit || tr.Dest.Exit
					sb.WriteString(fmt.Sprintf("        %s %s %s\n", ids[s], arrow(tr, false), target(tr.Dest)))
				}
			}
		}
		if usesExit {
			sb.WriteString(fmt.Sprintf("        %s(((\"Exit\")))\n", exitID))
		}
		sb.WriteString("    end\n")
	}

	if len(current) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		for _, id := range current {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", id))
		}
	}

	return sb.String()
}

func arrow(tr *animgraph.Transition, dotted bool) string {
	var parts []string
	for _, c := range tr.Conditions {
		parts = append(parts, c.String())
	}
	if tr.HasExitTime {
		parts = append(parts, fmt.Sprintf("exit %g", tr.ExitTime))
	}
	if len(parts) == 0 {
		if dotted {
			return "-.->"
		}
		return "-->"
	}
	label := escape(strings.Join(parts, " && "))
	if dotted {
		return fmt.Sprintf("-. \"%s\" .->", label)
	}
	return fmt.Sprintf("-- \"%s\" -->", label)
}

// escape replaces double quotes so labels stay inside Mermaid's quoting.
func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
