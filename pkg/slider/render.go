package slider

import (
	"github.com/mchmarny/slidemenu/pkg/view"
)

// node is the slider's visual node: the paintable panels, translated by
// their current offsets, clipped to the container height.
type node struct {
	s *Slider
}

func (n *node) Render(width int) string {
	s := n.s
	now := s.sched.Now()

	out := ""
	for _, p := range s.tree.Panels {
		if !p.paintable {
			continue
		}
		offset := p.Offset(now) * width / 100
		out = view.Place(out, p.Render(width), offset, width)
	}
	return view.Fit(out, s.HeightAt(now))
}

// Attrs exposes the accessibility state of every panel.
func (s *Slider) Attrs() []map[string]string {
	out := make([]map[string]string, 0, len(s.tree.Panels))
	for _, p := range s.tree.Panels {
		out = append(out, p.Attrs())
	}
	return out
}
