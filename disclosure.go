package chatmbti

import "strings"

// Panel identifies one collapsible display region.
type Panel string

// Panel identifiers.
const (
	PanelOverview   Panel = "overview"
	PanelLabel      Panel = "label"
	PanelTraits     Panel = "traits"
	PanelEvidence   Panel = "evidence"
	PanelConfidence Panel = "confidence"
	PanelMetadata   Panel = "metadata"
	PanelReport     Panel = "report"
	PanelPersona    Panel = "persona"
)

// Panels lists every panel in display order.
var Panels = []Panel{
	PanelOverview,
	PanelLabel,
	PanelTraits,
	PanelEvidence,
	PanelConfidence,
	PanelMetadata,
	PanelReport,
	PanelPersona,
}

// Measurer computes the natural extent of rendered panel content, in rows.
type Measurer interface {
	Measure(content string) int
}

// LineMeasurer counts newline-separated lines. Empty content measures 0.
type LineMeasurer struct{}

// Measure implements Measurer.
func (LineMeasurer) Measure(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}

// DisclosureState is the visibility of one panel. Extent is the measured
// content extent while open and 0 while closed.
type DisclosureState struct {
	Open   bool
	Extent int
}

type disclosurePanel struct {
	state   DisclosureState
	content string
}

// Disclosure owns the open/closed state of every panel. It is not safe for
// concurrent use; a single owner drives it.
type Disclosure struct {
	measurer Measurer
	panels   map[Panel]*disclosurePanel
}

// NewDisclosure returns a Disclosure with every panel closed except the
// given ones. A nil measurer counts lines.
func NewDisclosure(m Measurer, open ...Panel) *Disclosure {
	if m == nil {
		m = LineMeasurer{}
	}
	d := &Disclosure{
		measurer: m,
		panels:   make(map[Panel]*disclosurePanel, len(Panels)),
	}
	for _, p := range Panels {
		d.panels[p] = &disclosurePanel{}
	}
	for _, p := range open {
		d.Open(p)
	}
	return d
}

// DefaultDisclosure returns a Disclosure with only the overview open.
func DefaultDisclosure(m Measurer) *Disclosure {
	return NewDisclosure(m, PanelOverview)
}

// State returns the current state of p. Unknown panels report closed.
func (d *Disclosure) State(p Panel) DisclosureState {
	if dp, ok := d.panels[p]; ok {
		return dp.state
	}
	return DisclosureState{}
}

// IsOpen reports whether p is open.
func (d *Disclosure) IsOpen(p Panel) bool {
	return d.State(p).Open
}

// Toggle flips p between open and closed and returns the new state.
// Opening measures the stored content; closing zeroes the extent.
func (d *Disclosure) Toggle(p Panel) DisclosureState {
	dp, ok := d.panels[p]
	if !ok {
		return DisclosureState{}
	}
	if dp.state.Open {
		dp.state = DisclosureState{}
	} else {
		dp.state = DisclosureState{Open: true, Extent: d.measurer.Measure(dp.content)}
	}
	return dp.state
}

// Open opens p if it is closed. An already open panel is re-measured.
func (d *Disclosure) Open(p Panel) DisclosureState {
	dp, ok := d.panels[p]
	if !ok {
		return DisclosureState{}
	}
	dp.state = DisclosureState{Open: true, Extent: d.measurer.Measure(dp.content)}
	return dp.state
}

// SetContent replaces the content of p. An open panel is re-measured; a
// closed panel only stores the content for its next opening.
func (d *Disclosure) SetContent(p Panel, content string) DisclosureState {
	dp, ok := d.panels[p]
	if !ok {
		return DisclosureState{}
	}
	dp.content = content
	if dp.state.Open {
		dp.state.Extent = d.measurer.Measure(content)
	}
	return dp.state
}
