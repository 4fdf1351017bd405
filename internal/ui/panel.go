package ui

import (
	"image/color"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"
)

// Layout, logical pixels.
const (
	PanelWidth   = 350.0
	Padding      = 20.0
	TitleHeight  = 30.0
	ButtonWidth  = 150.0
	ButtonHeight = 50.0
	ButtonMargin = 20.0
	LogHeight    = 300.0
	InfoHeight   = 120.0
	LineHeight   = 16.0
	WheelStep    = 3 * LineHeight
)

// PanelColor is the side menu background.
var PanelColor = color.RGBA{31, 46, 46, 204}

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Node places an entity in the menu tree. The root has a zero Parent.
type Node struct {
	Parent ecs.Entity
	Rect   Rect
	Depth  int
}

// Scrollable lets a node consume wheel deltas. Offset is measured from the
// bottom of the content, in pixels.
type Scrollable struct {
	Offset float64
	Max    float64
}

// ButtonState is the interaction state of a button.
type ButtonState uint8

const (
	Idle ButtonState = iota
	Hovered
	Pressed
)

func (s ButtonState) String() string {
	switch s {
	case Hovered:
		return "Hovered"
	case Pressed:
		return "Pressed"
	default:
		return "Idle"
	}
}

// RGB returns the button colour in [0, 1] channels.
func (s ButtonState) RGB() [3]float32 {
	switch s {
	case Hovered:
		return [3]float32{0.25, 0.25, 0.25}
	case Pressed:
		return [3]float32{0.35, 0.75, 0.35}
	default:
		return [3]float32{0.15, 0.15, 0.15}
	}
}

// Color returns the button colour as 8-bit RGBA.
func (s ButtonState) Color() color.RGBA {
	c := s.RGB()
	return color.RGBA{uint8(c[0]*255 + 0.5), uint8(c[1]*255 + 0.5), uint8(c[2]*255 + 0.5), 255}
}

// Button binds a node to an action.
type Button struct {
	Action Action
	State  ButtonState
}

// InfoBlock is a titled block of text lines.
type InfoBlock struct {
	Title string
	Lines []string
}

// Selection is what the info blocks describe.
type Selection struct {
	Planet      uint32
	HasPlanet   bool
	Explorer    uint32
	HasExplorer bool
}

// Panel is the right-docked side menu. Its nodes live in their own ECS world.
type Panel struct {
	World *ecs.World
	log   *slog.Logger
	queue *CommandQueue

	side, title, logView     ecs.Entity
	planetInfo, explorerInfo ecs.Entity
	buttons                  []ecs.Entity

	nodes      *ecs.Map[Node]
	buttonMap  *ecs.Map[Button]
	scrolls    *ecs.Map[Scrollable]
	infos      *ecs.Map[InfoBlock]
	nodeFilter *ecs.Filter1[Node]
	btnFilter  *ecs.Filter2[Node, Button]

	Selection Selection
	logTotal  uint64
}

// NewPanel builds the menu tree for a w×h logical screen.
func NewPanel(w, h float64, queue *CommandQueue, logger *slog.Logger) *Panel {
	if logger == nil {
		logger = slog.Default()
	}
	if queue == nil {
		queue = &CommandQueue{}
	}
	world := ecs.NewWorld(64)
	p := &Panel{
		World:      world,
		log:        logger.With("component", "ui"),
		queue:      queue,
		nodes:      ecs.NewMap[Node](world),
		buttonMap:  ecs.NewMap[Button](world),
		scrolls:    ecs.NewMap[Scrollable](world),
		infos:      ecs.NewMap[InfoBlock](world),
		nodeFilter: ecs.NewFilter1[Node](world),
		btnFilter:  ecs.NewFilter2[Node, Button](world),
	}

	root := p.nodes.NewEntity(&Node{Rect: Rect{W: w, H: h}})
	p.side = p.AddNode(root, Rect{X: w - PanelWidth, W: PanelWidth, H: h})
	p.scrolls.Add(p.side, &Scrollable{})

	x := w - PanelWidth + Padding
	y := Padding
	p.title = p.AddNode(p.side, Rect{X: x, Y: y, W: PanelWidth - 2*Padding, H: TitleHeight})
	y += TitleHeight

	for _, a := range MenuActions {
		y += ButtonMargin
		b := p.AddNode(p.side, Rect{X: x, Y: y, W: ButtonWidth, H: ButtonHeight})
		p.buttonMap.Add(b, &Button{Action: a})
		p.buttons = append(p.buttons, b)
		y += ButtonHeight
	}

	y += ButtonMargin
	p.logView = p.AddNode(p.side, Rect{X: x, Y: y, W: PanelWidth - 2*Padding, H: LogHeight})
	p.scrolls.Add(p.logView, &Scrollable{})
	y += LogHeight

	y += ButtonMargin
	p.planetInfo = p.AddNode(p.side, Rect{X: x, Y: y, W: PanelWidth - 2*Padding, H: InfoHeight})
	p.infos.Add(p.planetInfo, &InfoBlock{Title: "Planet", Lines: []string{"No planet selected"}})
	y += InfoHeight

	y += ButtonMargin
	p.explorerInfo = p.AddNode(p.side, Rect{X: x, Y: y, W: PanelWidth - 2*Padding, H: InfoHeight})
	p.infos.Add(p.explorerInfo, &InfoBlock{Title: "Explorer", Lines: []string{"No explorer selected"}})

	return p
}

// AddNode attaches a child node under parent.
func (p *Panel) AddNode(parent ecs.Entity, r Rect) ecs.Entity {
	depth := p.nodes.Get(parent).Depth + 1
	return p.nodes.NewEntity(&Node{Parent: parent, Rect: r, Depth: depth})
}

// MakeScrollable lets node e consume up to max pixels of scroll.
func (p *Panel) MakeScrollable(e ecs.Entity, max float64) {
	if p.scrolls.Has(e) {
		p.scrolls.Get(e).Max = max
		return
	}
	p.scrolls.Add(e, &Scrollable{Max: max})
}

// Queue returns the command queue buttons push into.
func (p *Panel) Queue() *CommandQueue { return p.queue }

// Side and LogView expose tree nodes.
func (p *Panel) Side() ecs.Entity { return p.side }
func (p *Panel) LogView() ecs.Entity { return p.logView }

// Rect returns the rectangle of node e.
func (p *Panel) Rect(e ecs.Entity) Rect { return p.nodes.Get(e).Rect }

// SideRect, TitleRect and LogRect return layout rectangles for drawing.
func (p *Panel) SideRect() Rect  { return p.Rect(p.side) }
func (p *Panel) TitleRect() Rect { return p.Rect(p.title) }
func (p *Panel) LogRect() Rect   { return p.Rect(p.logView) }

// Covers reports whether a screen point is over the menu.
func (p *Panel) Covers(x, y float64) bool {
	return p.SideRect().Contains(x, y)
}

// UpdatePointer runs the button colour machine for one frame. A button
// enters Pressed on a fresh click over it and stays Pressed while the button
// is held; the action is queued once per entry into Pressed.
func (p *Panel) UpdatePointer(x, y float64, down, justPressed bool) {
	var fired []Action
	q := p.btnFilter.Query()
	for q.Next() {
		n, b := q.Get()
		next := Idle
		if n.Rect.Contains(x, y) {
			switch {
			case justPressed, down && b.State == Pressed:
				next = Pressed
			default:
				next = Hovered
			}
		}
		if next == Pressed && b.State != Pressed {
			fired = append(fired, b.Action)
		}
		b.State = next
	}
	for _, a := range fired {
		p.queue.Push(a)
		p.log.Debug("button pressed", "action", a)
	}
}

// ButtonView is a button ready to draw.
type ButtonView struct {
	Rect   Rect
	Action Action
	State  ButtonState
}

// Buttons returns the buttons in menu order.
func (p *Panel) Buttons() []ButtonView {
	out := make([]ButtonView, 0, len(p.buttons))
	for _, e := range p.buttons {
		b := p.buttonMap.Get(e)
		out = append(out, ButtonView{Rect: p.Rect(e), Action: b.Action, State: b.State})
	}
	return out
}

// Hit returns the deepest node containing the point.
func (p *Panel) Hit(x, y float64) ecs.Entity {
	var best ecs.Entity
	bestDepth := -1
	q := p.nodeFilter.Query()
	for q.Next() {
		n := q.Get()
		if n.Depth > bestDepth && n.Rect.Contains(x, y) {
			best, bestDepth = q.Entity(), n.Depth
		}
	}
	return best
}

// Wheel routes a wheel delta to the node under the pointer. It returns the
// part of delta no scrollable consumed.
func (p *Panel) Wheel(x, y, delta float64) float64 {
	target := p.Hit(x, y)
	if target.IsZero() {
		return delta
	}
	return p.Scroll(target, delta)
}

// Scroll walks from target to the root. Every scrollable on the way takes as
// much of delta as its range allows and passes the rest to its parent.
func (p *Panel) Scroll(target ecs.Entity, delta float64) float64 {
	for e := target; !e.IsZero() && delta != 0; e = p.nodes.Get(e).Parent {
		if !p.scrolls.Has(e) {
			continue
		}
		s := p.scrolls.Get(e)
		next := min(max(s.Offset+delta, 0), s.Max)
		delta -= next - s.Offset
		s.Offset = next
	}
	return delta
}

// ScrollOffset returns the offset of a scrollable node.
func (p *Panel) ScrollOffset(e ecs.Entity) float64 {
	if !p.scrolls.Has(e) {
		return 0
	}
	return p.scrolls.Get(e).Offset
}

// VisibleLogLines is how many log lines fit in the viewport.
func (p *Panel) VisibleLogLines() int {
	return int(math.Floor(LogHeight / LineHeight))
}

// SetLogLines tells the viewport how many lines the log holds and how many
// were ever added. A viewport pinned to the newest line follows new lines;
// one scrolled up keeps showing the same lines.
func (p *Panel) SetLogLines(held int, total uint64) {
	s := p.scrolls.Get(p.logView)
	s.Max = max(0, float64(held-p.VisibleLogLines())*LineHeight)
	if total > p.logTotal && s.Offset > 0 {
		s.Offset += float64(total-p.logTotal) * LineHeight
	}
	s.Offset = min(s.Offset, s.Max)
	p.logTotal = total
}

// LogSkip is the number of newest lines hidden below the viewport.
func (p *Panel) LogSkip() int {
	return int(p.scrolls.Get(p.logView).Offset / LineHeight)
}

// SetPlanetInfo and SetExplorerInfo replace the info block texts.
func (p *Panel) SetPlanetInfo(lines []string) {
	p.infos.Get(p.planetInfo).Lines = lines
}

func (p *Panel) SetExplorerInfo(lines []string) {
	p.infos.Get(p.explorerInfo).Lines = lines
}

// InfoView is an info block ready to draw.
type InfoView struct {
	Rect  Rect
	Block InfoBlock
}

// InfoBlocks returns the planet block then the explorer block.
func (p *Panel) InfoBlocks() []InfoView {
	return []InfoView{
		{Rect: p.Rect(p.planetInfo), Block: *p.infos.Get(p.planetInfo)},
		{Rect: p.Rect(p.explorerInfo), Block: *p.infos.Get(p.explorerInfo)},
	}
}

// SelectPlanet and SelectExplorer update the selection.
func (p *Panel) SelectPlanet(id uint32) {
	p.Selection.Planet, p.Selection.HasPlanet = id, true
	p.log.Debug("planet selected", "planet", id)
}

func (p *Panel) SelectExplorer(id uint32) {
	p.Selection.Explorer, p.Selection.HasExplorer = id, true
	p.log.Debug("explorer selected", "explorer", id)
}

// ClearSelection forgets both selections.
func (p *Panel) ClearSelection() {
	p.Selection = Selection{}
}
