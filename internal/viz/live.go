package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/control"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/dynamics"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/sim"
	"github.com/maxwell-lucas2/Drone-controller-explorer/internal/traj"
)

const (
	planWidth       = 64
	planHeight      = 20
	attWidth        = 24
	attHeight       = 7
	historyCapacity = 600
	planHalfSpan    = 8.0
	axisDecay       = 0.82
	windStep        = 0.25
)

type TickMsg time.Time

type styleSet struct {
	canvas lipgloss.Style
	stats  lipgloss.Style
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	accent lipgloss.Style
	good   lipgloss.Style
	warn   lipgloss.Style
	bad    lipgloss.Style
	graph  lipgloss.Style
	help   lipgloss.Style
}

func makeStyles(t Theme) styleSet {
	return styleSet{
		canvas: lipgloss.NewStyle().Padding(1, 2).Foreground(t.Primary),
		stats: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).Width(46),
		header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:  lipgloss.NewStyle().Foreground(t.Muted).Width(11),
		value:  lipgloss.NewStyle().Foreground(t.Text),
		accent: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		good:   lipgloss.NewStyle().Foreground(t.Good).Bold(true),
		warn:   lipgloss.NewStyle().Foreground(t.Warn).Bold(true),
		bad:    lipgloss.NewStyle().Foreground(t.Bad).Bold(true),
		graph:  lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:   lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
	}
}

// Model is the interactive flight deck. It owns the bench and advances
// it at the host frame rate; every keyboard command maps onto one bench
// operation, so the display can never observe a half-applied change.
type Model struct {
	bench *sim.Bench

	plan   *Canvas
	att    *Canvas
	attCam *Camera

	styles styleSet

	trail   []dynamics.Vec3
	altHist []float64
	refHist []float64

	axes traj.Axes

	notice    string
	recording bool
	frames    []*image.Paletted
	gifPath   string
	showHelp  bool
}

func NewModel(bench *sim.Bench) Model {
	cam := NewCamera()
	cam.RotX = -0.45

	return Model{
		bench:   bench,
		plan:    NewCanvas(planWidth, planHeight),
		att:     NewCanvas(attWidth, attHeight),
		attCam:  cam,
		styles:  makeStyles(CurrentTheme),
		trail:   make([]dynamics.Vec3, 0, historyCapacity),
		altHist: make([]float64, 0, historyCapacity),
		refHist: make([]float64, 0, historyCapacity),
		gifPath: "flight.gif",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key := msg.String(); key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}
		m.handleKey(msg.String())
	case TickMsg:
		m.axes = traj.Axes{
			X:   m.axes.X * axisDecay,
			Y:   m.axes.Y * axisDecay,
			Z:   m.axes.Z * axisDecay,
			Yaw: m.axes.Yaw * axisDecay,
		}
		m.bench.SetKeyboardAxes(m.axes)
		m.bench.Frame()
		m.pushHistory()
		m.draw()
		if m.recording {
			m.captureFrame()
		}
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) handleKey(key string) {
	m.notice = ""

	switch key {
	case " ":
		m.bench.TogglePause()
	case "r":
		m.bench.Reset()
		m.trail = m.trail[:0]
		m.altHist = m.altHist[:0]
		m.refHist = m.refHist[:0]
		m.axes = traj.Axes{}
	case "1":
		m.switchAlgorithm(control.PIDControl)
	case "2":
		m.switchAlgorithm(control.SMCControl)
	case "3":
		m.switchAlgorithm(control.STSControl)
	case "4":
		m.switchAlgorithm(control.MPCControl)
	case "p", "P":
		m.cyclePattern(key == "p")
	case "]":
		m.setWind(m.bench.WindIntensity() + windStep)
	case "[":
		m.setWind(m.bench.WindIntensity() - windStep)
	case "+", "=":
		if err := m.bench.SetTimeScale(math.Min(8, m.bench.TimeScale()*2)); err != nil {
			m.notice = err.Error()
		}
	case "-", "_":
		if err := m.bench.SetTimeScale(math.Max(0.125, m.bench.TimeScale()/2)); err != nil {
			m.notice = err.Error()
		}
	case "t":
		names := ThemeNames()
		for i, name := range names {
			if name == CurrentTheme.Name {
				SetTheme(names[(i+1)%len(names)])
				break
			}
		}
		m.styles = makeStyles(CurrentTheme)
	case "g":
		if m.recording {
			if err := m.saveGIF(); err != nil {
				m.notice = err.Error()
			}
			m.recording = false
			m.frames = nil
		} else {
			m.recording = true
			m.frames = make([]*image.Paletted, 0)
		}
	case "?":
		m.showHelp = !m.showHelp

	// Manual flight axes, only meaningful on the keyboard pattern.
	case "w":
		m.axes.Z = 1
	case "s":
		m.axes.Z = -1
	case "a":
		m.axes.X = -1
	case "d":
		m.axes.X = 1
	case "up":
		m.axes.Y = 1
	case "down":
		m.axes.Y = -1
	case "left":
		m.axes.Yaw = 1
	case "right":
		m.axes.Yaw = -1
	case "x":
		m.axes = traj.Axes{}
	}
}

func (m *Model) switchAlgorithm(a control.Algorithm) {
	if err := m.bench.SetAlgorithm(a); err != nil {
		m.notice = err.Error()
	}
}

func (m *Model) cyclePattern(forward bool) {
	p := m.bench.Pattern()
	for i := 0; i < int(traj.Keyboard)+1; i++ {
		if forward {
			p++
			if p > traj.Keyboard {
				p = traj.Hover
			}
		} else {
			if p == traj.Hover {
				p = traj.Keyboard
			} else {
				p--
			}
		}
		if err := m.bench.SetPattern(p); err != nil {
			// Custom without waypoints is refused; skip past it.
			m.notice = err.Error()
			continue
		}
		m.trail = m.trail[:0]
		return
	}
}

func (m *Model) setWind(v float64) {
	if v < 0 {
		v = 0
	}
	if err := m.bench.SetWindIntensity(v); err != nil {
		m.notice = err.Error()
	}
}

func (m *Model) pushHistory() {
	snap := m.bench.State()
	sp := m.bench.Setpoint()

	m.trail = append(m.trail, snap.Position)
	if len(m.trail) > historyCapacity {
		m.trail = m.trail[1:]
	}

	m.altHist = append(m.altHist, snap.Position.Y)
	if len(m.altHist) > historyCapacity {
		m.altHist = m.altHist[1:]
	}
	m.refHist = append(m.refHist, sp.Pos.Y)
	if len(m.refHist) > historyCapacity {
		m.refHist = m.refHist[1:]
	}
}

func (m *Model) draw() {
	m.plan.Clear()
	vp := NewViewport(-planHalfSpan, planHalfSpan, -planHalfSpan, planHalfSpan, m.plan)

	snap := m.bench.State()
	sp := m.bench.Setpoint()

	// Reference path, dotted.
	if m.bench.Pattern().Analytic() {
		preview := m.bench.PreviewPattern(m.bench.Pattern(), 180, 14)
		for i := 0; i < len(preview); i += 2 {
			x, y := vp.Map(preview[i].X, preview[i].Z)
			m.plan.Set(x, y)
		}
	}

	// Flown trail.
	for _, p := range m.trail {
		x, y := vp.Map(p.X, p.Z)
		m.plan.Set(x, y)
	}

	// Prediction dots under the receding-horizon law.
	for _, p := range m.bench.MPCHorizon() {
		x, y := vp.Map(p.X, p.Z)
		m.plan.Set(x, y)
	}

	// Setpoint cross.
	sx, sy := vp.Map(sp.Pos.X, sp.Pos.Z)
	m.plan.Set(sx-2, sy)
	m.plan.Set(sx+2, sy)
	m.plan.Set(sx, sy-2)
	m.plan.Set(sx, sy+2)

	// Vehicle marker with heading tick.
	vx, vy := vp.Map(snap.Position.X, snap.Position.Z)
	m.plan.Mark(vx, vy, 1)
	yaw := snap.Attitude.Z
	hx := vx + int(6*math.Sin(yaw))
	hy := vy - int(6*math.Cos(yaw))
	m.plan.DrawLine(vx, vy, hx, hy)

	// Attitude panel.
	m.att.Clear()
	wf := AttitudeWireframe(snap.Attitude.X, snap.Attitude.Y, snap.Attitude.Z)
	Render3D(m.att, wf, m.attCam)
}

func (m Model) View() string {
	s := m.styles
	snap := m.bench.State()
	sp := m.bench.Setpoint()
	tl := m.bench.Telemetry()
	par := m.bench.Params()

	var right strings.Builder

	right.WriteString(s.header.Render("FLIGHT DECK") + "\n")

	status := s.good.Render("RUNNING")
	if m.bench.Paused() {
		status = s.warn.Render("PAUSED")
	}
	if m.bench.Saturated() {
		status += " " + s.bad.Render("SAT")
	}
	if m.recording {
		status += " " + s.bad.Render("REC")
	}
	right.WriteString(status + "\n\n")

	right.WriteString(m.att.String())
	right.WriteString("\n")

	right.WriteString(s.label.Render("Law") + s.accent.Render(strings.ToUpper(m.bench.Algorithm().String())) + "\n")
	right.WriteString(s.label.Render("Pattern") + s.value.Render(m.bench.Pattern().String()) + "\n")
	right.WriteString(s.label.Render("Time") + s.value.Render(fmt.Sprintf("%7.2f s  x%.2g", m.bench.Time(), m.bench.TimeScale())) + "\n")
	right.WriteString(s.label.Render("Wind") + s.value.Render(fmt.Sprintf("%.2f", m.bench.WindIntensity())) + "\n")

	err := snap.Position.Dist(sp.Pos)
	errStr := s.value.Render(fmt.Sprintf("%.3f m", err))
	if err > 0.5 {
		errStr = s.warn.Render(fmt.Sprintf("%.3f m", err))
	}
	right.WriteString(s.label.Render("Error") + errStr + "\n")
	right.WriteString(s.label.Render("Pos") + s.value.Render(fmt.Sprintf("%6.2f %6.2f %6.2f", snap.Position.X, snap.Position.Y, snap.Position.Z)) + "\n")
	right.WriteString(s.label.Render("Ref") + s.value.Render(fmt.Sprintf("%6.2f %6.2f %6.2f", sp.Pos.X, sp.Pos.Y, sp.Pos.Z)) + "\n")

	deg := 180 / math.Pi
	right.WriteString(s.label.Render("Attitude") + s.value.Render(fmt.Sprintf("%5.1f° %5.1f° %5.1f°",
		snap.Attitude.X*deg, snap.Attitude.Y*deg, snap.Attitude.Z*deg)) + "\n")
	right.WriteString(s.label.Render("Thrust") + s.value.Render(fmt.Sprintf("%.2f N (hover %.2f)", tl.Thrust, par.HoverThrust())) + "\n")

	switch m.bench.Algorithm() {
	case control.SMCControl, control.STSControl:
		sf := m.bench.SlidingSurfaces()
		right.WriteString(s.label.Render("Surfaces") + s.value.Render(fmt.Sprintf("%6.3f %6.3f %6.3f", sf.X, sf.Y, sf.Z)) + "\n")
	case control.MPCControl:
		right.WriteString(s.label.Render("Horizon") + s.value.Render(fmt.Sprintf("%d samples", len(m.bench.MPCHorizon()))) + "\n")
	}

	right.WriteString("\n")
	for i, w := range snap.Motors {
		frac := 0.0
		if par.MotorMax > 0 {
			frac = w / par.MotorMax
		}
		right.WriteString(s.label.Render(fmt.Sprintf("M%d", i+1)) + ProgressBar(frac, 14) + s.value.Render(fmt.Sprintf(" %6.0f", w)) + "\n")
	}

	if m.notice != "" {
		right.WriteString("\n" + s.bad.Render(m.notice) + "\n")
	}

	right.WriteString(s.help.Render("\n1-4 law  p pattern  [ ] wind  +/- speed\nwasd/arrows fly  space pause  r reset\nt theme  g gif  ? help  q quit"))

	left := s.canvas.Render(m.plan.String())
	if len(m.altHist) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.refHist, m.altHist},
			asciigraph.Height(5),
			asciigraph.Width(planWidth-8),
			asciigraph.Caption("altitude [m]"),
			asciigraph.SeriesColors(asciigraph.Gray, asciigraph.Green),
		)
		left = lipgloss.JoinVertical(lipgloss.Left, left, s.graph.Render(chart))
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, s.stats.Render(right.String()))
	if m.showHelp {
		return helpScreen + "\n\n" + main
	}
	return main
}

const helpScreen = `
╔════════════════════════════════════════╗
║           KEYBOARD REFERENCE           ║
╠════════════════════════════════════════╣
║  1-4      Switch control law           ║
║  p / P    Next / previous pattern      ║
║  w a s d  Fly north/west/south/east    ║
║  ↑ / ↓    Climb / descend              ║
║  ← / →    Yaw left / right             ║
║  x        Zero the manual axes         ║
║  [ / ]    Wind down / up               ║
║  - / +    Halve / double time scale    ║
║  Space    Pause                        ║
║  r        Reset flight                 ║
║  g        Toggle GIF recording         ║
║  t        Cycle themes                 ║
║  ?        Toggle this help             ║
║  q        Quit                         ║
╚════════════════════════════════════════╝`

func (m *Model) captureFrame() {
	charW, charH := 8, 16
	imgW, imgH := planWidth*charW, planHeight*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), color.Palette{color.Black, color.White})

	for row := 0; row < planHeight; row++ {
		for col := 0; col < planWidth; col++ {
			r := m.plan.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			dotW, dotH := charW/2, charH/4
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, 1)
						}
					}
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 2)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
