// sweep-sandbox is an interactive terminal visualizer for the
// broadphase: bodies bounce inside a box, confirmed sweep pairs light
// up, and a steerable ray reports its closest hit. Purely a host-side
// harness; all simulation state lives out here, the library only sees
// Body references.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/fixstep/physics/broadphase"
	"github.com/fixstep/physics/shape"
	"github.com/fixstep/physics/vmath"
)

const (
	targetFPS   = 30
	framePeriod = time.Second / targetFPS
	hudRows     = 2

	layerDefault = 1
	layerHeavy   = 4
)

var (
	worldDepth  = vmath.FromFloat(4.0)
	bodyRadius  = vmath.FromFloat(1.6)
	speedMax    = vmath.FromFloat(9.0)
	dtFixed     = vmath.FromFloat(1.0 / targetFPS)
	rayTurnStep = vmath.FromFloat(1.2)
)

type sandbox struct {
	screen        tcell.Screen
	width, height int

	reg    *broadphase.Registry
	sweep  *broadphase.Sweep
	ray    *broadphase.Ray
	rng    *vmath.FastRand
	bodies []*shape.Sphere
	walls  []*shape.Box

	boundsX, boundsY int64

	// Pair state for this frame and the previous one, keyed by body
	// identity; a pair present now but not before triggers the blip
	pairs     map[[2]broadphase.Body]bool
	prevPairs map[[2]broadphase.Body]bool

	rayTip    vmath.Vec3
	rayHit    broadphase.RayHit
	rayFound  bool
	maskHeavy bool

	paused    bool
	audioInit bool
}

func newSandbox() (*sandbox, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}

	s := &sandbox{
		screen:    screen,
		rng:       vmath.NewFastRand(uint64(time.Now().UnixNano())),
		reg:       broadphase.NewRegistry(),
		pairs:     make(map[[2]broadphase.Body]bool),
		prevPairs: make(map[[2]broadphase.Body]bool),
	}
	s.width, s.height = screen.Size()
	s.boundsX = vmath.FromInt(s.width)
	s.boundsY = vmath.FromInt(s.height - hudRows)

	s.sweep = broadphase.NewSweep(s.reg)
	s.sweep.NarrowPhase = s.recordPair
	s.ray = broadphase.NewRay(s.reg, bodyLayer)

	s.rayTip = vmath.Vec3{X: s.boundsX, Y: s.boundsY >> 1}

	s.buildWalls()
	for i := 0; i < 14; i++ {
		s.spawnBody()
	}

	if err := s.initAudio(); err != nil {
		// Non-fatal, the sandbox runs silent
		log.Printf("audio init failed: %v", err)
	}
	return s, nil
}

// bodyLayer is the layer-lookup collaborator: big spheres are "heavy",
// everything else default
func bodyLayer(b broadphase.Body) (int, bool) {
	if sp, ok := b.(*shape.Sphere); ok {
		return sp.Layer, true
	}
	return 0, false
}

func (s *sandbox) initAudio() error {
	sampleRate := beep.SampleRate(44100)
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	if err == nil {
		s.audioInit = true
	}
	return err
}

func (s *sandbox) playPairBlip() {
	if !s.audioInit {
		return
	}
	sampleRate := beep.SampleRate(44100)
	duration := sampleRate.N(40 * time.Millisecond)
	sine, _ := generators.SineTone(sampleRate, 660)
	speaker.Play(beep.Take(duration, sine))
}

// buildWalls registers four static boxes just inside the view edges, so
// the sweep always has static bodies to prune against
func (s *sandbox) buildWalls() {
	thick := vmath.FromFloat(0.5)
	cx, cy := s.boundsX>>1, s.boundsY>>1
	specs := []struct {
		center vmath.Vec3
		half   vmath.Vec3
	}{
		{vmath.Vec3{X: cx}, vmath.Vec3{X: cx, Y: thick, Z: worldDepth}},
		{vmath.Vec3{X: cx, Y: s.boundsY}, vmath.Vec3{X: cx, Y: thick, Z: worldDepth}},
		{vmath.Vec3{Y: cy}, vmath.Vec3{X: thick, Y: cy, Z: worldDepth}},
		{vmath.Vec3{X: s.boundsX, Y: cy}, vmath.Vec3{X: thick, Y: cy, Z: worldDepth}},
	}
	for _, spec := range specs {
		w := shape.NewBox(spec.center, spec.half)
		w.Static = true
		if err := s.reg.Add(w); err != nil {
			log.Printf("wall registration: %v", err)
			continue
		}
		s.walls = append(s.walls, w)
	}
}

func (s *sandbox) spawnBody() {
	radius := bodyRadius + s.rng.Range(0, bodyRadius)
	sp := shape.NewSphere(vmath.Vec3{
		X: s.rng.Range(radius, s.boundsX-radius),
		Y: s.rng.Range(radius, s.boundsY-radius),
		Z: s.rng.Range(-worldDepth>>1, worldDepth>>1),
	}, radius)
	sp.Vel = vmath.Vec3{
		X: s.rng.Range(-speedMax, speedMax),
		Y: s.rng.Range(-speedMax, speedMax),
	}
	sp.Layer = layerDefault
	if radius > bodyRadius+(bodyRadius>>1) {
		sp.Layer = layerHeavy
	}
	if err := s.reg.Add(sp); err != nil {
		log.Printf("spawn: %v", err)
		return
	}
	s.bodies = append(s.bodies, sp)
}

func (s *sandbox) despawnBody() {
	if len(s.bodies) == 0 {
		return
	}
	last := s.bodies[len(s.bodies)-1]
	s.bodies = s.bodies[:len(s.bodies)-1]
	s.reg.Remove(last)
}

func (s *sandbox) recordPair(a, b broadphase.Body) {
	key := [2]broadphase.Body{a, b}
	s.pairs[key] = true
	if !s.prevPairs[key] && !s.prevPairs[[2]broadphase.Body{b, a}] {
		s.playPairBlip()
	}
}

func (s *sandbox) step() {
	if s.paused {
		return
	}

	for _, b := range s.bodies {
		b.Advance(dtFixed)
		bounceAxis(&b.Center.X, &b.Vel.X, b.Radius, s.boundsX-b.Radius)
		bounceAxis(&b.Center.Y, &b.Vel.Y, b.Radius, s.boundsY-b.Radius)
	}

	s.pairs, s.prevPairs = s.prevPairs, s.pairs
	clear(s.pairs)
	s.sweep.Detect()

	origin := vmath.Vec3{Y: s.boundsY >> 1, Z: 0}
	dir := vmath.V3Sub(s.rayTip, origin)
	if s.maskHeavy {
		s.rayHit, s.rayFound = s.ray.CastMasked(origin, dir, nil, 1<<layerHeavy)
	} else {
		s.rayHit, s.rayFound = s.ray.Cast(origin, dir, nil)
	}
}

// bounceAxis reflects one position component off [lo, hi]
func bounceAxis(pos, vel *int64, lo, hi int64) {
	if *pos < lo {
		*pos = lo
		if *vel < 0 {
			*vel = -*vel
		}
	}
	if *pos > hi {
		*pos = hi
		if *vel > 0 {
			*vel = -*vel
		}
	}
}

func (s *sandbox) inPair(b broadphase.Body) bool {
	for key := range s.pairs {
		if key[0] == b || key[1] == b {
			return true
		}
	}
	return false
}

func (s *sandbox) draw() {
	s.screen.Clear()

	wallStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	for _, w := range s.walls {
		s.drawBox(w.BoundingBox(), '#', wallStyle)
	}

	for _, b := range s.bodies {
		style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
		glyph := 'o'
		if b.Layer == layerHeavy {
			glyph = 'O'
			style = tcell.StyleDefault.Foreground(tcell.ColorBlue)
		}
		if s.inPair(b) {
			style = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
		}
		s.drawBox(b.BoundingBox(), glyph, style)
	}

	s.drawRay()
	s.drawHUD()
	s.screen.Show()
}

func (s *sandbox) drawBox(box vmath.AABB, glyph rune, style tcell.Style) {
	x0, y0 := vmath.ToInt(box.Min.X), vmath.ToInt(box.Min.Y)
	x1, y1 := vmath.ToInt(box.Max.X), vmath.ToInt(box.Max.Y)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if x >= 0 && x < s.width && y >= 0 && y < s.height-hudRows {
				s.screen.SetContent(x, y+hudRows, glyph, nil, style)
			}
		}
	}
}

func (s *sandbox) drawRay() {
	origin := vmath.Vec3{Y: s.boundsY >> 1}
	end := s.rayTip
	if s.rayFound {
		end = vmath.V3Lerp(origin, s.rayTip, s.rayHit.Fraction)
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	steps := s.width
	for i := 0; i <= steps; i++ {
		t := vmath.Div(vmath.FromInt(i), vmath.FromInt(steps))
		p := vmath.V3Lerp(origin, end, t)
		x, y := vmath.ToInt(p.X), vmath.ToInt(p.Y)
		if x >= 0 && x < s.width && y >= 0 && y < s.height-hudRows {
			s.screen.SetContent(x, y+hudRows, '·', nil, style)
		}
	}
	if s.rayFound {
		x, y := vmath.ToInt(end.X), vmath.ToInt(end.Y)
		if x >= 0 && x < s.width && y >= 0 && y < s.height-hudRows {
			s.screen.SetContent(x, y+hudRows, 'X',
				nil, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
		}
	}
}

func (s *sandbox) drawHUD() {
	mask := "off"
	if s.maskHeavy {
		mask = "heavy only"
	}
	hit := "-"
	if s.rayFound {
		hit = fmt.Sprintf("%.2f", vmath.ToFloat(s.rayHit.Fraction))
	}
	line := fmt.Sprintf("bodies %d  pairs %d  ray hit %s  mask %s",
		len(s.bodies), len(s.pairs), hit, mask)
	help := "[+/-] spawn  [arrows] aim  [m] mask  [space] pause  [q] quit"

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, r := range line {
		if i < s.width {
			s.screen.SetContent(i, 0, r, nil, style)
		}
	}
	for i, r := range help {
		if i < s.width {
			s.screen.SetContent(i, 1, r, nil, style.Dim(true))
		}
	}
}

func (s *sandbox) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		s.rayTip.Y -= rayTurnStep
	case tcell.KeyDown:
		s.rayTip.Y += rayTurnStep
	case tcell.KeyLeft:
		s.rayTip.X -= rayTurnStep
	case tcell.KeyRight:
		s.rayTip.X += rayTurnStep
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case ' ':
			s.paused = !s.paused
		case '+', '=':
			s.spawnBody()
		case '-':
			s.despawnBody()
		case 'm':
			s.maskHeavy = !s.maskHeavy
		}
	}
	s.rayTip.X = vmath.Clamp(s.rayTip.X, 0, s.boundsX)
	s.rayTip.Y = vmath.Clamp(s.rayTip.Y, 0, s.boundsY)
	return true
}

func (s *sandbox) run() {
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			events <- s.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !s.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				s.width, s.height = s.screen.Size()
				s.boundsX = vmath.FromInt(s.width)
				s.boundsY = vmath.FromInt(s.height - hudRows)
				s.screen.Sync()
			}
		case <-ticker.C:
			s.step()
			s.draw()
		}
	}
}

func main() {
	s, err := newSandbox()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sweep-sandbox: %v\n", err)
		os.Exit(1)
	}
	defer s.screen.Fini()
	s.run()
}
