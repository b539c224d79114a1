package engine

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/asciifield/config"
	"github.com/lixenwraith/asciifield/core"
	"github.com/lixenwraith/asciifield/editor"
	"github.com/lixenwraith/asciifield/input"
	"github.com/lixenwraith/asciifield/player"
)

type fakeTicker struct {
	c       chan time.Time
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }
func (t *fakeTicker) Stop()               { t.stopped = true }

type testSession struct {
	*Context
	screen  tcell.SimulationScreen
	clock   *MockTimeProvider
	tickers []*fakeTicker
}

func newTestSession(t *testing.T, opts Options) *testSession {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init simulation screen: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.Field.Columns, cfg.Field.Rows = 20, 10

	s := &testSession{screen: screen, clock: NewMockTimeProvider(time.Unix(1000, 0))}
	opts.Clock = s.clock
	opts.NewTicker = func(time.Duration) player.Ticker {
		ft := &fakeTicker{c: make(chan time.Time)}
		s.tickers = append(s.tickers, ft)
		return ft
	}

	ctx, err := NewContext(screen, cfg, opts)
	if err != nil {
		t.Fatalf("NewContext failed: %v", err)
	}
	t.Cleanup(ctx.Close)
	s.Context = ctx
	return s
}

func (s *testSession) key(t *testing.T, ev *tcell.EventKey) {
	t.Helper()
	if err := s.HandleEvent(ev); err != nil {
		t.Fatalf("HandleEvent failed: %v", err)
	}
}

func (s *testSession) click(t *testing.T, p core.Point) {
	t.Helper()
	sx, sy := s.View.ToScreen(p)
	for _, btn := range []tcell.ButtonMask{tcell.Button1, tcell.ButtonNone} {
		if err := s.HandleEvent(tcell.NewEventMouse(sx, sy, btn, tcell.ModNone)); err != nil {
			t.Fatalf("HandleEvent failed: %v", err)
		}
	}
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func specialKey(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestNewContextPlacesAgent(t *testing.T) {
	s := newTestSession(t, Options{})
	if s.Agent.Position() != (core.Point{}) {
		t.Errorf("Expected agent at origin, got %v", s.Agent.Position())
	}
	c, _ := s.Field.Cell(core.Point{})
	if c.Content != s.Agent.Token() {
		t.Errorf("Expected token drawn, got %q", c.Content)
	}
	if s.View.Focused() {
		t.Error("Expected field unfocused at start")
	}
}

func TestMoveRequiresFocus(t *testing.T) {
	s := newTestSession(t, Options{})

	s.key(t, specialKey(tcell.KeyRight))
	if s.Agent.State() != player.StateIdle {
		t.Fatal("Expected unfocused move ignored")
	}

	s.key(t, specialKey(tcell.KeyTab))
	if !s.View.Focused() {
		t.Fatal("Expected Tab to focus the field")
	}
	s.key(t, specialKey(tcell.KeyRight))
	if s.Agent.State() != player.StateMoving {
		t.Fatal("Expected agent moving after key down")
	}
	if err := s.Tick(); err != nil {
		t.Fatalf("Tick failed: %v", err)
	}
	if s.Agent.Position() != core.Pt(1, 0) {
		t.Errorf("Expected agent at (1,0), got %v", s.Agent.Position())
	}

	// Auto-repeat presses do not restart the ticker
	s.key(t, specialKey(tcell.KeyRight))
	if len(s.tickers) != 1 {
		t.Errorf("Expected one ticker, got %d", len(s.tickers))
	}
}

func TestSweepReleasesQuietKey(t *testing.T) {
	s := newTestSession(t, Options{})
	s.View.SetFocused(true)

	s.key(t, runeKey('k'))
	s.clock.Advance(s.Config.Input.ReleaseTimeout / 2)
	s.Sweep()
	if s.Agent.State() != player.StateMoving {
		t.Fatal("Expected hold alive before timeout")
	}

	s.clock.Advance(s.Config.Input.ReleaseTimeout)
	s.Sweep()
	if s.Agent.State() != player.StateIdle {
		t.Error("Expected synthesized release to stop the agent")
	}
	if !s.tickers[0].stopped {
		t.Error("Expected ticker stopped")
	}
}

func TestFocusLossStopsAgent(t *testing.T) {
	s := newTestSession(t, Options{})
	s.View.SetFocused(true)
	s.key(t, runeKey('l'))

	s.key(t, specialKey(tcell.KeyTab))
	if s.Agent.State() != player.StateIdle {
		t.Error("Expected agent stopped on focus loss")
	}
	if s.Repeat.Held(core.East) {
		t.Error("Expected held keys released")
	}
}

func TestToolNeedsEditor(t *testing.T) {
	s := newTestSession(t, Options{})
	s.key(t, runeKey('2'))
	if s.Message() != "Editor not enabled" {
		t.Errorf("Expected disabled notice, got %q", s.Message())
	}
	if s.Editor.Tool() != editor.ToolNone {
		t.Error("Expected no tool armed")
	}
}

func TestLineStrokeWithMouse(t *testing.T) {
	s := newTestSession(t, Options{})
	s.key(t, runeKey('e'))
	s.key(t, runeKey('b'))
	s.key(t, runeKey('='))
	s.key(t, runeKey('2'))
	if s.Editor.Phase() != editor.PhaseAwaitingFirstPoint {
		t.Fatalf("Expected line tool armed, got %v", s.Editor.Phase())
	}

	s.click(t, core.Pt(-4, 3))
	s.click(t, core.Pt(-1, 3))

	for x := -4; x <= -1; x++ {
		c, _ := s.Field.Cell(core.Pt(x, 3))
		if c.Content != '=' {
			t.Errorf("Expected '=' at (%d,3), got %q", x, c.Content)
		}
	}
	if s.Message() != "line drawn" {
		t.Errorf("Expected stroke notice, got %q", s.Message())
	}
	if !s.View.Focused() {
		t.Error("Expected click to focus")
	}
}

func TestWallBlocksAgent(t *testing.T) {
	s := newTestSession(t, Options{})
	s.key(t, runeKey('e'))
	s.key(t, runeKey('6'))
	s.click(t, core.Pt(1, -2))
	s.click(t, core.Pt(1, 2))

	s.key(t, runeKey('l'))
	s.Tick()
	if s.Agent.Position() != (core.Point{}) {
		t.Errorf("Expected agent blocked by wall, got %v", s.Agent.Position())
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.yaml")
	s := newTestSession(t, Options{MapPath: path})

	s.Field.SetContent("#", core.Pt(3, 3))
	s.Field.SetCollidable(core.Pt(3, 3), true)
	s.key(t, specialKey(tcell.KeyCtrlS))
	if !strings.HasPrefix(s.Message(), "saved") {
		t.Fatalf("Expected saved notice, got %q", s.Message())
	}

	s.key(t, specialKey(tcell.KeyCtrlX))
	if c, _ := s.Field.Cell(core.Pt(3, 3)); !c.Blank() {
		t.Fatalf("Expected field cleared, got %q", c.Content)
	}

	s.key(t, specialKey(tcell.KeyCtrlR))
	c, _ := s.Field.Cell(core.Pt(3, 3))
	if c.Content != '#' || !c.Collidable {
		t.Errorf("Expected wall restored, got %+v", c)
	}
	if c, _ := s.Field.Cell(core.Point{}); c.Content != s.Agent.Token() {
		t.Errorf("Expected token restored, got %q", c.Content)
	}
}

func TestLoadWithoutSlotReported(t *testing.T) {
	s := newTestSession(t, Options{})
	s.key(t, specialKey(tcell.KeyCtrlR))
	if !strings.HasPrefix(s.Message(), "load failed") {
		t.Errorf("Expected load failure notice, got %q", s.Message())
	}
	s.key(t, specialKey(tcell.KeyCtrlS))
	if !strings.HasPrefix(s.Message(), "save unavailable") {
		t.Errorf("Expected save unavailable notice, got %q", s.Message())
	}
}

func TestHideToggle(t *testing.T) {
	s := newTestSession(t, Options{})
	s.key(t, runeKey('v'))
	if s.Agent.Visible() || s.Agent.MovementEnabled() {
		t.Fatal("Expected hidden immobile agent")
	}
	s.key(t, runeKey('v'))
	if !s.Agent.Visible() || !s.Agent.MovementEnabled() {
		t.Error("Expected agent shown again")
	}
}

func TestHelpPopupModal(t *testing.T) {
	s := newTestSession(t, Options{})
	s.key(t, runeKey('?'))
	if !s.HelpOpen() {
		t.Fatal("Expected help open")
	}
	if s.help.Field == s.Field {
		t.Fatal("Expected popup on its own field")
	}
	s.Render()

	// Keys other than close do nothing while open
	s.key(t, runeKey('e'))
	if s.Editor.Enabled() {
		t.Error("Expected editor toggle swallowed by popup")
	}
	s.click(t, core.Pt(0, 0))
	if s.View.Focused() {
		t.Error("Expected mouse swallowed by popup")
	}

	s.key(t, specialKey(tcell.KeyEscape))
	if s.HelpOpen() {
		t.Error("Expected Escape to close help")
	}
}

func TestQuit(t *testing.T) {
	s := newTestSession(t, Options{})
	if err := s.Dispatch(input.Action{Type: input.ActionQuit}); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if !s.Quit() {
		t.Error("Expected quit requested")
	}
}

func TestRenderStatusLine(t *testing.T) {
	s := newTestSession(t, Options{})
	s.Render()

	_, h := s.View.Size()
	sy := 1 + h - 1 + 1
	var sb strings.Builder
	for x := 1; x < 40; x++ {
		r, _, _, _ := s.screen.GetContent(x, sy)
		sb.WriteRune(r)
	}
	if !strings.Contains(sb.String(), "(0,0)") {
		t.Errorf("Expected position in status line, got %q", sb.String())
	}
}
