package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/evalund/glosor/internal/screen"
)

type stubScreen struct {
	name    string
	inited  bool
	lastMsg tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inited = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.lastMsg = msg
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) Title() string                 { return s.name }

func TestPushPop(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)

	if r.Depth() != 1 || r.Active() != home {
		t.Fatalf("unexpected initial stack: depth %d", r.Depth())
	}

	setup := &stubScreen{name: "setup"}
	r.Push(setup)
	if !setup.inited {
		t.Error("push must init the screen")
	}
	if r.Active() != setup {
		t.Error("pushed screen not active")
	}

	r.Pop()
	if r.Active() != home {
		t.Error("pop did not restore previous screen")
	}

	// Never pop the last screen.
	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("popped the root screen, depth %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	home := &stubScreen{name: "home"}
	game := &stubScreen{name: "game"}
	summary := &stubScreen{name: "summary"}
	r := New(home)
	r.Push(game)

	r.Replace(summary)
	if r.Depth() != 2 || r.Active() != summary {
		t.Fatalf("replace failed: depth %d active %s", r.Depth(), r.Active().Title())
	}
	if !summary.inited {
		t.Error("replace must init the new screen")
	}

	r.Pop()
	if r.Active() != home {
		t.Error("replace lost the screen underneath")
	}
}

func TestPopToRoot(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)
	r.Push(&stubScreen{name: "a"})
	r.Push(&stubScreen{name: "b"})

	r.PopToRoot()
	if r.Depth() != 1 || r.Active() != home {
		t.Errorf("pop-to-root failed: depth %d", r.Depth())
	}
}

func TestUpdateRoutesNavigationMessages(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)

	next := &stubScreen{name: "next"}
	r.Update(PushScreenMsg{Screen: next})
	if r.Active() != next {
		t.Fatal("PushScreenMsg not handled")
	}

	r.Update(PopScreenMsg{})
	if r.Active() != home {
		t.Fatal("PopScreenMsg not handled")
	}

	// Other messages reach the active screen.
	type otherMsg struct{}
	r.Update(otherMsg{})
	if _, ok := home.lastMsg.(otherMsg); !ok {
		t.Error("message not forwarded to active screen")
	}
}
