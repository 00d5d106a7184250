package subjects

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/tkha/tierquiz/internal/router"
	"github.com/tkha/tierquiz/internal/screen"
	"github.com/tkha/tierquiz/internal/screen/screentest"
	"github.com/tkha/tierquiz/internal/screens/gate"
	"github.com/tkha/tierquiz/internal/screens/topic"
)

func pushed(t *testing.T, cmd tea.Cmd) screen.Screen {
	t.Helper()
	msgs := screentest.Drain(cmd)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages", len(msgs))
	}
	push, ok := msgs[0].(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", msgs[0])
	}
	return push.Screen
}

func TestListsCatalogueWithLockBadges(t *testing.T) {
	deps := screentest.Deps(nil)
	s := New(deps)

	if len(s.menu.Items) != len(deps.Config.Subjects) {
		t.Fatalf("items = %d, want %d", len(s.menu.Items), len(deps.Config.Subjects))
	}
	for _, item := range s.menu.Items {
		if item.Badge != lockBadge {
			t.Errorf("%s badge = %q, want locked", item.Label, item.Badge)
		}
	}
	if !strings.Contains(s.View(100, 30), "Mathematics") {
		t.Error("view should list subject names")
	}
}

func TestLockedSubjectOpensGate(t *testing.T) {
	s := New(screentest.Deps(nil))
	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*gate.GateScreen); !ok {
		t.Error("locked subject should open the key prompt")
	}
}

func TestUnlockedSubjectOpensTopic(t *testing.T) {
	deps := screentest.Deps(nil)
	s := New(deps)
	if _, err := deps.Gate.Unlock(screentest.VIPKey, "math"); err != nil {
		t.Fatal(err)
	}

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	if _, ok := pushed(t, cmd).(*topic.TopicScreen); !ok {
		t.Error("unlocked subject should open the topic prompt")
	}
	if s.menu.Items[0].Badge != "" {
		t.Error("badge should clear once unlocked")
	}
}

func TestNTogglesAutoRead(t *testing.T) {
	deps := screentest.Deps(nil)
	s := New(deps)
	s.Update(screentest.Key('n'))
	if !deps.Narration.NarrateOnQuestion() {
		t.Error("n should switch auto-read on")
	}
}
