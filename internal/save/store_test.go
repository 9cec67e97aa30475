package save

import (
	"fmt"
	"testing"
	"time"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "")
	appName := fmt.Sprintf("onisim_test_%d", time.Now().UnixNano())
	s, err := Open(appName)
	if err != nil {
		t.Skipf("save data unavailable: %v", err)
	}
	return s, appName
}

func TestAchievementsPersist(t *testing.T) {
	s, appName := openTestStore(t)
	if s.Achieved(1) {
		t.Fatal("fresh store has achievements")
	}
	for _, i := range []int{2, 0} {
		if err := s.SetAchieved(i); err != nil {
			t.Fatal(err)
		}
	}

	again, err := Open(appName)
	if err != nil {
		t.Fatal(err)
	}
	got := again.List()
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("reloaded = %v, want [0 2]", got)
	}
	if !again.Achieved(2) || again.Achieved(1) {
		t.Error("reloaded lookups wrong")
	}

	if err := again.Reset(); err != nil {
		t.Fatal(err)
	}
	third, err := Open(appName)
	if err != nil {
		t.Fatal(err)
	}
	if len(third.List()) != 0 {
		t.Errorf("after reset = %v", third.List())
	}
}

func TestMemoryOnlyStore(t *testing.T) {
	s, err := NewStore(nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SetAchieved(3); err != nil {
		t.Fatal(err)
	}
	if !s.Achieved(3) || s.Achieved(0) {
		t.Error("memory store lookups wrong")
	}
}
