package cursor

import "testing"

func TestActivateLast(t *testing.T) {
	var c Cursor
	c.ActivateLast(5)
	if !c.Active() {
		t.Fatal("cursor not active after ActivateLast")
	}
	if c.Index() != 4 {
		t.Errorf("index = %d, want 4", c.Index())
	}
}

func TestActivateEmptySequence(t *testing.T) {
	var c Cursor
	c.ActivateLast(0)
	if c.Active() {
		t.Error("cursor should stay inactive for empty sequence")
	}
}

func TestStepBounds(t *testing.T) {
	// Enter at N-1, step up N-1 times, then down once: index should be 1,
	// never leaving [0, N-1].
	const n = 5
	var c Cursor
	c.ActivateLast(n)

	for i := 0; i < n-1; i++ {
		c.StepUp()
	}
	if c.Index() != 0 {
		t.Fatalf("index = %d after stepping to floor, want 0", c.Index())
	}
	c.StepUp()
	if c.Index() != 0 {
		t.Errorf("index = %d, step up must floor at 0", c.Index())
	}

	c.StepDown(n)
	if c.Index() != 1 {
		t.Errorf("index = %d, want 1", c.Index())
	}

	for i := 0; i < n*2; i++ {
		c.StepDown(n)
	}
	if c.Index() != n-1 {
		t.Errorf("index = %d, step down must cap at %d", c.Index(), n-1)
	}
}

func TestStepsIgnoredWhileInactive(t *testing.T) {
	var c Cursor
	c.StepUp()
	c.StepDown(10)
	if c.Active() || c.Index() != 0 {
		t.Errorf("inactive cursor moved: active=%v index=%d", c.Active(), c.Index())
	}
}

func TestClampAfterShrink(t *testing.T) {
	var c Cursor
	c.ActivateLast(10)
	c.Clamp(3)
	if c.Index() != 2 {
		t.Errorf("index = %d after clamp to length 3, want 2", c.Index())
	}
	c.Clamp(0)
	if c.Active() {
		t.Error("cursor should deactivate when sequence becomes empty")
	}
}

func TestReset(t *testing.T) {
	var c Cursor
	c.Activate(2, 6)
	c.Reset()
	if c.Active() || c.Index() != 0 {
		t.Errorf("reset left cursor active=%v index=%d", c.Active(), c.Index())
	}
}
