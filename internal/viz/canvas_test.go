package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("pixel (0,0) not set")
	}

	c.Set(-1, 0)
	c.Set(0, -3)
	c.Set(100, 100) // out of range, ignored

	c.Clear()
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) not cleared", i, j)
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("diagonal line lit no cells")
	}

	s := c.String()
	if strings.Count(s, "\n") != 5 {
		t.Errorf("rendered %d rows, want 5", strings.Count(s, "\n"))
	}
}

func TestFramePlotWindow(t *testing.T) {
	c := NewCanvas(10, 5)
	f := NewFrame(c, 0, 1, -1, 1)

	f.Plot(2, 0) // outside the window
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("out-of-window point was drawn")
			}
		}
	}

	f.Plot(0.5, 0)
	lit := false
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit = true
			}
		}
	}
	if !lit {
		t.Error("in-window point not drawn")
	}
}

func TestFrameDegenerateWindow(t *testing.T) {
	f := NewFrame(NewCanvas(4, 2), 3, 3, 0, 0)
	if f.XMax <= f.XMin || f.YMax <= f.YMin {
		t.Error("degenerate window not widened")
	}
}

func TestSparklineWidth(t *testing.T) {
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = float64(i)
	}
	s := Sparkline(vals, 20)
	if n := len([]rune(s)); n != 20 {
		t.Errorf("sparkline width = %d, want 20", n)
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := ProgressBar(2, 10); len([]rune(got)) != 10 {
		t.Error("overfull bar has wrong width")
	}
	if got := ProgressBar(-1, 10); len([]rune(got)) != 10 {
		t.Error("negative bar has wrong width")
	}
}
