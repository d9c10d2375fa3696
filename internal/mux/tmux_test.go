package mux

import "testing"

func TestParsePaneLine(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantID     string
		wantActive bool
		wantZoomed bool
		wantCopy   bool
		wantScroll int
		wantY      int
		wantX      int
	}{
		{
			name:       "active pane",
			line:       "%0,0,1,0,24,0,80,0,,5,12,,",
			wantID:     "%0",
			wantActive: true,
			wantY:      5,
			wantX:      12,
		},
		{
			name:   "inactive pane",
			line:   "%3,0,0,25,23,0,80,0,,0,0,,",
			wantID: "%3",
		},
		{
			name:       "zoomed window",
			line:       "%1,1,1,0,48,0,160,0,,3,4,,",
			wantID:     "%1",
			wantActive: true,
			wantZoomed: true,
			wantY:      3,
			wantX:      4,
		},
		{
			name:       "copy mode uses copy cursor",
			line:       "%2,0,1,0,24,0,80,1,100,5,12,8,40",
			wantID:     "%2",
			wantActive: true,
			wantCopy:   true,
			wantScroll: 100,
			wantY:      8,
			wantX:      40,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pane, zoomed, err := parsePaneLine(tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if pane.ID != tt.wantID {
				t.Errorf("ID: got %q, want %q", pane.ID, tt.wantID)
			}
			if pane.Active != tt.wantActive {
				t.Errorf("Active: got %v, want %v", pane.Active, tt.wantActive)
			}
			if zoomed != tt.wantZoomed {
				t.Errorf("zoomed: got %v, want %v", zoomed, tt.wantZoomed)
			}
			if pane.CopyMode != tt.wantCopy {
				t.Errorf("CopyMode: got %v, want %v", pane.CopyMode, tt.wantCopy)
			}
			if pane.ScrollPosition != tt.wantScroll {
				t.Errorf("ScrollPosition: got %d, want %d", pane.ScrollPosition, tt.wantScroll)
			}
			if pane.CursorY != tt.wantY || pane.CursorX != tt.wantX {
				t.Errorf("cursor: got (%d, %d), want (%d, %d)",
					pane.CursorY, pane.CursorX, tt.wantY, tt.wantX)
			}
		})
	}
}

func TestParsePaneLine_Geometry(t *testing.T) {
	pane, _, err := parsePaneLine("%5,0,0,12,11,40,39,0,,0,0,,")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pane.Top != 12 || pane.Height != 11 || pane.Left != 40 || pane.Width != 39 {
		t.Errorf("geometry: got (top %d, height %d, left %d, width %d), want (12, 11, 40, 39)",
			pane.Top, pane.Height, pane.Left, pane.Width)
	}
}

func TestParsePaneLine_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "too few fields", line: "%0,0,1"},
		{name: "non-numeric geometry", line: "%0,0,1,x,24,0,80,0,,5,12,,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := parsePaneLine(tt.line); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParsePaneList_ZoomDropsInactivePanes(t *testing.T) {
	out := "%0,1,1,0,48,0,160,0,,3,4,,\n" +
		"%1,1,0,0,24,0,80,0,,0,0,,\n" +
		"%2,1,0,25,23,0,80,0,,0,0,,\n"

	panes := NewTmux(nil).parsePaneList(out)
	if len(panes) != 1 {
		t.Fatalf("got %d panes, want 1", len(panes))
	}
	if panes[0].ID != "%0" || !panes[0].Active {
		t.Errorf("kept pane: got %s active=%v, want the active %%0", panes[0].ID, panes[0].Active)
	}
}

func TestParsePaneList_UnzoomedKeepsAll(t *testing.T) {
	out := "%0,0,1,0,24,0,80,0,,3,4,,\n" +
		"%1,0,0,25,23,0,80,0,,0,0,,\n"

	panes := NewTmux(nil).parsePaneList(out)
	if len(panes) != 2 {
		t.Fatalf("got %d panes, want 2", len(panes))
	}
}

func TestParsePaneList_SkipsMalformedLines(t *testing.T) {
	out := "not,a,pane\n" +
		"%0,0,1,0,24,0,80,0,,3,4,,\n"

	panes := NewTmux(nil).parsePaneList(out)
	if len(panes) != 1 {
		t.Fatalf("got %d panes, want 1", len(panes))
	}
	if panes[0].ID != "%0" {
		t.Errorf("kept pane: got %s, want %%0", panes[0].ID)
	}
}

func TestVersionPattern(t *testing.T) {
	tests := []struct {
		input     string
		wantMatch bool
		wantMajor string
		wantMinor string
	}{
		{"tmux 3.5", true, "3", "5"},
		{"tmux 3.0a", true, "3", "0"},
		{"tmux 3.1-rc2", true, "3", "1"},
		{"tmux next-3.6", true, "3", "6"},
		{"tmux master", false, "", ""},
	}
	for _, tt := range tests {
		m := versionPattern.FindStringSubmatch(tt.input)
		if (m != nil) != tt.wantMatch {
			t.Errorf("%q: match got %v, want %v", tt.input, m != nil, tt.wantMatch)
			continue
		}
		if m == nil {
			continue
		}
		if m[1] != tt.wantMajor || m[2] != tt.wantMinor {
			t.Errorf("%q: got (%s, %s), want (%s, %s)", tt.input, m[1], m[2], tt.wantMajor, tt.wantMinor)
		}
	}
}
