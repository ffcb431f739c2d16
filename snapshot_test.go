package richtext

import (
	"encoding/json"
	"testing"
)

func TestSnapshotText(t *testing.T) {
	text := NewText("the quick brown fox")
	snap := text.Snapshot(10, SnapshotDetailText)

	if snap.Width != 10 {
		t.Errorf("expected width 10, got %d", snap.Width)
	}
	if len(snap.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(snap.Lines))
	}
	if snap.Lines[0].Text != "the quick" || snap.Lines[1].Text != "brown fox" {
		t.Errorf("unexpected lines: %q %q", snap.Lines[0].Text, snap.Lines[1].Text)
	}
	if snap.Lines[0].Segments != nil || snap.Lines[0].Cells != nil {
		t.Error("expected text detail to omit segments and cells")
	}
}

func TestSnapshotStyled(t *testing.T) {
	text := NewText("ab")
	text.Stylize(ParseStyle("bold red"), 0, 1)

	snap := text.Snapshot(10, SnapshotDetailStyled)
	if len(snap.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snap.Lines))
	}

	segments := snap.Lines[0].Segments
	if len(segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segments))
	}
	if segments[0].Text != "a" || !segments[0].Attributes.Bold {
		t.Errorf("expected bold 'a', got %+v", segments[0])
	}
	if segments[0].Fg == "" {
		t.Error("expected foreground hex for styled segment")
	}
	if segments[1].Text != "b" || segments[1].Attributes.Bold {
		t.Errorf("expected plain 'b', got %+v", segments[1])
	}
	if segments[1].Fg != "" {
		t.Errorf("expected empty fg for default color, got %q", segments[1].Fg)
	}
}

func TestSnapshotSegmentTextsConcatenate(t *testing.T) {
	text := NewText("styled output with several words here")
	text.Stylize(ParseStyle("bold"), 7, 13)
	text.Stylize(ParseStyle("red"), 10, 25)

	snap := text.Snapshot(12, SnapshotDetailStyled)
	for i, line := range snap.Lines {
		var joined string
		for _, seg := range line.Segments {
			joined += seg.Text
		}
		if joined != line.Text {
			t.Errorf("line %d: segment texts %q do not reproduce %q", i, joined, line.Text)
		}
	}
}

func TestSnapshotFull(t *testing.T) {
	text := NewText("ab")
	text.Stylize(ParseStyle("underline"), 1, 2)

	snap := text.Snapshot(10, SnapshotDetailFull)
	cells := snap.Lines[0].Cells
	if len(cells) != 2 {
		t.Fatalf("expected 2 cells, got %d", len(cells))
	}
	if cells[0].Char != "a" || cells[0].Attributes.Underline {
		t.Errorf("unexpected first cell: %+v", cells[0])
	}
	if cells[1].Char != "b" || !cells[1].Attributes.Underline {
		t.Errorf("unexpected second cell: %+v", cells[1])
	}
}

func TestSnapshotHyperlink(t *testing.T) {
	text := NewText("click", WithStyle(ParseStyle("link https://example.com")))

	snap := text.Snapshot(10, SnapshotDetailStyled)
	segments := snap.Lines[0].Segments
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Hyperlink != "https://example.com" {
		t.Errorf("expected hyperlink, got %q", segments[0].Hyperlink)
	}
}

func TestSnapshotMarshals(t *testing.T) {
	text := NewText("ab")
	text.Stylize(ParseStyle("bold"), 0, 1)

	data, err := json.Marshal(text.Snapshot(10, SnapshotDetailStyled))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded Snapshot
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(decoded.Lines) != 1 || decoded.Lines[0].Text != "ab" {
		t.Errorf("unexpected decoded snapshot: %+v", decoded)
	}
}
