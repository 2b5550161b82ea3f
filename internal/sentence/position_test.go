package sentence

import "testing"

func TestPositionTrackerAscii(t *testing.T) {
	buf := []byte("ab\ncd")
	tr := NewPositionTracker(buf)

	pos, err := tr.AdvanceTo(2)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (Position{Char: 2, Line: 1, Col: 3}) {
		t.Fatalf("got %+v", pos)
	}

	pos, err = tr.AdvanceTo(3)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (Position{Char: 3, Line: 2, Col: 1}) {
		t.Fatalf("got %+v", pos)
	}

	pos, err = tr.AdvanceTo(5)
	if err != nil {
		t.Fatal(err)
	}
	if pos != (Position{Char: 5, Line: 2, Col: 3}) {
		t.Fatalf("got %+v", pos)
	}
}

func TestPositionTrackerMultiByte(t *testing.T) {
	// "café" = c a f é, é is 2 bytes (0xC3 0xA9)
	buf := []byte("café")
	tr := NewPositionTracker(buf)
	pos, err := tr.AdvanceTo(len(buf))
	if err != nil {
		t.Fatal(err)
	}
	if pos.Char != 4 {
		t.Fatalf("want 4 chars, got %d", pos.Char)
	}
}

func TestPositionTrackerRejectsBackwardSeek(t *testing.T) {
	buf := []byte("abcdef")
	tr := NewPositionTracker(buf)
	if _, err := tr.AdvanceTo(4); err != nil {
		t.Fatal(err)
	}
	_, err := tr.AdvanceTo(2)
	if err == nil {
		t.Fatal("expected error seeking backward")
	}
	if _, ok := err.(ErrBackwardSeek); !ok {
		t.Fatalf("wrong error type: %T", err)
	}
}

func TestPositionTrackerRejectsOutOfBounds(t *testing.T) {
	buf := []byte("abc")
	tr := NewPositionTracker(buf)
	_, err := tr.AdvanceTo(10)
	if _, ok := err.(ErrOutOfBounds); !ok {
		t.Fatalf("wrong error type: %T (%v)", err, err)
	}
}

func TestPositionTrackerIncremental(t *testing.T) {
	buf := []byte("hello\nworld\n!")
	tr := NewPositionTracker(buf)
	var last Position
	for _, target := range []int{1, 3, 6, 9, 12, len(buf)} {
		pos, err := tr.AdvanceTo(target)
		if err != nil {
			t.Fatal(err)
		}
		if pos.Char < last.Char {
			t.Fatalf("char position went backward: %+v after %+v", pos, last)
		}
		last = pos
	}
}
