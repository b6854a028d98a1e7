package chunker

import (
	"errors"
	"strings"
	"testing"
)

func TestNewWindowed_ConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		chunkSize int
		overlap   int
		wantErr   bool
	}{
		{"Valid_Defaults", 1000, 100, false},
		{"Valid_Zero_Overlap", 10, 0, false},
		{"Overlap_Equals_Size", 10, 10, true},
		{"Overlap_Exceeds_Size", 10, 20, true},
		{"Zero_Chunk_Size", 0, 0, true},
		{"Negative_Overlap", 10, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWindowed(tt.chunkSize, tt.overlap)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewWindowed(%d, %d) error = %v, wantErr %v", tt.chunkSize, tt.overlap, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v is not ErrInvalidConfig", err)
			}
		})
	}
}

func TestWindowed_Split_EmptyText(t *testing.T) {
	w, _ := NewWindowed(10, 3)
	if got := w.Split(""); len(got) != 0 {
		t.Errorf("Split(\"\") = %d chunks, want 0", len(got))
	}
}

// chunkSize=10, overlap=3, length 25: windows start at offsets 0, 7, 14, 21.
func TestWindowed_Split_WindowGeometry(t *testing.T) {
	w, _ := NewWindowed(10, 3)
	text := "abcdefghijklmnopqrstuvwxy" // 25 chars

	chunks := w.Split(text)

	wantLens := []int{10, 10, 10, 4}
	if len(chunks) != len(wantLens) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(wantLens))
	}
	for i, c := range chunks {
		if len(c.Text) != wantLens[i] {
			t.Errorf("chunk %d length = %d, want %d", i, len(c.Text), wantLens[i])
		}
		if c.SequenceIndex != i {
			t.Errorf("chunk %d SequenceIndex = %d", i, c.SequenceIndex)
		}
		wantOffset := i * 7
		if want := text[wantOffset:min(wantOffset+10, len(text))]; c.Text != want {
			t.Errorf("chunk %d = %q, want %q", i, c.Text, want)
		}
	}
}

func TestWindowed_Split_ChunkCountInvariant(t *testing.T) {
	tests := []struct {
		name      string
		length    int
		chunkSize int
		overlap   int
	}{
		{"Shorter_Than_Window", 5, 10, 3},
		{"Exactly_One_Window", 10, 10, 3},
		{"Just_Past_One_Window", 11, 10, 3},
		{"Several_Windows", 100, 10, 3},
		{"No_Overlap", 95, 10, 0},
		{"Default_Config_Short_Doc", 49, 1000, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewWindowed(tt.chunkSize, tt.overlap)
			if err != nil {
				t.Fatal(err)
			}
			text := strings.Repeat("x", tt.length)
			chunks := w.Split(text)

			step := tt.chunkSize - tt.overlap
			want := (tt.length - tt.overlap + step - 1) / step
			if want < 1 {
				want = 1
			}
			if len(chunks) != want {
				t.Errorf("length %d size %d overlap %d: got %d chunks, want %d",
					tt.length, tt.chunkSize, tt.overlap, len(chunks), want)
			}
		})
	}
}

// Concatenating the non-overlapping prefixes of every chunk plus the full
// final chunk must reconstruct the input exactly.
func TestWindowed_Split_RoundTrip(t *testing.T) {
	w, _ := NewWindowed(10, 3)
	text := "The mitochondria is the powerhouse of the cell."

	chunks := w.Split(text)

	var sb strings.Builder
	for i, c := range chunks {
		if i == len(chunks)-1 {
			sb.WriteString(c.Text)
			break
		}
		runes := []rune(c.Text)
		sb.WriteString(string(runes[:len(runes)-3]))
	}
	if sb.String() != text {
		t.Errorf("round trip mismatch:\ngot  %q\nwant %q", sb.String(), text)
	}
}

func TestWindowed_Split_OverlapAtBoundaries(t *testing.T) {
	w, _ := NewWindowed(12, 4)
	text := strings.Repeat("abcdefgh", 10)

	chunks := w.Split(text)
	for i := 0; i+1 < len(chunks); i++ {
		cur := []rune(chunks[i].Text)
		next := []rune(chunks[i+1].Text)
		tail := string(cur[len(cur)-4:])
		head := string(next[:min(4, len(next))])
		if tail != head {
			t.Errorf("boundary %d: tail %q != head %q", i, tail, head)
		}
	}
}

func TestWindowed_Split_Deterministic(t *testing.T) {
	w, _ := NewWindowed(10, 3)
	text := "Photosynthesis converts light energy into chemical energy."

	first := w.Split(text)
	second := w.Split(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestWindowed_Split_MultibyteRunes(t *testing.T) {
	w, _ := NewWindowed(4, 1)
	text := "日本語のテキストです" // 10 runes

	chunks := w.Split(text)

	// step 3: offsets 0, 3, 6 with the last window reaching rune 10
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	var sb strings.Builder
	for i, c := range chunks {
		runes := []rune(c.Text)
		if i == len(chunks)-1 {
			sb.WriteString(c.Text)
		} else {
			sb.WriteString(string(runes[:len(runes)-1]))
		}
	}
	if sb.String() != text {
		t.Errorf("rune round trip mismatch: got %q", sb.String())
	}
}

func TestSeparator_Split(t *testing.T) {
	c, err := NewSeparator(30, 5)
	if err != nil {
		t.Fatal(err)
	}

	text := "This is a long sentence. This is another sentence that will be split."
	chunks := c.Split(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if chunk.SequenceIndex != i {
			t.Errorf("chunk %d SequenceIndex = %d", i, chunk.SequenceIndex)
		}
		if chunk.Text == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}

	if got := c.Split(""); len(got) != 0 {
		t.Errorf("Split(\"\") = %d chunks, want 0", len(got))
	}
}

func TestSeparator_ConfigValidation(t *testing.T) {
	if _, err := NewSeparator(10, 10); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("NewSeparator(10, 10) error = %v, want ErrInvalidConfig", err)
	}
}
