package token

import "sort"

// Pos is a 1-based byte offset into the concatenation of the source text of
// every File registered in a FileSet. NoPos means "unknown position".
type Pos int

// NoPos is the zero value of Pos; it is never a valid position.
const NoPos Pos = 0

// IsValid reports whether p represents an actual source position.
func (p Pos) IsValid() bool { return p != NoPos }

// Position is the fully resolved, human-readable form of a Pos.
type Position struct {
	Filename string
	Line     int // 1-based
	Column   int // 1-based, in bytes
}

func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if p.Filename == "" {
		if !p.IsValid() {
			return "-"
		}
		return posString(p.Line, p.Column)
	}
	if !p.IsValid() {
		return p.Filename
	}
	return p.Filename + ":" + posString(p.Line, p.Column)
}

func posString(line, col int) string {
	return itoa(line) + ":" + itoa(col)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// A File records the name and size of a source file added to a FileSet,
// along with the byte offsets of every line break, so that byte offsets can
// be resolved into line/column pairs.
type File struct {
	set   *FileSet
	name  string
	base  int // Pos value of byte 0 of this file
	size  int
	lines []int // offsets of line starts, always starting with 0
}

func (f *File) Name() string { return f.name }
func (f *File) Base() int    { return f.base }
func (f *File) Size() int    { return f.size }

// Pos returns the Pos value for the given byte offset into this file.
func (f *File) Pos(offset int) Pos { return Pos(f.base + offset) }

// Offset returns the byte offset for the given Pos, which must belong to
// this file.
func (f *File) Offset(p Pos) int { return int(p) - f.base }

// AddLine records that a new line begins at the given byte offset. Offsets
// must be added in increasing order.
func (f *File) AddLine(offset int) {
	if n := len(f.lines); n == 0 || f.lines[n-1] < offset {
		f.lines = append(f.lines, offset)
	}
}

// Position resolves p, which must belong to this file, into a line/column
// pair.
func (f *File) Position(p Pos) Position {
	offset := f.Offset(p)
	i := sort.Search(len(f.lines), func(i int) bool { return f.lines[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	return Position{
		Filename: f.name,
		Line:     i + 1,
		Column:   offset - f.lines[i] + 1,
	}
}

// A FileSet groups the files of a single parse/scan/resolve run so that Pos
// values (which are global byte offsets) can be resolved back to a file and
// a line/column pair.
type FileSet struct {
	base  int
	files []*File
}

// NewFileSet creates a new, empty FileSet.
func NewFileSet() *FileSet { return &FileSet{base: 1} }

// AddFile registers a new file of the given size and returns it. A negative
// base places the file at the set's next free base, right after the
// previously added file.
func (s *FileSet) AddFile(name string, base, size int) *File {
	if base < 0 {
		base = s.base
	}
	f := &File{set: s, name: name, base: base, size: size, lines: []int{0}}
	s.files = append(s.files, f)
	s.base = base + size + 1
	return f
}

// File returns the File containing p, or nil if p belongs to none of the
// files registered in s.
func (s *FileSet) File(p Pos) *File {
	for _, f := range s.files {
		if int(p) >= f.base && int(p) <= f.base+f.size {
			return f
		}
	}
	return nil
}

// Position resolves p using whichever file in s contains it.
func (s *FileSet) Position(p Pos) Position {
	if f := s.File(p); f != nil {
		return f.Position(p)
	}
	return Position{}
}

// Span is a half-open byte range [Start, End) in the source, used to
// highlight a token or AST node in a diagnostic.
type Span struct {
	Start, End Pos
}

// Combine returns the smallest Span that contains every span in spans. It
// panics if spans is empty.
func Combine(spans ...Span) Span {
	out := spans[0]
	for _, s := range spans[1:] {
		if s.Start < out.Start {
			out.Start = s.Start
		}
		if s.End > out.End {
			out.End = s.End
		}
	}
	return out
}
