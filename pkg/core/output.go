package core

// RenderedFile is one rendered destination.
type RenderedFile struct {
	Path    string
	Content string
}

// RenderedOutput maps destination paths to rendered content while keeping
// the order destinations were first produced in. When the same destination
// is rendered again the later content wins but the position does not move,
// mirroring how the property merge treats duplicate keys.
type RenderedOutput struct {
	files []RenderedFile
	index map[string]int
}

// NewRenderedOutput returns an empty RenderedOutput.
func NewRenderedOutput() *RenderedOutput {
	return &RenderedOutput{index: make(map[string]int)}
}

// Set records content for a destination path.
func (o *RenderedOutput) Set(path, content string) {
	if at, ok := o.index[path]; ok {
		o.files[at].Content = content
		return
	}
	o.index[path] = len(o.files)
	o.files = append(o.files, RenderedFile{Path: path, Content: content})
}

// Get returns the content for a destination path.
func (o *RenderedOutput) Get(path string) (string, bool) {
	at, ok := o.index[path]
	if !ok {
		return "", false
	}
	return o.files[at].Content, true
}

// Files returns the rendered files in insertion order.
func (o *RenderedOutput) Files() []RenderedFile {
	return o.files
}

// Len returns the number of distinct destinations.
func (o *RenderedOutput) Len() int {
	return len(o.files)
}
