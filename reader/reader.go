package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/subplan/core"
)

// ErrRead reports any failure to load or navigate the document.
var ErrRead = errors.New("reader: cannot read document")

// maxPageTreeDepth bounds page tree recursion against malformed trees.
const maxPageTreeDepth = 64

// Reader is a loaded PDF document. The source is consumed entirely during
// construction; a Reader only reads from its own buffer afterwards.
type Reader struct {
	data    []byte
	version string
	xref    *core.XRefTable

	cache      map[int]core.Object
	objStreams map[int]*core.ObjectStream

	pages []*Page
}

// Compile-time check: the reader resolves indirect references for the
// object parser (indirect /Length values).
var _ core.ReferenceResolver = (*Reader)(nil)

// Open loads the document at the given path.
func Open(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	defer f.Close()
	return NewReader(f)
}

// NewReader loads a document from any byte source. The source is read to
// completion and may be released by the caller afterwards.
func NewReader(r io.Reader) (*Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return load(data)
}

func load(data []byte) (*Reader, error) {
	rd := &Reader{
		data:       data,
		cache:      make(map[int]core.Object),
		objStreams: make(map[int]*core.ObjectStream),
	}

	if err := rd.parseHeader(); err != nil {
		return nil, err
	}

	start, err := core.FindStartXRef(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	xref, err := core.ParseXRefChain(data, start, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	rd.xref = xref

	if err := rd.loadPages(); err != nil {
		return nil, err
	}
	return rd, nil
}

func (r *Reader) parseHeader() error {
	if !bytes.HasPrefix(r.data, []byte("%PDF-")) {
		return fmt.Errorf("%w: missing %%PDF header", ErrRead)
	}
	end := bytes.IndexAny(r.data, "\r\n")
	if end < 0 {
		end = len(r.data)
	}
	r.version = string(r.data[len("%PDF-"):end])
	return nil
}

// Version returns the header version string, e.g. "1.4".
func (r *Reader) Version() string {
	return r.version
}

// PageCount returns the number of pages in document order.
func (r *Reader) PageCount() int {
	return len(r.pages)
}

// Page returns the i-th page, zero-based.
func (r *Reader) Page(i int) (*Page, error) {
	if i < 0 || i >= len(r.pages) {
		return nil, fmt.Errorf("%w: page %d of %d", ErrRead, i, len(r.pages))
	}
	return r.pages[i], nil
}

// GetObject loads the object with the given number, consulting the cache
// and following object-stream indirection.
func (r *Reader) GetObject(num int) (core.Object, error) {
	if obj, ok := r.cache[num]; ok {
		return obj, nil
	}
	if r.xref == nil {
		return nil, fmt.Errorf("%w: object %d requested before xref is loaded", ErrRead, num)
	}
	entry, ok := r.xref.Get(num)
	if !ok {
		return nil, fmt.Errorf("%w: object %d not in xref", ErrRead, num)
	}
	if !entry.InUse {
		return core.Null{}, nil
	}

	var obj core.Object
	var err error
	if entry.InObjectStream {
		obj, err = r.objectFromStream(entry, num)
	} else {
		obj, err = r.objectAtOffset(entry, num)
	}
	if err != nil {
		return nil, err
	}
	r.cache[num] = obj
	return obj, nil
}

func (r *Reader) objectAtOffset(entry core.XRefEntry, num int) (core.Object, error) {
	p := core.NewParser(r.data)
	p.SetReferenceResolver(r)
	p.Seek(entry.Offset)
	indObj, err := p.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("%w: object %d: %v", ErrRead, num, err)
	}
	if indObj.Ref.Number != num {
		return nil, fmt.Errorf("%w: offset of object %d holds object %d", ErrRead, num, indObj.Ref.Number)
	}
	return indObj.Object, nil
}

func (r *Reader) objectFromStream(entry core.XRefEntry, num int) (core.Object, error) {
	objStream, ok := r.objStreams[entry.StreamNumber]
	if !ok {
		container, err := r.GetObject(entry.StreamNumber)
		if err != nil {
			return nil, err
		}
		stream, isStream := container.(*core.Stream)
		if !isStream {
			return nil, fmt.Errorf("%w: object %d points into non-stream object %d",
				ErrRead, num, entry.StreamNumber)
		}
		objStream, err = core.NewObjectStream(stream)
		if err != nil {
			return nil, fmt.Errorf("%w: object stream %d: %v", ErrRead, entry.StreamNumber, err)
		}
		r.objStreams[entry.StreamNumber] = objStream
	}
	obj, err := objStream.GetObjectByNumber(num)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return obj, nil
}

// ResolveReference implements core.ReferenceResolver.
func (r *Reader) ResolveReference(ref core.IndirectRef) (core.Object, error) {
	return r.GetObject(ref.Number)
}

// Resolve follows indirect references until a direct object remains.
func (r *Reader) Resolve(obj core.Object) (core.Object, error) {
	for depth := 0; depth < 32; depth++ {
		ref, ok := obj.(core.IndirectRef)
		if !ok {
			return obj, nil
		}
		next, err := r.GetObject(ref.Number)
		if err != nil {
			return nil, err
		}
		obj = next
	}
	return nil, fmt.Errorf("%w: reference chain too deep", ErrRead)
}

// resolveDict resolves a dictionary value that may be indirect.
func (r *Reader) resolveDict(d core.Dict, key string) (core.Dict, error) {
	obj, err := r.Resolve(d.Get(key))
	if err != nil {
		return nil, err
	}
	dict, ok := obj.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("%w: /%s is %T, want dictionary", ErrRead, key, obj)
	}
	return dict, nil
}

func (r *Reader) loadPages() error {
	catalog, err := r.resolveDict(r.xref.Trailer, "Root")
	if err != nil {
		return err
	}
	root, err := r.resolveDict(catalog, "Pages")
	if err != nil {
		return err
	}

	visited := make(map[int]bool)
	return r.collectPages(root, visited, 0)
}

// collectPages walks the page tree depth first, appending leaf pages in
// document order. Visited object numbers and a depth bound protect against
// cyclic trees.
func (r *Reader) collectPages(node core.Dict, visited map[int]bool, depth int) error {
	if depth > maxPageTreeDepth {
		return fmt.Errorf("%w: page tree deeper than %d", ErrRead, maxPageTreeDepth)
	}

	typ, _ := node.GetName("Type")
	switch typ {
	case "Page":
		r.pages = append(r.pages, &Page{reader: r, dict: node})
		return nil
	case "Pages":
		kids, ok := node.GetArray("Kids")
		if !ok {
			return fmt.Errorf("%w: page tree node without /Kids", ErrRead)
		}
		for i := 0; i < len(kids); i++ {
			kid := kids.Get(i)
			if ref, isRef := kid.(core.IndirectRef); isRef {
				if visited[ref.Number] {
					return fmt.Errorf("%w: page tree cycle at object %d", ErrRead, ref.Number)
				}
				visited[ref.Number] = true
			}
			child, err := r.Resolve(kid)
			if err != nil {
				return err
			}
			childDict, ok := child.(core.Dict)
			if !ok {
				return fmt.Errorf("%w: page tree kid is %T", ErrRead, child)
			}
			if err := r.collectPages(childDict, visited, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("%w: page tree node has /Type %q", ErrRead, typ)
}
