// Package pool provides sync.Pool wrappers for reducing GC pressure.
package pool

import (
	"strconv"
	"sync"
)

// PathBuilder builds violation paths with minimal allocation. Paths use the
// grammar "value[3].Name{key}": indices in brackets, struct fields and map
// string keys after a dot or in braces. Builders are reused via sync.Pool.
type PathBuilder struct {
	buf []byte
}

// pathBuilderPool holds reusable PathBuilder instances.
var pathBuilderPool = sync.Pool{
	New: func() any {
		return &PathBuilder{
			buf: make([]byte, 0, 128),
		}
	},
}

// AcquirePathBuilder gets a PathBuilder from the pool, initialized to root.
// Call Release() when done to return it to the pool.
func AcquirePathBuilder(root string) *PathBuilder {
	pb := pathBuilderPool.Get().(*PathBuilder)
	pb.buf = append(pb.buf[:0], root...)
	return pb
}

// Release returns the PathBuilder to the pool.
func (b *PathBuilder) Release() {
	if b == nil {
		return
	}
	// Don't return oversized buffers to the pool
	if cap(b.buf) <= 4096 {
		pathBuilderPool.Put(b)
	}
}

// Len returns the current length of the path.
func (b *PathBuilder) Len() int {
	return len(b.buf)
}

// Truncate cuts the path back to n bytes. Used to pop a segment after
// descending into a container element.
func (b *PathBuilder) Truncate(n int) {
	b.buf = b.buf[:n]
}

// PushIndex appends "[i]".
func (b *PathBuilder) PushIndex(i int) {
	b.buf = append(b.buf, '[')
	b.buf = strconv.AppendInt(b.buf, int64(i), 10)
	b.buf = append(b.buf, ']')
}

// PushField appends ".name".
func (b *PathBuilder) PushField(name string) {
	b.buf = append(b.buf, '.')
	b.buf = append(b.buf, name...)
}

// PushKey appends "{key}".
func (b *PathBuilder) PushKey(key string) {
	b.buf = append(b.buf, '{')
	b.buf = append(b.buf, key...)
	b.buf = append(b.buf, '}')
}

// String returns the current path. The returned string is a copy and remains
// valid after the builder is released.
func (b *PathBuilder) String() string {
	return string(b.buf)
}
