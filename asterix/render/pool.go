// render/pool.go
//
// Buffer reuse across Render calls, adapted from the teacher's
// encoding/pool.go BufferPool: the same small/medium/large tiering idea,
// applied to *bytes.Buffer instead of raw []byte since every renderer in
// this package builds its output with bytes.Buffer/encoding writers.
package render

import (
	"bytes"
	"sync"
)

const (
	smallBufferSize  = 256
	mediumBufferSize = 4096
	largeBufferSize  = 65536
)

type bufferPool struct {
	small  sync.Pool
	medium sync.Pool
	large  sync.Pool
}

func newBufferPool() *bufferPool {
	return &bufferPool{
		small:  sync.Pool{New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, smallBufferSize)) }},
		medium: sync.Pool{New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, mediumBufferSize)) }},
		large:  sync.Pool{New: func() interface{} { return bytes.NewBuffer(make([]byte, 0, largeBufferSize)) }},
	}
}

// get returns a reset buffer sized to the given capacity hint.
func (p *bufferPool) get(hint int) *bytes.Buffer {
	var buf *bytes.Buffer
	switch {
	case hint <= smallBufferSize:
		buf = p.small.Get().(*bytes.Buffer)
	case hint <= mediumBufferSize:
		buf = p.medium.Get().(*bytes.Buffer)
	case hint <= largeBufferSize:
		buf = p.large.Get().(*bytes.Buffer)
	default:
		return bytes.NewBuffer(make([]byte, 0, hint))
	}
	buf.Reset()
	return buf
}

func (p *bufferPool) put(buf *bytes.Buffer) {
	switch {
	case buf.Cap() <= smallBufferSize:
		p.small.Put(buf)
	case buf.Cap() <= mediumBufferSize:
		p.medium.Put(buf)
	case buf.Cap() <= largeBufferSize:
		p.large.Put(buf)
	default:
		// oversized buffers are left for GC, same as the teacher's Put.
	}
}

var defaultPool = newBufferPool()
