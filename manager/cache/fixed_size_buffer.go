package cache

import "fmt"

// FixedSizeBufferPool hands out read buffers carved from one arena. Get
// blocks until a buffer is returned when all of them are in use.
type FixedSizeBufferPool struct {
	buffers [][]byte
	free    chan uint16

	arena   []byte
	bufSize int
}

func NewFixedSizeBufferPool(n int, bufSize int) *FixedSizeBufferPool {
	if n <= 0 || n > 1<<16 {
		panic(fmt.Sprintf("buffer pool size %d out of range", n))
	}

	arena := make([]byte, n*bufSize)

	buffers := make([][]byte, n)
	for i := 0; i < n; i++ {
		start := i * bufSize
		end := start + bufSize
		buffers[i] = arena[start:end:end] // full slice expression
	}

	free := make(chan uint16, n)
	for i := 0; i < n; i++ {
		free <- uint16(i)
	}

	return &FixedSizeBufferPool{
		arena:   arena,
		buffers: buffers,
		free:    free,
		bufSize: bufSize,
	}
}

func (p *FixedSizeBufferPool) BufferSize() int {
	return p.bufSize
}

// Get returns a buffer of exactly size bytes and the id to return it with.
func (p *FixedSizeBufferPool) Get(size int) ([]byte, uint16) {
	if size > p.bufSize {
		panic(fmt.Sprintf("requested %d bytes from a pool of %d byte buffers", size, p.bufSize))
	}

	id := <-p.free
	return p.buffers[id][:size], id
}

func (p *FixedSizeBufferPool) Return(id uint16) {
	p.free <- id
}
