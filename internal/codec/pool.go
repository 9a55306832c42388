package codec

import "sync"

// Pool is a thread-safe pool of byte buffers bucketed by exact length.
//
// Decoding an image of a given size repeatedly (sprite sheets, reloaded
// assets) reuses the same scratch buffer instead of allocating a new one.
type Pool struct {
	mu      sync.Mutex
	buckets map[int][][]byte
	maxSize int // max buffers per bucket
}

// NewPool creates a pool that retains at most maxPerBucket buffers of each
// length. A maxPerBucket of 0 means unlimited.
func NewPool(maxPerBucket int) *Pool {
	return &Pool{
		buckets: make(map[int][][]byte),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed buffer of exactly n bytes.
func (p *Pool) Get(n int) []byte {
	if n <= 0 {
		return nil
	}

	p.mu.Lock()
	bucket := p.buckets[n]
	if len(bucket) > 0 {
		buf := bucket[len(bucket)-1]
		p.buckets[n] = bucket[:len(bucket)-1]
		p.mu.Unlock()

		clear(buf)
		return buf
	}
	p.mu.Unlock()

	return make([]byte, n)
}

// Put returns buf to the pool. Empty buffers and buffers over the bucket
// capacity are dropped.
func (p *Pool) Put(buf []byte) {
	if len(buf) == 0 {
		return
	}
	buf = buf[:cap(buf)]
	n := len(buf)

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[n]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[n] = append(bucket, buf)
}

// Len returns the number of buffers currently retained.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}

// defaultPool backs Decode and DecodeFile.
var defaultPool = NewPool(4)
