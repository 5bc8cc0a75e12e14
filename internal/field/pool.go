package field

import "sync"

// Pool recycles scratch fields of a single length.
type Pool struct {
	pool sync.Pool
	size int
}

func NewPool(size int) *Pool {
	return &Pool{
		size: size,
		pool: sync.Pool{
			New: func() interface{} {
				return make(Field, size)
			},
		},
	}
}

func (p *Pool) Get() Field {
	return p.pool.Get().(Field)
}

// Put zeroes f and returns it to the pool. Fields of the wrong length are dropped.
func (p *Pool) Put(f Field) {
	if len(f) == p.size {
		for i := range f {
			f[i] = 0
		}
		p.pool.Put(f)
	}
}

func (p *Pool) GetAndCopy(src Field) Field {
	dst := p.Get()
	copy(dst, src)
	return dst
}
