package core

// Sequence produces upcoming piece type ids. ok is false once the sequence
// is exhausted.
type Sequence interface {
	Next() (typ int, ok bool)
}

// Peeker is a Sequence that can show upcoming values without consuming them.
type Peeker interface {
	Sequence
	Peek() []int
}

// PRNG advances a linear congruential generator and returns its low 31 bits.
func PRNG(state *uint32) uint32 {
	*state = *state*1103515245 + 12345
	return *state & 0x7fffffff
}

// Shuffle permutes list in place, drawing from the generator.
// The modulo draw is slightly biased for lengths that are not powers of two;
// bags are small enough that this does not matter.
func Shuffle(list []int, state *uint32) {
	n := len(list)
	for i := 0; i < n; i++ {
		r := int(PRNG(state))
		j := i + r%(n-i)
		list[i], list[j] = list[j], list[i]
	}
}

// Bag is the bag randomizer: every aligned block of typeCount outputs is a
// permutation of 0..typeCount-1.
type Bag struct {
	state     uint32
	typeCount int
	queue     []int
}

// NewBag creates a bag randomizer over typeCount piece types.
func NewBag(seed uint32, typeCount int) *Bag {
	return &Bag{
		state:     seed,
		typeCount: typeCount,
		queue:     make([]int, 0, typeCount),
	}
}

// Next pops the next piece type, refilling and shuffling the bag when empty.
// Values are popped from the end of the shuffled bag.
func (b *Bag) Next() (int, bool) {
	if len(b.queue) == 0 {
		for typ := 0; typ < b.typeCount; typ++ {
			b.queue = append(b.queue, typ)
		}
		Shuffle(b.queue, &b.state)
	}
	if len(b.queue) == 0 {
		return 0, false
	}
	last := len(b.queue) - 1
	typ := b.queue[last]
	b.queue = b.queue[:last]
	return typ, true
}

// Preview buffers up to size upcoming values of another sequence without
// changing their order.
type Preview struct {
	seq  Sequence
	size int
	fifo []int
}

// NewPreview wraps seq with a look-ahead buffer of the given size.
func NewPreview(seq Sequence, size int) *Preview {
	return &Preview{
		seq:  seq,
		size: size,
		fifo: make([]int, 0, size),
	}
}

// Size returns the configured look-ahead length.
func (p *Preview) Size() int {
	return p.size
}

// Peek tops up the buffer and returns a copy of it: the next values Next will
// return, in order. It may be shorter than Size if the sequence ran out.
func (p *Preview) Peek() []int {
	for len(p.fifo) < p.size {
		typ, ok := p.seq.Next()
		if !ok {
			break
		}
		p.fifo = append(p.fifo, typ)
	}
	out := make([]int, len(p.fifo))
	copy(out, p.fifo)
	return out
}

// Next returns the front of the buffer if there is one, otherwise it pulls
// straight from the wrapped sequence.
func (p *Preview) Next() (int, bool) {
	if len(p.fifo) > 0 {
		typ := p.fifo[0]
		p.fifo = p.fifo[1:]
		return typ, true
	}
	return p.seq.Next()
}

// Limited yields at most n values of another sequence and then reports exhaustion.
type Limited struct {
	seq  Sequence
	left int
}

// NewLimited wraps seq so that it ends after n values.
func NewLimited(seq Sequence, n int) *Limited {
	return &Limited{seq: seq, left: n}
}

// Next returns the next value until the limit is reached.
func (l *Limited) Next() (int, bool) {
	if l.left <= 0 {
		return 0, false
	}
	l.left--
	return l.seq.Next()
}

// Fixed replays a fixed list of piece types, then reports exhaustion.
type Fixed struct {
	types []int
	pos   int
}

// NewFixed creates a sequence that yields the given types in order.
func NewFixed(types ...int) *Fixed {
	return &Fixed{types: types}
}

// Next returns the next listed type.
func (f *Fixed) Next() (int, bool) {
	if f.pos >= len(f.types) {
		return 0, false
	}
	typ := f.types[f.pos]
	f.pos++
	return typ, true
}
