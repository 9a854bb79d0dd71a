package tracking

import "sync"

// Batch is the set of operations committed for one tick.
type Batch struct {
	Seq       uint64      `json:"seq"`
	Timestamp int64       `json:"timestamp"`
	Ops       []Operation `json:"ops"`
}

// Journal keeps the most recent operation batches so polling clients can
// catch up from a sequence number. It implements Applier.
type Journal struct {
	mu      sync.RWMutex
	limit   int
	seq     uint64
	batches []Batch
	now     func() int64
}

// NewJournal creates a journal holding at most limit batches.
func NewJournal(limit int, now func() int64) *Journal {
	if limit <= 0 {
		limit = 64
	}
	return &Journal{limit: limit, now: now}
}

// ApplyOperations records ops as a new batch.
func (j *Journal) ApplyOperations(ops []Operation) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.seq++
	b := Batch{Seq: j.seq, Ops: append([]Operation(nil), ops...)}
	if j.now != nil {
		b.Timestamp = j.now()
	}
	j.batches = append(j.batches, b)
	if over := len(j.batches) - j.limit; over > 0 {
		j.batches = append([]Batch(nil), j.batches[over:]...)
	}
	return nil
}

// Latest returns the sequence number of the newest batch.
func (j *Journal) Latest() uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.seq
}

// Since returns the batches after seq and the latest sequence number.
// complete is false when batches after seq were already evicted, in which
// case the caller should reload the full marker collection.
func (j *Journal) Since(seq uint64) (batches []Batch, latest uint64, complete bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	latest = j.seq
	if seq >= j.seq {
		return nil, latest, true
	}
	complete = true
	if len(j.batches) > 0 && j.batches[0].Seq > seq+1 {
		complete = false
	}
	for _, b := range j.batches {
		if b.Seq > seq {
			batches = append(batches, b)
		}
	}
	return batches, latest, complete
}
