package gfx

// DefaultCapacity is the number of instances one flush can draw.
const DefaultCapacity = 10000

// InstanceBatch is an ordered, capacity-bounded list of instance records.
// Insertion order is draw order. The backing array is allocated once and
// reused across frames.
type InstanceBatch struct {
	records []InstanceRecord
}

func NewInstanceBatch(capacity int) *InstanceBatch {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &InstanceBatch{records: make([]InstanceRecord, 0, capacity)}
}

// Push appends rec and reports whether it fit. A full batch drops rec.
func (b *InstanceBatch) Push(rec InstanceRecord) bool {
	if len(b.records) >= cap(b.records) {
		return false
	}
	b.records = append(b.records, rec)
	return true
}

// Clear empties the batch without releasing its storage.
func (b *InstanceBatch) Clear() {
	b.records = b.records[:0]
}

func (b *InstanceBatch) Len() int       { return len(b.records) }
func (b *InstanceBatch) Cap() int       { return cap(b.records) }
func (b *InstanceBatch) IsEmpty() bool  { return len(b.records) == 0 }
func (b *InstanceBatch) Remaining() int { return cap(b.records) - len(b.records) }

// Records returns the populated prefix. The slice aliases the batch and is
// invalidated by the next Push or Clear.
func (b *InstanceBatch) Records() []InstanceRecord {
	return b.records
}

// Bytes returns the populated prefix as the raw bytes uploaded to the GPU.
func (b *InstanceBatch) Bytes() []byte {
	return RecordBytes(b.records)
}
