package render

import "sync"

const stagingBatchCap = 4096

// StagingBuffer is a per-worker batch of fragments that periodically
// flushes into a shared depth buffer and fragment list under a single
// mutex, instead of taking that lock per fragment. Each worker range gets
// its own StagingBuffer; Close flushes any residual fragments.
type StagingBuffer struct {
	depth *DepthBuffer
	mu    *sync.Mutex
	dst   *[]Fragment

	batch []Fragment
}

// NewStagingBuffer creates a staging buffer writing into the shared depth
// buffer and fragment list, both guarded by mu.
func NewStagingBuffer(depth *DepthBuffer, dst *[]Fragment, mu *sync.Mutex) *StagingBuffer {
	return &StagingBuffer{
		depth: depth,
		mu:    mu,
		dst:   dst,
		batch: make([]Fragment, 0, stagingBatchCap*2),
	}
}

// Push appends a fragment to the batch, transferring to the shared state
// once the batch reaches capacity.
func (s *StagingBuffer) Push(f Fragment) {
	s.batch = append(s.batch, f)
	if len(s.batch) >= stagingBatchCap {
		s.transfer()
	}
}

// transfer merges the batch into the shared depth buffer under the lock:
// a fragment survives only if its depth beats the current value at its
// pixel (closer wins, since view-space Z grows toward the camera).
func (s *StagingBuffer) transfer() {
	if len(s.batch) == 0 {
		return
	}
	s.mu.Lock()
	for _, f := range s.batch {
		if f.Depth > s.depth.Values[f.PID] {
			s.depth.Values[f.PID] = f.Depth
			*s.dst = append(*s.dst, f)
		}
	}
	s.mu.Unlock()
	s.batch = s.batch[:0]
}

// Close flushes any remaining batched fragments. Call once a worker's
// triangle range is fully rasterized.
func (s *StagingBuffer) Close() {
	s.transfer()
}
