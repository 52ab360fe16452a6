package queue

import "testing"

func TestBucketQueueNegativePriority(t *testing.T) {
	q := NewBucketQueue[int]()
	expectPanic(t, ErrNegativePriority, func() { q.Insert(1, -1) })
	q.Insert(1, 4)
	expectPanic(t, ErrNegativePriority, func() { q.DecreasePriority(1, -3) })
}

func TestBucketQueueGrows(t *testing.T) {
	q := NewBucketQueue[int]()
	q.Insert(1, 10*DEFAULT_BUCKET_CAPACITY)
	q.Insert(2, 3*DEFAULT_BUCKET_CAPACITY)
	if len(q.buckets) != 10*DEFAULT_BUCKET_CAPACITY+1 {
		t.Errorf("bucket count is %v. Should be %v", len(q.buckets), 10*DEFAULT_BUCKET_CAPACITY+1)
	}
	if q.ExtractMinimum() != 2 || q.ExtractMinimum() != 1 {
		t.Errorf("wrong extraction order after growing")
	}
	if q.minPriority != noPriority {
		t.Errorf("min priority is %v. Should be none", q.minPriority)
	}
}

func TestBucketQueueSameBucket(t *testing.T) {
	q := NewBucketQueue[string]()
	q.Insert("a", 2)
	q.Insert("b", 2)
	q.Insert("c", 2)
	// move the middle node of the list
	q.DecreasePriority("b", 1)
	if q.Min() != "b" || q.MinPriority() != 1 {
		t.Errorf("min is %v (%v). Should be b (1)", q.Min(), q.MinPriority())
	}
	q.ExtractMinimum()
	seen := map[string]bool{}
	for !q.IsEmpty() {
		if q.MinPriority() != 2 {
			t.Errorf("priority is %v. Should be 2", q.MinPriority())
		}
		seen[q.ExtractMinimum()] = true
	}
	if !seen["a"] || !seen["c"] || len(seen) != 2 {
		t.Errorf("remaining elements are %v. Should be a and c", seen)
	}
}
