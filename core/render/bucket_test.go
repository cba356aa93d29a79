package render

import "testing"

func TestBucketForScenarios(t *testing.T) {
	tests := []struct {
		hour int
		want Bucket
	}{
		{5, EarlyMorning},
		{23, LateNight},
		{12, Afternoon},
		{0, LateNight},
		{3, LateNight},
		{4, EarlyMorning},
		{7, Morning},
		{10, LateMorning},
		{16, LateAfternoon},
		{18, Evening},
		{20, LateEvening},
		{21, Night},
		{22, Night},
		{24, LateNight},
		{-1, LateNight},
		{-20, EarlyMorning},
		{48 + 13, Afternoon},
	}
	for _, tt := range tests {
		if got := BucketFor(tt.hour); got != tt.want {
			t.Fatalf("BucketFor(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestBucketsPartitionDay(t *testing.T) {
	seen := make(map[int]Bucket)
	for _, b := range Buckets() {
		hours := b.Hours()
		if len(hours) == 0 {
			t.Fatalf("bucket %s has no hours", b)
		}
		for _, h := range hours {
			if prev, dup := seen[h]; dup {
				t.Fatalf("hour %d in both %s and %s", h, prev, b)
			}
			seen[h] = b
			if got := BucketFor(h); got != b {
				t.Fatalf("BucketFor(%d) = %s, Hours() says %s", h, got, b)
			}
		}
	}
	if len(seen) != 24 {
		t.Fatalf("covered %d hours, want 24", len(seen))
	}
}

func TestParseBucket(t *testing.T) {
	for _, b := range Buckets() {
		got, err := ParseBucket(b.String())
		if err != nil {
			t.Fatalf("ParseBucket(%q): %v", b, err)
		}
		if got != b {
			t.Fatalf("ParseBucket(%q) = %s", b, got)
		}
	}
	if _, err := ParseBucket("noon"); err == nil {
		t.Fatal("expected error for unknown name")
	}
	if Bucket(200).Valid() {
		t.Fatal("expected out-of-range bucket to be invalid")
	}
}
