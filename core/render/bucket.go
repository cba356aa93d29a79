package render

import "fmt"

// Bucket is a named span of the day that maps to one wallpaper image.
type Bucket uint8

const (
	EarlyMorning Bucket = iota
	Morning
	LateMorning
	Afternoon
	LateAfternoon
	Evening
	LateEvening
	Night
	LateNight

	bucketCount
)

var bucketNames = [bucketCount]string{
	EarlyMorning:  "early_morning",
	Morning:       "morning",
	LateMorning:   "late_morning",
	Afternoon:     "afternoon",
	LateAfternoon: "late_afternoon",
	Evening:       "evening",
	LateEvening:   "late_evening",
	Night:         "night",
	LateNight:     "late_night",
}

// hourTable maps each hour of the day to its bucket.
var hourTable = [24]Bucket{
	0: LateNight, 1: LateNight, 2: LateNight, 3: LateNight,
	4: EarlyMorning, 5: EarlyMorning, 6: EarlyMorning,
	7: Morning, 8: Morning, 9: Morning,
	10: LateMorning, 11: LateMorning,
	12: Afternoon, 13: Afternoon, 14: Afternoon, 15: Afternoon,
	16: LateAfternoon, 17: LateAfternoon,
	18: Evening, 19: Evening,
	20: LateEvening,
	21: Night, 22: Night,
	23: LateNight,
}

// BucketFor returns the bucket for an hour of the day. Hours outside 0..23 wrap.
func BucketFor(hour int) Bucket {
	return hourTable[((hour%24)+24)%24]
}

// Buckets returns every bucket in day order, starting at EarlyMorning.
func Buckets() []Bucket {
	out := make([]Bucket, 0, bucketCount)
	for b := Bucket(0); b < bucketCount; b++ {
		out = append(out, b)
	}
	return out
}

// Valid reports whether b is one of the defined buckets.
func (b Bucket) Valid() bool { return b < bucketCount }

// String returns the asset base name of the bucket.
func (b Bucket) String() string {
	if !b.Valid() {
		return fmt.Sprintf("bucket(%d)", uint8(b))
	}
	return bucketNames[b]
}

// Hours returns the hours of the day that map to b, in ascending order.
func (b Bucket) Hours() []int {
	var out []int
	for h, hb := range hourTable {
		if hb == b {
			out = append(out, h)
		}
	}
	return out
}

// ParseBucket returns the bucket with the given asset name.
func ParseBucket(name string) (Bucket, error) {
	for b, n := range bucketNames {
		if n == name {
			return Bucket(b), nil
		}
	}
	return 0, fmt.Errorf("render: unknown bucket %q", name)
}
