package upsell

import "hash/fnv"

// StableRating derives a deterministic display rating in [3.5, 5.0] from an
// item id. The same id always yields the same rating, so the menu looks
// consistent across reloads without storing review data.
func StableRating(id string) float64 {
	h := fnv.New32a()
	h.Write([]byte(id))
	// 16 steps of 0.1 spanning 3.5 .. 5.0
	return 3.5 + float64(h.Sum32()%16)*0.1
}
