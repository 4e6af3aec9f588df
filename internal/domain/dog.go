// Package domain contains core business entities and rules.
package domain

// BreedPics holds the image URLs for one breed.
type BreedPics struct {
	// URLs are the image locations, in upstream order.
	URLs []string
}

// BreedList maps each breed name to its sub-breeds.
// A breed without sub-breeds maps to an empty slice.
type BreedList struct {
	Breeds map[string][]string
}
