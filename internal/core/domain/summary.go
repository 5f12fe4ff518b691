package domain

import "time"

// Count is a key with its number of occurrences.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DatasetSummary describes a dataset at a glance.
type DatasetSummary struct {
	// Posts is the number of records.
	Posts int `json:"posts"`

	// Authors is the number of distinct creators.
	Authors int `json:"authors"`

	// Domains is the number of distinct URL domains.
	Domains int `json:"domains"`

	// First and Last bound the known timestamps.
	// Both are zero when no record has a timestamp.
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`

	// Undated is the number of records without a timestamp.
	Undated int `json:"undated"`

	// Sources counts records per data source, largest first.
	Sources []Count `json:"sources"`
}

// DataVersion describes one folder of the data directory.
type DataVersion struct {
	// Name is the folder name.
	Name string `json:"name"`

	// Version is the content of the folder's VERSION file, if any.
	Version string `json:"version,omitempty"`

	// Files is the number of regular, non-hidden files in the folder tree.
	Files int `json:"files"`

	// ModifiedAt is the newest modification time in the folder tree.
	ModifiedAt time.Time `json:"modified_at"`
}
