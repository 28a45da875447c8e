package models

import "time"

// DatasetReference describes the dataset a response was computed from.
type DatasetReference struct {
	Source   string `json:"source"`
	Records  int    `json:"records"`
	LoadedAt int64  `json:"loadedAt"`
}

// ReferencesModel References model for related data
type ReferencesModel struct {
	Datasets []DatasetReference `json:"datasets"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Datasets: []DatasetReference{},
	}
}

// NewDatasetReferences references a single loaded dataset.
func NewDatasetReferences(source string, records int, loadedAt time.Time) ReferencesModel {
	return ReferencesModel{
		Datasets: []DatasetReference{{
			Source:   source,
			Records:  records,
			LoadedAt: loadedAt.UnixMilli(),
		}},
	}
}
