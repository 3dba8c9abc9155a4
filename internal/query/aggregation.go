// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package query

import "github.com/trailbook/trailbook/models"

// Stage is one step of an aggregation pipeline. Stages execute strictly in
// sequence; each stage consumes the output set of the previous one. The
// interface is sealed: the store capability switches over the concrete
// stage types below and rejects anything else.
type Stage interface {
	stage()
}

// MatchStage keeps only the documents satisfying the filter.
type MatchStage struct {
	Filter Filter
}

// GroupStage partitions documents by a group key and reduces each
// partition with the configured accumulators. The key value is written to
// the GroupIDField of every output document.
type GroupStage struct {
	Key          GroupKey
	Accumulators []Accumulator
}

// SortStage orders documents by the given keys, stable with respect to the
// incoming order.
type SortStage struct {
	Keys []SortKey
}

// ProjectStage restricts the fields of every document. Include and Exclude
// are mutually exclusive, mirroring Projection.
type ProjectStage struct {
	Include []string
	Exclude []string
}

// UnwindStage replaces each document carrying an array field with one copy
// per array element, the field holding that single element. Documents
// without the field (or with an empty array) are dropped.
type UnwindStage struct {
	Field string
}

// AddFieldStage copies the value of FromField into a new field Name on
// every document.
type AddFieldStage struct {
	Name      string
	FromField string
}

// LimitStage truncates the document set to at most N documents.
type LimitStage struct {
	N int
}

// GeoNearStage computes the distance from Origin to each document's start
// location, writes it (scaled by Multiplier, which converts from meters)
// into DistanceField, and orders the output by ascending distance.
type GeoNearStage struct {
	Origin        models.GeoPoint
	DistanceField string
	Multiplier    float64
}

func (MatchStage) stage()    {}
func (GroupStage) stage()    {}
func (SortStage) stage()     {}
func (ProjectStage) stage()  {}
func (UnwindStage) stage()   {}
func (AddFieldStage) stage() {}
func (LimitStage) stage()    {}
func (GeoNearStage) stage()  {}

// GroupIDField is the output field holding each group's key value. It is
// dropped from caller-visible results by a trailing Project stage where the
// key has already been copied to a named field.
const GroupIDField = "_id"

// KeyTransform selects how a group key is derived from the source field.
type KeyTransform int

const (
	// TransformNone groups by the field value as-is.
	TransformNone KeyTransform = iota

	// TransformUpper groups by the upper-cased string value.
	TransformUpper

	// TransformMonth groups by the 1-12 month number of an RFC 3339
	// timestamp value.
	TransformMonth
)

// GroupKey derives the partition key of a GroupStage from a document field.
type GroupKey struct {
	Field     string
	Transform KeyTransform
}

// AccOp is an accumulator operation applied to each group partition.
type AccOp int

const (
	// AccCount counts the documents in the partition.
	AccCount AccOp = iota

	// AccSum sums the numeric values of Field across the partition.
	AccSum

	// AccAvg averages the numeric values of Field across the partition.
	AccAvg

	// AccMin takes the minimum numeric value of Field.
	AccMin

	// AccMax takes the maximum numeric value of Field.
	AccMax

	// AccPush collects the values of Field into an array, in document
	// order.
	AccPush
)

// Accumulator writes one reduced value per group into the output document
// under Name. Field is unused for AccCount.
type Accumulator struct {
	Name  string
	Op    AccOp
	Field string
}

// Pipeline is an immutable ordered sequence of aggregation stages. This
// package only constructs pipelines; execution is delegated entirely to
// the document store capability.
type Pipeline struct {
	Stages []Stage
}

// Prepend returns a new pipeline with s inserted before every existing
// stage. Visibility hooks use it to inject their match filter ahead of the
// analytical stages, so hidden documents can never influence statistics.
func (p Pipeline) Prepend(s Stage) Pipeline {
	stages := make([]Stage, 0, len(p.Stages)+1)
	stages = append(stages, s)
	stages = append(stages, p.Stages...)
	return Pipeline{Stages: stages}
}
