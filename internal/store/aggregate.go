// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The trailbook Authors

package store

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/trailbook/trailbook/internal/query"
	"github.com/trailbook/trailbook/models"
)

// earthRadiusMeters is the mean Earth radius used by the haversine
// distance computation.
const earthRadiusMeters = 6371000

// Aggregate implements [DocumentStore.Aggregate]. The full collection (in
// insertion order) enters the first stage; each stage consumes the output
// of the previous one.
func (s *MemStore) Aggregate(ctx context.Context, collectionName string, p query.Pipeline) ([]models.Document, error) {
	if err := s.usable(ctx); err != nil {
		return nil, err
	}

	docs, err := s.scan(collectionName, nil)
	if err != nil {
		return nil, err
	}

	for _, stage := range p.Stages {
		docs, err = runStage(docs, stage)
		if err != nil {
			return nil, err
		}
	}

	return docs, nil
}

func runStage(docs []models.Document, stage query.Stage) ([]models.Document, error) {
	switch st := stage.(type) {
	case query.MatchStage:
		return runMatch(docs, st), nil
	case query.GroupStage:
		return runGroup(docs, st), nil
	case query.SortStage:
		sortDocuments(docs, st.Keys)
		return docs, nil
	case query.ProjectStage:
		for _, doc := range docs {
			project(doc, st.Include, st.Exclude)
		}
		return docs, nil
	case query.UnwindStage:
		return runUnwind(docs, st), nil
	case query.AddFieldStage:
		for _, doc := range docs {
			if v, ok := doc[st.FromField]; ok {
				doc[st.Name] = v
			}
		}
		return docs, nil
	case query.LimitStage:
		if st.N >= 0 && len(docs) > st.N {
			docs = docs[:st.N]
		}
		return docs, nil
	case query.GeoNearStage:
		return runGeoNear(docs, st), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedStage, stage)
	}
}

func runMatch(docs []models.Document, st query.MatchStage) []models.Document {
	out := docs[:0]
	for _, doc := range docs {
		if matchFilter(doc, st.Filter) {
			out = append(out, doc)
		}
	}
	return out
}

// runUnwind replaces each document carrying the array field with one copy
// per element. Documents without the field or with an empty array are
// dropped; a non-array value passes through as a single document.
func runUnwind(docs []models.Document, st query.UnwindStage) []models.Document {
	var out []models.Document
	for _, doc := range docs {
		value, ok := doc[st.Field]
		if !ok {
			continue
		}

		elements, isArray := value.([]any)
		if !isArray {
			out = append(out, doc)
			continue
		}

		for _, element := range elements {
			unwound := doc.Clone()
			unwound[st.Field] = element
			out = append(out, unwound)
		}
	}
	return out
}

// runGroup partitions documents by the group key and reduces every
// partition with the stage's accumulators. Groups appear in first-seen
// order, which keeps the output deterministic before any sort stage.
func runGroup(docs []models.Document, st query.GroupStage) []models.Document {
	type partition struct {
		key  any
		docs []models.Document
	}

	index := make(map[string]int)
	var partitions []partition

	for _, doc := range docs {
		key, ok := groupKeyValue(doc, st.Key)
		if !ok {
			continue
		}

		mapKey := fmt.Sprintf("%v", key)
		i, seen := index[mapKey]
		if !seen {
			i = len(partitions)
			index[mapKey] = i
			partitions = append(partitions, partition{key: key})
		}
		partitions[i].docs = append(partitions[i].docs, doc)
	}

	out := make([]models.Document, 0, len(partitions))
	for _, part := range partitions {
		row := models.Document{query.GroupIDField: part.key}
		for _, acc := range st.Accumulators {
			row[acc.Name] = accumulate(part.docs, acc)
		}
		out = append(out, row)
	}

	return out
}

// groupKeyValue derives the partition key from a document field. Documents
// missing the field are excluded from grouping entirely.
func groupKeyValue(doc models.Document, key query.GroupKey) (any, bool) {
	value, ok := doc[key.Field]
	if !ok || value == nil {
		return nil, false
	}

	switch key.Transform {
	case query.TransformUpper:
		return strings.ToUpper(fmt.Sprintf("%v", value)), true
	case query.TransformMonth:
		raw, isString := value.(string)
		if !isString {
			return nil, false
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, false
		}
		return float64(t.Month()), true
	default:
		return value, true
	}
}

func accumulate(docs []models.Document, acc query.Accumulator) any {
	switch acc.Op {
	case query.AccCount:
		return float64(len(docs))
	case query.AccPush:
		values := make([]any, 0, len(docs))
		for _, doc := range docs {
			if v, ok := doc[acc.Field]; ok {
				values = append(values, v)
			}
		}
		return values
	}

	var numbers []float64
	for _, doc := range docs {
		if n, ok := doc.Number(acc.Field); ok {
			numbers = append(numbers, n)
		}
	}
	if len(numbers) == 0 {
		return nil
	}

	switch acc.Op {
	case query.AccSum:
		sum := 0.0
		for _, n := range numbers {
			sum += n
		}
		return sum
	case query.AccAvg:
		sum := 0.0
		for _, n := range numbers {
			sum += n
		}
		return sum / float64(len(numbers))
	case query.AccMin:
		minimum := numbers[0]
		for _, n := range numbers {
			if n < minimum {
				minimum = n
			}
		}
		return minimum
	case query.AccMax:
		maximum := numbers[0]
		for _, n := range numbers {
			if n > maximum {
				maximum = n
			}
		}
		return maximum
	default:
		return nil
	}
}

// runGeoNear computes the scaled haversine distance from the stage origin
// to every document's start location and orders the output nearest first.
// Documents without usable coordinates are dropped, matching the behavior
// of geo queries over a sparse location field.
func runGeoNear(docs []models.Document, st query.GeoNearStage) []models.Document {
	var out []models.Document
	for _, doc := range docs {
		point, ok := startCoordinates(doc)
		if !ok {
			continue
		}

		meters := haversineMeters(st.Origin, point)
		doc[st.DistanceField] = meters * st.Multiplier
		out = append(out, doc)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].Number(st.DistanceField)
		b, _ := out[j].Number(st.DistanceField)
		return a < b
	})

	return out
}

// startCoordinates extracts the [lng, lat] pair from a document's
// startLocation field.
func startCoordinates(doc models.Document) (models.GeoPoint, bool) {
	location, ok := doc["startLocation"].(map[string]any)
	if !ok {
		return models.GeoPoint{}, false
	}
	coords, ok := location["coordinates"].([]any)
	if !ok || len(coords) != 2 {
		return models.GeoPoint{}, false
	}

	lng, okLng := toFloat64(coords[0])
	lat, okLat := toFloat64(coords[1])
	if !okLng || !okLat {
		return models.GeoPoint{}, false
	}

	return models.GeoPoint{Lng: lng, Lat: lat}, true
}

// haversineMeters is the great-circle distance between two points on a
// sphere of Earth's mean radius.
func haversineMeters(a, b models.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLng*sinLng

	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}
