package geometry

import (
	"golang.org/x/xerrors"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// HittableList is a collection of objects tested with a linear scan
type HittableList struct {
	Objects []Hittable
}

// NewHittableList creates a list holding the given objects
func NewHittableList(objects ...Hittable) *HittableList {
	return &HittableList{Objects: append([]Hittable(nil), objects...)}
}

// Add appends an object to the list
func (l *HittableList) Add(object Hittable) {
	l.Objects = append(l.Objects, object)
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.Objects = nil
}

// Len returns the number of objects
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the closest hit among all objects
func (l *HittableList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, object := range l.Objects {
		if hit, isHit := object.Hit(ray, rayT.WithMax(closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}

// Validate checks every object that supports validation
func (l *HittableList) Validate() error {
	for i, object := range l.Objects {
		if object == nil {
			return xerrors.Errorf("object %d is nil: %w", i, core.ErrInvalidConfiguration)
		}
		v, ok := object.(Validator)
		if !ok {
			continue
		}
		if err := v.Validate(); err != nil {
			return xerrors.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}
