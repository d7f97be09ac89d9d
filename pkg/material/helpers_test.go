package material

import "github.com/df07/go-raytracer/pkg/core"

// fixedSampler replays a constant value for every dimension
type fixedSampler struct {
	value float64
}

func (f fixedSampler) Get1D() float64 { return f.value }
func (f fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(f.value, f.value)
}
func (f fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(f.value, f.value, f.value)
}

// sequenceSampler replays 3D samples in order, then repeats the last one
type sequenceSampler struct {
	samples []core.Vec3
	next    int
}

func (s *sequenceSampler) Get1D() float64 { return s.Get3D().X }
func (s *sequenceSampler) Get2D() core.Vec2 {
	v := s.Get3D()
	return core.NewVec2(v.X, v.Y)
}
func (s *sequenceSampler) Get3D() core.Vec3 {
	v := s.samples[s.next]
	if s.next < len(s.samples)-1 {
		s.next++
	}
	return v
}
