package scene

// Host owns whatever represents a scene at runtime.
type Host interface {
	DespawnAll()
	SpawnTile(Tile)
	SpawnRoad(Segment)
}

// Regenerator rebuilds a host's scene from scratch whenever the params change.
// The zero value is ready to use.
type Regenerator struct {
	params     Params
	applied    bool
	generation uint64
	current    *Scene
}

// Sync brings h in line with p and reports whether a rebuild happened. The
// first call always rebuilds. On error h is left untouched.
func (r *Regenerator) Sync(p Params, h Host) (bool, error) {
	if r.applied && p == r.params {
		return false, nil
	}

	s, err := Build(p)
	if err != nil {
		return false, err
	}

	h.DespawnAll()
	for _, t := range s.Tiles {
		h.SpawnTile(t)
	}
	for _, seg := range s.Roads {
		h.SpawnRoad(seg)
	}

	r.params = p
	r.applied = true
	r.current = s
	r.generation++
	return true, nil
}

// Invalidate forces the next Sync to rebuild.
func (r *Regenerator) Invalidate() {
	r.applied = false
}

// Generation counts completed rebuilds.
func (r *Regenerator) Generation() uint64 {
	return r.generation
}

// Current returns the most recently applied scene, or nil before the first
// rebuild.
func (r *Regenerator) Current() *Scene {
	return r.current
}
