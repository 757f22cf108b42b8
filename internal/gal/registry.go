package gal

import "sort"

// Registry maps device selectors to profiles.
type Registry struct {
	profiles map[string]*Profile
}

func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

// DefaultRegistry returns a registry holding the built-in devices.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, c := range []Chip{ChipGAL20V8, ChipGAL22V10} {
		r.profiles[normalizeDevice(c.Name())] = c.Profile()
	}
	return r
}

// Register validates p and makes it available under its name. A profile
// with the same name replaces the previous one.
func (r *Registry) Register(p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.profiles[normalizeDevice(p.Name)] = p
	return nil
}

// Lookup returns the profile for a device selector. Matching is
// case-insensitive. Registered profiles take precedence; the built-in
// chips resolve in any registry.
func (r *Registry) Lookup(name string) (*Profile, error) {
	if p, ok := r.profiles[normalizeDevice(name)]; ok {
		return p, nil
	}
	c, err := ParseChip(name)
	if err != nil {
		return nil, err
	}
	return c.Profile(), nil
}

// Names returns the registered device names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for _, p := range r.profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}
