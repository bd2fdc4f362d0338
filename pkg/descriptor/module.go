// SPDX-License-Identifier: BSD-3-Clause

package descriptor

// Kind discriminates the two module descriptor shapes.
type Kind int

const (
	// KindSettings is a single-configuration module (settings.json).
	KindSettings Kind = iota
	// KindTOC is a multi-configuration module (contents.json).
	KindTOC
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindSettings:
		return "single-configuration"
	case KindTOC:
		return "multi-configuration"
	default:
		return "unknown"
	}
}

// Module is a loaded module directory, resolved once into its descriptor
// shape. Exactly one of Settings or TOC is non-nil, matching Kind.
type Module struct {
	// Dir is the module directory.
	Dir string
	// Kind is the descriptor shape found in Dir.
	Kind Kind
	// Settings is set when Kind is KindSettings.
	Settings *Settings
	// TOC is set when Kind is KindTOC.
	TOC *TOC
}

// Load probes dir for a descriptor and parses it. settings.json takes
// precedence over contents.json, matching registration order. A directory
// with neither yields a *NoDescriptorError.
func Load(dir string) (*Module, error) {
	switch {
	case HasSettings(dir):
		settings, err := ParseSettings(settingsPathIn(dir))
		if err != nil {
			return nil, err
		}
		return &Module{Dir: dir, Kind: KindSettings, Settings: settings}, nil
	case HasTOC(dir):
		toc, err := ParseTOC(dir)
		if err != nil {
			return nil, err
		}
		return &Module{Dir: dir, Kind: KindTOC, TOC: toc}, nil
	default:
		return nil, &NoDescriptorError{Dir: dir}
	}
}

// Name returns the module identifier declared by the descriptor.
func (m *Module) Name() string {
	if m.Kind == KindTOC {
		return m.TOC.Name()
	}
	return m.Settings.Name()
}

// LongName returns the human-readable module name.
func (m *Module) LongName() string {
	if m.Kind == KindTOC {
		return m.TOC.LongName()
	}
	return m.Settings.LongName()
}
