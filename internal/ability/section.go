package ability

import (
	"fmt"

	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
)

// SectionKind identifies the phase an ability is in
type SectionKind int

const (
	SectionStartup SectionKind = iota
	SectionActive
	SectionRecovery
)

// String returns the lowercase name used in catalogs and events
func (k SectionKind) String() string {
	switch k {
	case SectionStartup:
		return "startup"
	case SectionActive:
		return "active"
	case SectionRecovery:
		return "recovery"
	default:
		return fmt.Sprintf("section(%d)", int(k))
	}
}

// ParseSectionKind converts a catalog name back into a SectionKind
func ParseSectionKind(s string) (SectionKind, error) {
	switch s {
	case "startup":
		return SectionStartup, nil
	case "active":
		return SectionActive, nil
	case "recovery":
		return SectionRecovery, nil
	default:
		return 0, apperr.InvalidArgumentf("unknown section kind %q", s)
	}
}

// Duration is either a fixed number of ticks or instant.
// The zero value is Fixed(0) and never passes track validation.
type Duration struct {
	ticks   uint32
	instant bool
}

// Fixed returns a duration lasting n ticks
func Fixed(n uint32) Duration {
	return Duration{ticks: n}
}

// Instant returns a duration that begins and ends within one tick
func Instant() Duration {
	return Duration{instant: true}
}

// IsInstant reports whether the duration is instant
func (d Duration) IsInstant() bool {
	return d.instant
}

// Ticks returns the fixed length; zero for instant durations
func (d Duration) Ticks() uint32 {
	if d.instant {
		return 0
	}
	return d.ticks
}

func (d Duration) String() string {
	if d.instant {
		return "instant"
	}
	return fmt.Sprintf("%d", d.ticks)
}

// Section is one phase of a track
type Section struct {
	Kind     SectionKind
	Duration Duration
}

// Startup returns a fixed startup (windup) section
func Startup(ticks uint32) Section {
	return Section{Kind: SectionStartup, Duration: Fixed(ticks)}
}

// Active returns a fixed active section; TickUsing runs on each of its ticks
func Active(ticks uint32) Section {
	return Section{Kind: SectionActive, Duration: Fixed(ticks)}
}

// Recovery returns a fixed recovery section
func Recovery(ticks uint32) Section {
	return Section{Kind: SectionRecovery, Duration: Fixed(ticks)}
}

// InstantOf returns an instant section of the given kind
func InstantOf(kind SectionKind) Section {
	return Section{Kind: kind, Duration: Instant()}
}

func (s Section) String() string {
	return fmt.Sprintf("%s(%s)", s.Kind, s.Duration)
}

// Track is the immutable timeline of an ability
type Track struct {
	sections []Section
}

// NewTrack validates and builds a track. An empty track or a fixed
// section shorter than one tick is a programming error in the ability definition.
func NewTrack(sections ...Section) (*Track, error) {
	if len(sections) == 0 {
		return nil, apperr.Validation("track must contain at least one section")
	}

	for i, sec := range sections {
		if sec.Kind < SectionStartup || sec.Kind > SectionRecovery {
			return nil, apperr.Validationf("section %d has unknown kind %d", i, int(sec.Kind))
		}
		if !sec.Duration.IsInstant() && sec.Duration.ticks < 1 {
			return nil, apperr.Validationf("section %d (%s) must last at least one tick", i, sec.Kind)
		}
	}

	copied := make([]Section, len(sections))
	copy(copied, sections)

	return &Track{sections: copied}, nil
}

// MustTrack is NewTrack for static definitions; it panics on an invalid track
func MustTrack(sections ...Section) *Track {
	track, err := NewTrack(sections...)
	if err != nil {
		panic(err)
	}
	return track
}

// Len returns the number of sections
func (t *Track) Len() int {
	return len(t.sections)
}

// Section returns the section at index i
func (t *Track) Section(i int) Section {
	return t.sections[i]
}

// Sections returns a copy of the sections
func (t *Track) Sections() []Section {
	out := make([]Section, len(t.sections))
	copy(out, t.sections)
	return out
}

// TotalTicks is the number of ticks between activation and completion.
// Instant sections collapse into the pass that opens them and add nothing.
func (t *Track) TotalTicks() uint32 {
	var total uint32
	for _, sec := range t.sections {
		total += sec.Duration.Ticks()
	}
	return total
}
