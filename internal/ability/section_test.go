package ability_test

import (
	"testing"

	"github.com/KirkDiggler/ability-engine/internal/ability"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrack(t *testing.T) {
	tests := []struct {
		name      string
		sections  []ability.Section
		wantErr   bool
		wantTotal uint32
	}{
		{
			name:      "windup strike recovery",
			sections:  []ability.Section{ability.Startup(3), ability.Active(2), ability.Recovery(3)},
			wantTotal: 8,
		},
		{
			name:      "instant sections add no ticks",
			sections:  []ability.Section{ability.Startup(1), ability.InstantOf(ability.SectionActive), ability.Recovery(10)},
			wantTotal: 11,
		},
		{
			name:      "single instant",
			sections:  []ability.Section{ability.InstantOf(ability.SectionActive)},
			wantTotal: 0,
		},
		{
			name:    "empty track",
			wantErr: true,
		},
		{
			name:     "zero length fixed section",
			sections: []ability.Section{ability.Startup(2), ability.Active(0)},
			wantErr:  true,
		},
		{
			name:     "zero value section",
			sections: []ability.Section{{}},
			wantErr:  true,
		},
		{
			name:     "unknown kind",
			sections: []ability.Section{{Kind: ability.SectionKind(9), Duration: ability.Fixed(1)}},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			track, err := ability.NewTrack(tt.sections...)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, len(tt.sections), track.Len())
			assert.Equal(t, tt.wantTotal, track.TotalTicks())
		})
	}
}

func TestTrack_IsImmutable(t *testing.T) {
	sections := []ability.Section{ability.Startup(2), ability.Recovery(2)}
	track := ability.MustTrack(sections...)

	sections[0] = ability.Active(9)
	copied := track.Sections()
	copied[1] = ability.Active(9)

	assert.Equal(t, ability.Startup(2), track.Section(0))
	assert.Equal(t, ability.Recovery(2), track.Section(1))
}

func TestMustTrack_PanicsOnInvalidTrack(t *testing.T) {
	assert.Panics(t, func() { ability.MustTrack() })
}

func TestParseSectionKind(t *testing.T) {
	for _, kind := range []ability.SectionKind{ability.SectionStartup, ability.SectionActive, ability.SectionRecovery} {
		parsed, err := ability.ParseSectionKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ability.ParseSectionKind("windup")
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestDuration(t *testing.T) {
	assert.True(t, ability.Instant().IsInstant())
	assert.Equal(t, uint32(0), ability.Instant().Ticks())
	assert.Equal(t, uint32(4), ability.Fixed(4).Ticks())
	assert.Equal(t, "active(instant)", ability.InstantOf(ability.SectionActive).String())
	assert.Equal(t, "startup(3)", ability.Startup(3).String())
}
