package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/KirkDiggler/ability-engine/internal/abilities"
	"github.com/KirkDiggler/ability-engine/internal/ability"
	"github.com/KirkDiggler/ability-engine/internal/catalog"
	mockdice "github.com/KirkDiggler/ability-engine/internal/dice/mock"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/KirkDiggler/ability-engine/internal/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func behaviors() map[string]catalog.Behavior {
	return abilities.Behaviors(mockdice.NewManualMockRoller())
}

func scripts() catalog.ScriptLoader {
	return script.NewRuntime(&script.RuntimeConfig{
		FS:     catalog.DefaultScripts(),
		Roller: mockdice.NewManualMockRoller(),
	})
}

func TestDefault_Builds(t *testing.T) {
	reg := ability.NewRegistry()

	types, err := catalog.Default().Build(reg, behaviors(), scripts())
	require.NoError(t, err)
	require.Len(t, types, 9)

	assert.Equal(t, []string{
		"bite", "claw_sweep", "tail_whip", "fire_breath", "fear_aura",
		"phase_shift", "hurt", "die", "sleep",
	}, reg.Names())

	bite, ok := reg.Get("bite")
	require.True(t, ok)
	assert.Equal(t, uint32(3), bite.Cooldown())
	assert.Equal(t, uint32(8), bite.Track().TotalTicks())

	aura, _ := reg.Get("fear_aura")
	assert.True(t, aura.Overlay())

	die, _ := reg.Get("die")
	assert.True(t, die.UsableWhenDead())

	claw, _ := reg.Get("claw_sweep")
	assert.True(t, claw.Track().Section(1).Duration.IsInstant())
}

func TestDefault_BuildTwiceConflicts(t *testing.T) {
	reg := ability.NewRegistry()
	_, err := catalog.Default().Build(reg, behaviors(), scripts())
	require.NoError(t, err)

	// Fresh types under the same names
	_, err = catalog.Default().Build(reg, behaviors(), scripts())
	require.Error(t, err)
	assert.True(t, apperr.IsConfiguration(err))
	assert.Equal(t, 9, reg.Len())
}

func TestBuild_InvalidLaterEntryRegistersNothing(t *testing.T) {
	c, err := catalog.Parse([]byte(`
abilities:
  - name: bite
    behavior: strike
    track: [{kind: active, ticks: 1}]
  - name: roar
    behavior: shout
    track: [{kind: active, ticks: 1}]
`))
	require.NoError(t, err)

	reg := ability.NewRegistry()
	_, err = c.Build(reg, behaviors(), nil)
	require.Error(t, err)
	assert.True(t, apperr.IsConfiguration(err))

	_, ok := reg.Get("bite")
	assert.False(t, ok)
	assert.Zero(t, reg.Len())
}

func TestBuild_InvalidEntries(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		scripts bool
	}{
		{
			name: "unknown behavior",
			doc: `
abilities:
  - name: roar
    behavior: shout
    track: [{kind: active, ticks: 1}]
`,
		},
		{
			name: "empty track",
			doc: `
abilities:
  - name: roar
    behavior: flinch
`,
		},
		{
			name: "unknown section kind",
			doc: `
abilities:
  - name: roar
    behavior: flinch
    track: [{kind: windup, ticks: 1}]
`,
		},
		{
			name: "instant section with ticks",
			doc: `
abilities:
  - name: roar
    behavior: flinch
    track: [{kind: active, ticks: 2, instant: true}]
`,
		},
		{
			name: "duplicate name",
			doc: `
abilities:
  - name: roar
    behavior: flinch
    track: [{kind: active, ticks: 1}]
  - name: roar
    behavior: flinch
    track: [{kind: active, ticks: 1}]
`,
		},
		{
			name: "missing name",
			doc: `
abilities:
  - behavior: flinch
    track: [{kind: active, ticks: 1}]
`,
		},
		{
			name: "bad dice params",
			doc: `
abilities:
  - name: roar
    behavior: strike
    track: [{kind: active, ticks: 1}]
    params: {damage: lots}
`,
		},
		{
			name: "script behavior without a runtime",
			doc: `
abilities:
  - name: roar
    behavior: script
    script: tail_whip.tengo
    track: [{kind: active, ticks: 1}]
`,
		},
		{
			name:    "script behavior without a script",
			scripts: true,
			doc: `
abilities:
  - name: roar
    behavior: script
    track: [{kind: active, ticks: 1}]
`,
		},
		{
			name:    "missing script file",
			scripts: true,
			doc: `
abilities:
  - name: roar
    behavior: script
    script: roar.tengo
    track: [{kind: active, ticks: 1}]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := catalog.Parse([]byte(tt.doc))
			require.NoError(t, err)

			var loader catalog.ScriptLoader
			if tt.scripts {
				loader = scripts()
			}

			reg := ability.NewRegistry()
			_, err = c.Build(reg, behaviors(), loader)
			require.Error(t, err)
			assert.True(t, apperr.IsConfiguration(err), "got %v", err)
			assert.Zero(t, reg.Len())
		})
	}
}

func TestBuild_RequiresRegistry(t *testing.T) {
	_, err := catalog.Default().Build(nil, behaviors(), nil)
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := catalog.Parse([]byte("abilities: [unclosed"))
	require.Error(t, err)
	assert.True(t, apperr.IsConfiguration(err))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abilities.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
abilities:
  - name: roar
    behavior: flinch
    cooldown: 4
    track:
      - {kind: active, instant: true}
      - {kind: recovery, ticks: 2}
`), 0o600))

	c, err := catalog.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, c.Abilities, 1)
	assert.Equal(t, "roar", c.Abilities[0].Name)
	assert.Equal(t, uint32(4), c.Abilities[0].Cooldown)

	track, err := c.Abilities[0].BuildTrack()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), track.TotalTicks())

	_, err = catalog.LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, apperr.IsConfiguration(err))
	assert.Contains(t, apperr.GetMeta(err), "path")
}

func TestParams(t *testing.T) {
	p := catalog.Params{
		"damage": "2d6+2",
		"pulse":  5,
		"ratio":  1.5,
		"count":  "7",
		"loud":   true,
	}

	assert.Equal(t, "2d6+2", p.String("damage", ""))
	assert.Equal(t, "5", p.String("pulse", ""))
	assert.Equal(t, "none", p.String("missing", "none"))

	assert.Equal(t, 5, p.Int("pulse", 0))
	assert.Equal(t, 1, p.Int("ratio", 0))
	assert.Equal(t, 7, p.Int("count", 0))
	assert.Equal(t, 9, p.Int("damage", 9))

	assert.True(t, p.Bool("loud", false))
	assert.True(t, p.Bool("missing", true))

	expr, err := p.Dice("damage", "1d4")
	require.NoError(t, err)
	assert.Equal(t, 2, expr.Count)
	assert.Equal(t, 6, expr.Sides)
	assert.Equal(t, 2, expr.Bonus)

	expr, err = p.Dice("missing", "1d4")
	require.NoError(t, err)
	assert.Equal(t, 4, expr.Sides)
}
