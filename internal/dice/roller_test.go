package dice_test

import (
	"testing"

	"github.com/KirkDiggler/ability-engine/internal/dice"
	mockdice "github.com/KirkDiggler/ability-engine/internal/dice/mock"
	apperr "github.com/KirkDiggler/ability-engine/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestParse(t *testing.T) {
	tests := []struct {
		notation string
		want     dice.Expression
		wantErr  bool
	}{
		{notation: "2d6+3", want: dice.Expression{Count: 2, Sides: 6, Bonus: 3}},
		{notation: "1d10", want: dice.Expression{Count: 1, Sides: 10}},
		{notation: "d20", want: dice.Expression{Count: 1, Sides: 20}},
		{notation: " 3D4-1 ", want: dice.Expression{Count: 3, Sides: 4, Bonus: -1}},
		{notation: "5", want: dice.Expression{Bonus: 5}},
		{notation: "", wantErr: true},
		{notation: "2x6", wantErr: true},
		{notation: "0d6", wantErr: true},
		{notation: "2d0", wantErr: true},
		{notation: "2d6+x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.notation, func(t *testing.T) {
			got, err := dice.Parse(tt.notation)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsInvalidArgument(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpression(t *testing.T) {
	e := dice.MustParse("2d6+3")
	assert.Equal(t, "2d6+3", e.String())
	assert.Equal(t, 15, e.Max())
	assert.Equal(t, "1d8", dice.MustParse("1d8").String())
	assert.Panics(t, func() { dice.MustParse("nope") })
}

func TestExpression_RollUsesRoller(t *testing.T) {
	ctrl := gomock.NewController(t)
	roller := mockdice.NewMockRoller(ctrl)
	roller.EXPECT().Roll(2, 6, 3).Return(&dice.RollResult{Total: 10, Rolls: []int{3, 4}, Bonus: 3, Count: 2, Sides: 6}, nil)

	result, err := dice.MustParse("2d6+3").Roll(roller)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Total)
	assert.Equal(t, 7, result.RawTotal())
}

func TestRandomRoller(t *testing.T) {
	a := dice.NewRandomRoller(7)
	b := dice.NewRandomRoller(7)

	for i := 0; i < 50; i++ {
		ra, err := a.Roll(3, 6, 2)
		require.NoError(t, err)
		rb, err := b.Roll(3, 6, 2)
		require.NoError(t, err)

		assert.Equal(t, ra.Rolls, rb.Rolls, "same seed replays the same rolls")
		assert.GreaterOrEqual(t, ra.Total, 5)
		assert.LessOrEqual(t, ra.Total, 20)
		for _, roll := range ra.Rolls {
			assert.True(t, roll >= 1 && roll <= 6)
		}
	}

	_, err := a.Roll(1, 0, 0)
	assert.Error(t, err)
	_, err = a.Roll(-1, 6, 0)
	assert.Error(t, err)
}

func TestManualMockRoller_Roll(t *testing.T) {
	tests := []struct {
		name       string
		setupRolls []int
		count      int
		sides      int
		bonus      int
		wantTotal  int
		wantRolls  []int
		wantErr    bool
	}{
		{
			name:       "single d20 roll",
			setupRolls: []int{15},
			count:      1,
			sides:      20,
			wantTotal:  15,
			wantRolls:  []int{15},
		},
		{
			name:       "2d6+3",
			setupRolls: []int{4, 5},
			count:      2,
			sides:      6,
			bonus:      3,
			wantTotal:  12,
			wantRolls:  []int{4, 5},
		},
		{
			name:       "not enough rolls",
			setupRolls: []int{10},
			count:      2,
			sides:      12,
			wantErr:    true,
		},
		{
			name:       "invalid roll for die size",
			setupRolls: []int{7},
			count:      1,
			sides:      6,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roller := mockdice.NewManualMockRoller()
			roller.SetRolls(tt.setupRolls)

			result, err := roller.Roll(tt.count, tt.sides, tt.bonus)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, result.Total)
			assert.Equal(t, tt.wantRolls, result.Rolls)
			assert.Zero(t, roller.Remaining())
		})
	}
}
