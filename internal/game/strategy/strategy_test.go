package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/battleship/internal/game/core"
	"github.com/mitchelldurbincs/battleship/internal/testutil"
)

func TestNew(t *testing.T) {
	view := newView(t, 5)

	tests := []struct {
		name     string
		wantName string
		wantErr  error
	}{
		{NameHuntTarget, "Hunt & Target", nil},
		{NameNone, "None", nil},
		{"random", "", ErrUnknownStrategy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.name, view, testutil.NewTestRNG(1), testutil.NopLogger())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name())
		})
	}
}

func TestNullStrategy(t *testing.T) {
	var s Strategy = NullStrategy{}

	for i := 0; i < 3; i++ {
		c, err := s.ChooseShotLocation()
		require.NoError(t, err)
		assert.Equal(t, core.Coordinate{0, 0}, c)
		s.ReactToShotResult(core.NewCoordinate(4, 4), true)
	}
}
