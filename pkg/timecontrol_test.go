package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeControl(t *testing.T) {
	tests := []struct {
		in   string
		want TimeControl
	}{
		{"10+2", TimeControl{"10+2", 10 * time.Minute, 2 * time.Second}},
		{" 3 ", TimeControl{"3+0", 3 * time.Minute, 0}},
		{"30+10", TimeControlOptions[0]},
	}
	for _, tt := range tests {
		got, err := ParseTimeControl(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "0+2", "x+1", "5+-1", "5+"} {
		_, err := ParseTimeControl(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimeControlMinutes(t *testing.T) {
	assert.Equal(t, 30, TimeControlOptions[0].Minutes())
	assert.Equal(t, 5, DefaultTimeControl.Minutes())
}
