package moderation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"mood-chat/errors"
)

func TestModerator_Censor_Basic(t *testing.T) {
	req := require.New(t)
	m, err := NewModerator([]string{"badword"}, '*')
	req.NoError(err)

	req.Equal("this is a *******", m.Censor("this is a badword"))
	req.Equal("nothing to hide", m.Censor("nothing to hide"))
}

func TestModerator_Censor_Leet_And_Case(t *testing.T) {
	req := require.New(t)
	m, err := NewModerator([]string{"badword"}, '*')
	req.NoError(err)

	req.Equal("*******", m.Censor("BadWord"))
	req.Equal("*******", m.Censor("b4dw0rd"))
}

func TestModerator_Censor_Preserves_Surroundings(t *testing.T) {
	req := require.New(t)
	m, err := NewModerator([]string{"spam"}, '*')
	req.NoError(err)

	req.Equal("hello ****, bye", m.Censor("hello spam, bye"))
}

func TestModerator_Empty_Wordlist(t *testing.T) {
	req := require.New(t)
	_, err := NewModerator(nil, '*')
	req.ErrorIs(err, errors.ErrEmptyWordlist)
}
