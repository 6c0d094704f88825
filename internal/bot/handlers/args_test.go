package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandArgs(t *testing.T) {
	require.Nil(t, commandArgs(""))
	require.Empty(t, commandArgs("/birthdays"))
	require.Equal(t, []string{"John", "Doe"}, commandArgs("/delete John Doe"))
	require.Equal(t, []string{"x"}, commandArgs("/add@somebot x"))
}

func TestParseAddArgs(t *testing.T) {
	name, date, err := parseAddArgs([]string{"John", "Doe", "15-03-1990"})
	require.NoError(t, err)
	require.Equal(t, "John Doe", name)
	require.Equal(t, "15-03-1990", date.Format("02-01-2006"))

	_, _, err = parseAddArgs([]string{"15-03-1990"})
	require.Error(t, err)

	_, _, err = parseAddArgs([]string{"John", "1990-03-15"})
	require.Error(t, err)
}

func TestParseDeleteArgs(t *testing.T) {
	name, err := parseDeleteArgs([]string{"John", "Doe"})
	require.NoError(t, err)
	require.Equal(t, "John Doe", name)

	_, err = parseDeleteArgs(nil)
	require.Error(t, err)
}

func TestCommandKeyword(t *testing.T) {
	kw, isCmd := commandKeyword("/Add John 01-01-1990")
	require.True(t, isCmd)
	require.Equal(t, "add", kw)

	kw, isCmd = commandKeyword("BITCOIN")
	require.False(t, isCmd)
	require.Equal(t, "bitcoin", kw)

	kw, _ = commandKeyword("/help@my_bot now")
	require.Equal(t, "help", kw)

	_, isCmd = commandKeyword("   ")
	require.False(t, isCmd)
}
