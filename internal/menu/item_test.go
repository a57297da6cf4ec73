package menu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseCommandFails(t *testing.T) {
	b := NewBase("test", nil)
	cmd, err := b.Command()
	assert.Nil(t, cmd)
	assert.True(t, errors.Is(err, ErrNoCommand))
}

func TestBaseHelp(t *testing.T) {
	implicit := NewBase("a", nil)
	assert.Equal(t, "", implicit.HelpText())
	assert.Equal(t, "fallback", implicit.HelpOr("fallback"))
	_, ok := implicit.ExplicitHelp()
	assert.False(t, ok)

	explicit := NewBase("b", Help(""))
	help, ok := explicit.ExplicitHelp()
	assert.True(t, ok, "an explicitly empty help text is still explicit")
	assert.Equal(t, "", help)
	assert.Equal(t, "", explicit.HelpOr("fallback"))
}

func TestToDict(t *testing.T) {
	assert.Equal(t, Dict{"a": {}}, ToDict(NewBase("a", nil)))
	assert.Equal(t, Dict{"b": {"text": "hi"}}, ToDict(NewBase("b", Help("hi"))))
}

func TestFromDictSplitsHelp(t *testing.T) {
	var gotParams map[string]any
	var gotHelp *string
	v := Variant{Name: "Base", Decode: func(name string, params map[string]any, help *string) (Serialisable, error) {
		gotParams, gotHelp = params, help
		return NewBase(name, help), nil
	}}

	item, err := FromDict(v, Dict{"a": {"text": "hi", "x": 1}})
	require.NoError(t, err)
	assert.Equal(t, "a", item.Name())
	assert.Equal(t, map[string]any{"x": 1}, gotParams)
	require.NotNil(t, gotHelp)
	assert.Equal(t, "hi", *gotHelp)

	_, err = FromDict(v, Dict{"a": {"text": 3}})
	assert.True(t, IsStructural(err))

	_, err = FromDict(v, Dict{})
	assert.True(t, IsStructural(err))
}

func TestFields(t *testing.T) {
	f := NewFields("V", map[string]any{"pattern": "p", "flag": false})
	assert.Equal(t, "p", f.String("pattern"))
	assert.True(t, f.Present("flag"))
	assert.NoError(t, f.Err())

	f = NewFields("V", map[string]any{"pattern": "p", "extra": 1})
	f.String("pattern")
	err := f.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected fields extra")

	f = NewFields("V", map[string]any{"pattern": 3})
	f.String("pattern")
	assert.Contains(t, f.Err().Error(), "expected string")

	f = NewFields("V", map[string]any{})
	f.String("pattern")
	f.Require("marker")
	assert.Contains(t, f.Err().Error(), `missing required field "pattern"`)
}
