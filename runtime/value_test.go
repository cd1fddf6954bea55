package truntime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/tarobot/ast"
	"github.com/gosuda/tarobot/diag"
	truntime "github.com/gosuda/tarobot/runtime"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		in   truntime.Variable
		to   truntime.Type
		want string
	}{
		{"same type", truntime.NewInt(7), truntime.Int, "int 7"},
		{"int to cint", truntime.NewInt(7), truntime.CInt, "cint 7"},
		{"nonzero to boolean", truntime.NewInt(-2), truntime.Boolean, "boolean true"},
		{"zero to cboolean", truntime.NewInt(0), truntime.CBoolean, "cboolean false"},
		{"true to int", truntime.NewBool(true), truntime.Int, "int 1"},
		{"false to cint", truntime.NewBool(false), truntime.CInt, "cint 0"},
		{"none to int", truntime.Zero(truntime.None), truntime.Int, "int 0"},
		{"none to boolean", truntime.Zero(truntime.None), truntime.Boolean, "boolean false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := truntime.Coerce(tt.in, tt.to)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.to, got.Type())
		})
	}
}

func TestCoerceToNoneFails(t *testing.T) {
	_, err := truntime.Coerce(truntime.NewInt(1), truntime.None)
	kind, ok := diag.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, diag.UnexpectedType, kind)
}

func TestTypeTags(t *testing.T) {
	assert.True(t, truntime.CInt.Constant())
	assert.False(t, truntime.Boolean.Constant())
	assert.Equal(t, truntime.Boolean, truntime.CBoolean.Base())
	assert.Equal(t, "type(42)", truntime.Type(42).String())

	typ, ok := truntime.TypeOf(ast.TypeCBoolean)
	assert.True(t, ok)
	assert.Equal(t, truntime.CBoolean, typ)
	_, ok = truntime.TypeOf("map")
	assert.False(t, ok)
}

func TestScopes(t *testing.T) {
	s := truntime.NewScopes()
	require.NoError(t, s.Declare("g", truntime.NewInt(1)))

	releaseBlock := s.Push()
	require.NoError(t, s.Declare("g", truntime.NewInt(2)))
	v, ok := s.Lookup("g")
	require.True(t, ok)
	assert.Equal(t, 2, v.Int())

	err := s.Declare("g", truntime.NewInt(3))
	kind, _ := diag.KindOf(err)
	assert.Equal(t, diag.Redeclaration, kind)

	require.NoError(t, s.Declare("local", truntime.NewBool(true)))
	releaseProc := s.PushProc()
	_, ok = s.Lookup("local")
	assert.False(t, ok, "procedure frame must hide the caller")
	v, _ = s.Lookup("g")
	assert.Equal(t, 1, v.Int(), "global frame stays visible")
	require.NoError(t, s.Assign("g", truntime.NewInt(9)))
	assert.Equal(t, 3, s.Depth())

	releaseProc()
	releaseBlock()
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, 9, s.Global()["g"].Int())

	err = s.Assign("missing", truntime.NewInt(0))
	kind, _ = diag.KindOf(err)
	assert.Equal(t, diag.UndeclaredVariable, kind)
}

func TestReleasePopsNestedFrames(t *testing.T) {
	s := truntime.NewScopes()
	release := s.Push()
	s.Push()
	s.Push()
	assert.Equal(t, 4, s.Depth())
	release()
	assert.Equal(t, 1, s.Depth())
}
