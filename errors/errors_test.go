package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		root *Error
		err  error
		want bool
	}{
		"root against itself": {
			root: ErrNotFound,
			err:  ErrNotFound,
			want: true,
		},
		"escrow lookup failure": {
			root: ErrNotFound,
			err:  Wrap(ErrNotFound, "escrow"),
			want: true,
		},
		"deposit balance failure wrapped twice": {
			root: ErrInsufficientAmount,
			err:  Wrap(Wrapf(ErrInsufficientAmount, "deposit holds %d", 499), "exchange"),
			want: true,
		},
		"different root": {
			root: ErrUnauthorized,
			err:  Wrap(ErrNotFound, "escrow"),
			want: false,
		},
		"field failure": {
			root: ErrInvalidAmount,
			err:  Field("XAmount", ErrInvalidAmount, "must be positive"),
			want: true,
		},
		"second member of a collection": {
			root: ErrEmpty,
			err:  Append(Wrap(ErrInvalidInput, "a"), Wrap(ErrEmpty, "b")),
			want: true,
		},
		"plain error": {
			root: ErrInvalidState,
			err:  stderrors.New("disk failure"),
			want: false,
		},
		"nil root matches nil": {
			root: nil,
			err:  nil,
			want: true,
		},
		"nil root against a failure": {
			root: nil,
			err:  ErrNotFound,
			want: false,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.root.Is(tc.err))
		})
	}
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "nothing"))
	assert.Nil(t, Wrapf(nil, "nothing %d", 1))
	assert.Nil(t, Field("Taker", nil, "ignored"))
	assert.Nil(t, AppendField(nil, "Taker", nil))
	assert.Nil(t, Append(nil, nil))
}

func TestWrapMessage(t *testing.T) {
	err := Wrapf(Wrap(ErrNotFound, "escrow"), "id %d", 7)
	assert.Equal(t, "id 7: escrow: not found", err.Error())

	err = Field("Initializer", ErrInvalidInput, "")
	assert.Equal(t, `field "Initializer": invalid: invalid input`, err.Error())
}

func TestWithType(t *testing.T) {
	type escrow struct{}
	err := WithType(ErrInvalidModel, escrow{})
	require.True(t, ErrInvalidModel.Is(err))
	assert.Contains(t, err.Error(), "errors.escrow")
}

func TestAppendFlattens(t *testing.T) {
	a := Wrap(ErrEmpty, "a")
	b := Wrap(ErrInvalidInput, "b")
	c := Wrap(ErrOverflow, "c")

	assert.Equal(t, a, Append(nil, a, nil))

	all := Append(Append(a, b), c)
	multi, ok := all.(*multiError)
	require.True(t, ok)
	assert.Equal(t, []error{a, b, c}, multi.Unpack())
	assert.True(t, strings.HasPrefix(all.Error(), "3 errors occurred"))
}

func TestStackTraceIsRecordedOnce(t *testing.T) {
	err := Wrap(Wrap(ErrNotFound, "inner"), "outer")
	out := fmt.Sprintf("%+v", err)
	assert.Equal(t, 1, strings.Count(out, "TestStackTraceIsRecordedOnce"), out)
	assert.Equal(t, "outer: inner: not found", fmt.Sprintf("%v", err))
}

func TestRecover(t *testing.T) {
	run := func() (err error) {
		defer Recover(&err)
		panic("boom")
	}
	err := run()
	require.Error(t, err)
	assert.True(t, ErrPanic.Is(err))
	assert.Contains(t, err.Error(), "boom")
}

func TestRegisterRejectsTakenCode(t *testing.T) {
	assert.Panics(t, func() { Register(ErrNotFound.ABCICode(), "again") })
	assert.Panics(t, func() { Register(internalABCICode, "reserved") })
}
