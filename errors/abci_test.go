package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errOuter = Register(9901, "outer")

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"success": {
			err:      nil,
			wantCode: SuccessABCICode,
			wantLog:  "",
		},
		"coded error": {
			err:      Wrap(ErrInsufficientAmount, "deposit"),
			wantCode: 12,
			wantLog:  "deposit: insufficient amount",
		},
		"outermost code wins": {
			err:      Wrap(errOuter, ErrNotFound.Error()),
			wantCode: 9901,
			wantLog:  "not found: outer",
		},
		"uncoded error is hidden": {
			err:      stderrors.New("disk failure"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"wrapped uncoded error is hidden": {
			err:      Wrap(stderrors.New("disk failure"), "commit"),
			wantCode: internalABCICode,
			wantLog:  internalABCILog,
		},
		"panic details are hidden": {
			err:      Wrap(ErrPanic, "index out of range"),
			wantCode: ErrPanic.ABCICode(),
			wantLog:  "panic",
		},
		"collection reports its first member": {
			err:      Append(Wrap(ErrUnauthorized, "signer"), Wrap(ErrEmpty, "metadata")),
			wantCode: 2,
			wantLog:  "2 errors occurred:\n\t* signer: unauthorized\n\t* metadata: value is empty\n",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantLog, log)
		})
	}
}

func TestABCIInfoDebugKeepsDetails(t *testing.T) {
	code, log := ABCIInfo(Wrap(stderrors.New("disk failure"), "commit"), true)
	assert.Equal(t, internalABCICode, code)
	assert.Contains(t, log, "commit: disk failure")
	assert.Contains(t, log, "TestABCIInfoDebugKeepsDetails")
}
