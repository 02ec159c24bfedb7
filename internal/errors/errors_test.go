package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statref/domain/core"
)

func TestFromStatErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code string
		kind error
	}{
		{"domain", core.NewDomainError("binomial", "p=%v must be in [0, 1]", 1.5), CodeDomainError, core.ErrDomain},
		{"undefined", core.NewUndefinedError("variance", "n=1"), CodeUndefinedStatistic, core.ErrUndefinedStatistic},
		{"tolerance", core.NewToleranceError("bayes_partition", "sum 0.9"), CodeToleranceViolation, core.ErrToleranceViolation},
		{"plain", stderrors.New("boom"), CodeInternalError, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromStatError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.code, appErr.Code)
			if tt.kind != nil {
				assert.True(t, stderrors.Is(appErr, tt.kind), "sentinel must survive lifting")
			}
		})
	}
	assert.Nil(t, FromStatError(nil))
}

func TestWrapKeepsCode(t *testing.T) {
	base := core.NewUndefinedError("regression", "all y values are equal")
	wrapped := Wrapf(base, "fitting column %q", "score")
	assert.Equal(t, CodeUndefinedStatistic, GetCode(wrapped))
	assert.True(t, core.IsUndefinedStatistic(wrapped))
	assert.Contains(t, wrapped.Error(), `fitting column "score"`)

	twice := Wrap(wrapped, "regress command")
	assert.Equal(t, CodeUndefinedStatistic, GetCode(twice))

	assert.Nil(t, Wrap(nil, "nothing"))
}

func TestWithCodeAndHelpers(t *testing.T) {
	err := WithCode(CodeInvalidInput, stderrors.New("bad number"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("x")))

	cfg := ConfigInvalid("STATREF_ALPHA must be in (0, 1)")
	assert.Equal(t, CodeConfigInvalid, cfg.Code)
	assert.Equal(t, "STATREF_ALPHA must be in (0, 1)", cfg.Error())

	in := InvalidInputf("column %q not found", "x")
	assert.Equal(t, `column "x" not found`, in.Message)
}
