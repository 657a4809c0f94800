package wxclip_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/wxclip/wxclip"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := wxclip.Errorf(wxclip.ENOTFOUND, "no article body found in %q", "https://example.com/post")

	assert.Equal(t, wxclip.ENOTFOUND, wxclip.ErrorCode(err))
	assert.Equal(t, "no article body found in \"https://example.com/post\"", wxclip.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wxclip.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, wxclip.EINTERNAL, wxclip.ErrorCode(errors.New("disk failure")))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	inner := wxclip.Errorf(wxclip.EUNAVAILABLE, "fetch failed")
	wrapped := errors.Join(errors.New("outer"), inner)

	assert.Equal(t, wxclip.EUNAVAILABLE, wxclip.ErrorCode(wrapped))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, wxclip.ErrorMessage(nil))
}

func TestErrorMessage_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Internal error.", wxclip.ErrorMessage(errors.New("disk failure")))
}
