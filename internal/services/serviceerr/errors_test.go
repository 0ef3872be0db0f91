package serviceerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad input")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("type %d not found", 7)))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("already assigned")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Internal(errors.New("boom"))))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain error")))
}

func TestPublicMessageHidesInternals(t *testing.T) {
	assert.Equal(t, "internal error", PublicMessage(Internal(errors.New("pq: connection refused"))))
	assert.Equal(t, "internal error", PublicMessage(errors.New("pq: connection refused")))
	assert.Equal(t, "type 7 not found", PublicMessage(NotFound("type %d not found", 7)))
}

func TestHintOf(t *testing.T) {
	err := ConflictWithHint("you may add 2 only", "requested quantity exceeds the approved ceiling")
	assert.Equal(t, "you may add 2 only", HintOf(err))
	assert.Equal(t, "requested quantity exceeds the approved ceiling", PublicMessage(err))

	assert.Empty(t, HintOf(Conflict("no hint here")))
	// Internal hints carry the underlying error and must never leak.
	assert.Empty(t, HintOf(Internal(errors.New("secret detail"))))
}

func TestCodeOfUnwraps(t *testing.T) {
	wrapped := fmt.Errorf("saving product: %w", Conflict("transition not allowed"))
	assert.Equal(t, CodeConflict, CodeOf(wrapped))
	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, http.StatusConflict, HTTPStatus(wrapped))
}
