package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateErr(t *testing.T) {
	assert.False(t, isDuplicateErr(nil))
	assert.False(t, isDuplicateErr(errors.New("connection refused")))
	// MySQL reports unique index violations as error 1062.
	assert.True(t, isDuplicateErr(errors.New("Error 1062 (23000): Duplicate entry 'bob' for key 'users.uq_users_username'")))
}
