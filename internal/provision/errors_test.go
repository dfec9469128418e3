package provision

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection reset by peer")))

	// fallback: message-shape match for stores without structured fields
	driverErr := errors.New(`ERROR: duplicate key value violates unique constraint "credentials_school_user"`)
	assert.True(t, IsUniqueViolation(driverErr))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert failed: %w", driverErr)))
}
