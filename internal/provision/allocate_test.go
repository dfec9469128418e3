package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllocator_Allocate(t *testing.T) {
	a := Allocator{Prefix: "STF", Width: 3}

	ids := a.Allocate(0, 3)
	assert.Equal(t, []string{"STF001", "STF002", "STF003"}, ids)

	ids = a.Allocate(41, 2)
	assert.Equal(t, []string{"STF042", "STF043"}, ids)
}

func TestAllocator_Deterministic(t *testing.T) {
	a := Allocator{Prefix: "ADM", Width: 4}
	assert.Equal(t, a.Allocate(10, 5), a.Allocate(10, 5))
}

func TestAllocator_WidthOverflow(t *testing.T) {
	a := Allocator{Prefix: "STF", Width: 3}
	// sequences wider than the pad keep all digits
	assert.Equal(t, "STF1042", a.Format(1042))
}

func TestAllocator_EmptyCount(t *testing.T) {
	a := Allocator{Prefix: "ADM", Width: 4}
	assert.Empty(t, a.Allocate(7, 0))
}
