package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStore_InitializesBooksAtFullQuantity(t *testing.T) {
	s := NewStore([]int{3, 0, 7})

	assert.Len(t, s.Books, 3)
	assert.Equal(t, 3, s.Books[0].AvailableQuantity)
	assert.Equal(t, 0, s.Books[1].AvailableQuantity)
	assert.Equal(t, 7, s.Books[2].AvailableQuantity)
	assert.Empty(t, s.Loans)
	assert.Empty(t, s.Queues)
}

func TestStamp_ZeroValueIsUnset(t *testing.T) {
	var s Stamp
	assert.False(t, s.Valid)

	set := StampAt(12.5)
	assert.True(t, set.Valid)
	assert.Equal(t, 12.5, set.Hours)
}

func TestActiveCounts_IgnoreClosedRecords(t *testing.T) {
	s := NewStore([]int{5})
	s.Loans = []*Loan{
		{UserID: 1, BookID: 0, LoanStart: 0},
		{UserID: 1, BookID: 0, LoanStart: 1, LoanEnd: StampAt(10)},
		{UserID: 2, BookID: 0, LoanStart: 2},
	}
	s.Queues = []*QueueEntry{
		{UserID: 1, BookID: 0, QueueStart: 0},
		{UserID: 1, BookID: 0, QueueStart: 1, QueueEnd: StampAt(4)},
	}

	assert.Equal(t, 1, s.ActiveLoans(1))
	assert.Equal(t, 1, s.ActiveLoans(2))
	assert.Equal(t, 0, s.ActiveLoans(3))
	assert.Equal(t, 1, s.ActiveQueues(1))
	assert.Equal(t, 0, s.ActiveQueues(2))
}
