package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanStorePasses(t *testing.T) {
	s := NewStore([]int{2})
	loanID, _ := s.RequestBorrow(1, 0, 0)
	_, _ = s.Return(loanID, 10)

	assert.NoError(t, Validate(s, []int{2}))
}

func TestValidate_CollectsAllViolationsIntoOneReport(t *testing.T) {
	s := NewStore([]int{2})
	s.Books[0].AvailableQuantity = 1                                   // conservation break
	s.Queues = append(s.Queues, &QueueEntry{UserID: 1, QueueStart: 3}) // stranded queue
	s.Loans = append(s.Loans, &Loan{UserID: 2, LoanStart: 4})          // open loan

	err := Validate(s, []int{2})

	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 3)
	assert.Contains(t, err.Error(), "book 0")
	assert.Contains(t, err.Error(), "queue 0")
	assert.Contains(t, err.Error(), "loan 0")
}
