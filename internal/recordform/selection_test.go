package recordform

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/care-record-api/internal/dto"
)

func TestCellUpdateSeesPreviousValue(t *testing.T) {
	cell := NewCell(dto.Selection{PatientID: "p1"})
	next := cell.UpdateSelection(func(prev dto.Selection) dto.Selection {
		prev.RecordID = "r1"
		return prev
	})
	assert.Equal(t, dto.Selection{PatientID: "p1", RecordID: "r1"}, next)
	assert.Equal(t, next, cell.Selection())
}

func TestCellConcurrentUpdates(t *testing.T) {
	cell := NewCell(dto.Selection{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cell.UpdateSelection(func(prev dto.Selection) dto.Selection {
				prev.RecordID += "x"
				return prev
			})
		}()
	}
	wg.Wait()
	assert.Len(t, cell.Selection().RecordID, 50)
}
