package storage

import (
	"fmt"

	"github.com/emberlab/firefetch/internal/model"
)

// ObjectKey locates a mirrored thumbnail in object storage, grouped by run
// so repeated batches don't overwrite each other.
type ObjectKey struct {
	RunID    model.RunID
	FileName string
}

func (k ObjectKey) Key() string {
	return fmt.Sprintf("fires/%s/%s", k.RunID, k.FileName)
}
