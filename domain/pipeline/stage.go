// Package pipeline models an investor's deal-flow board.
package pipeline

import (
	"fmt"
	"strings"

	"github.com/investmatch/investmatch/domain/errs"
)

// Stage is a pipeline column.
type Stage string

// Stage values.
const (
	StageToContact  Stage = "to_contact"
	StageDiscussion Stage = "discussion"
	StageClosed     Stage = "closed"
)

// Stages returns every valid stage in board order.
func Stages() []Stage {
	return []Stage{StageToContact, StageDiscussion, StageClosed}
}

// ParseStage validates s. Values outside the known set fail with
// errs.ErrValidation.
func ParseStage(s string) (Stage, error) {
	switch Stage(strings.TrimSpace(s)) {
	case StageToContact:
		return StageToContact, nil
	case StageDiscussion:
		return StageDiscussion, nil
	case StageClosed:
		return StageClosed, nil
	}
	return "", fmt.Errorf("%w: invalid stage %q", errs.ErrValidation, s)
}

// String returns the stored value.
func (s Stage) String() string { return string(s) }
