package create_session

import (
	"fmt"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Room < domain.MinRoom || req.Room > domain.MaxRoom {
		return fmt.Errorf("%w: room must be between %d and %d", ErrInvalidInput, domain.MinRoom, domain.MaxRoom)
	}

	if req.Slot < domain.MinSlotNumber {
		return fmt.Errorf("%w: slot must be >= %d", ErrInvalidInput, domain.MinSlotNumber)
	}

	if req.TypeID <= 0 {
		return fmt.Errorf("%w: typeID must be positive", ErrInvalidInput)
	}

	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if len(req.Note) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note must not exceed %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	return nil
}
